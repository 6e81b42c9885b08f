// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"encoding/json"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/orbs-network/address-value-store/services/publicapi"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

func (s *server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *server) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	bytes, _ := json.Marshal(s.metricRegistry.ExportAll())
	_, err := w.Write(bytes)
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) getStatus(w http.ResponseWriter, r *http.Request) {
	status := &jsonapi.StatusResponse{
		Uptime:         int64(time.Since(s.started).Seconds()),
		VirtualChainId: uint32(s.config.VirtualChainId()),
		BlockHeight:    s.gaugeValue("StateStorage.BlockHeight"),
		StateAdapter:   s.config.StateStorageAdapter(),
	}
	version := config.GetVersion()
	status.Version.Semantic = version.Semantic
	status.Version.Commit = version.Commit

	w.Header().Set("Content-Type", "application/json")
	data, _ := json.MarshalIndent(status, "", "  ")
	_, err := w.Write(data)
	if err != nil {
		s.logger.Info("error writing status response", log.Error(err))
	}
}

func (s *server) gaugeValue(name string) int64 {
	exported, found := s.metricRegistry.ExportAll()[name]
	if !found {
		s.logger.Info("could not retrieve metric", log.String("metric", name))
		return 0
	}
	rows := exported.LogRow()
	return rows[len(rows)-1].Int
}

func (s *server) sendTransactionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := trace.NewFromRequest(r.Context(), r)
	request := &jsonapi.SendTransactionRequest{}
	if e := readJson(r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	signedTransaction, err := request.SignedTransaction()
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusBadRequest, log.Error(err), err.Error()})
		return
	}

	s.logger.Info("http server received send-transaction", trace.LogFieldFrom(ctx), log.Stringable("transaction", signedTransaction.Transaction))
	result, err := s.publicApi.SendTransaction(ctx, &publicapi.SendTransactionInput{SignedTransaction: signedTransaction})
	if result == nil {
		s.writeErrorResponseAndLog(w, internalError(err))
		return
	}

	response, convertErr := jsonapi.NewTransactionResponse(result.RequestStatus, result.TransactionStatus, result.TransactionReceipt, result.BlockHeight, result.BlockTimestamp)
	if convertErr != nil {
		s.writeErrorResponseAndLog(w, internalError(convertErr))
		return
	}
	if err != nil {
		response.ErrorDetails = err.Error()
	}
	s.writeJsonResponse(w, result.RequestStatus, result.BlockHeight, result.BlockTimestamp, response, err)
}

func (s *server) runQueryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := trace.NewFromRequest(r.Context(), r)
	request := &jsonapi.RunQueryRequest{}
	if e := readJson(r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	query, err := request.Query()
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusBadRequest, log.Error(err), err.Error()})
		return
	}

	s.logger.Info("http server received run-query", trace.LogFieldFrom(ctx), log.Stringable("query", query))
	result, err := s.publicApi.RunQuery(ctx, &publicapi.RunQueryInput{Query: query})
	if result == nil {
		s.writeErrorResponseAndLog(w, internalError(err))
		return
	}

	response, convertErr := jsonapi.NewQueryResponse(result.RequestStatus, result.QueryResult, result.BlockHeight, result.BlockTimestamp)
	if convertErr != nil {
		s.writeErrorResponseAndLog(w, internalError(convertErr))
		return
	}
	if err != nil {
		response.ErrorDetails = err.Error()
	}
	s.writeJsonResponse(w, result.RequestStatus, result.BlockHeight, result.BlockTimestamp, response, err)
}

func (s *server) getTransactionStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := trace.NewFromRequest(r.Context(), r)
	request := &jsonapi.GetTransactionStatusRequest{}
	if e := readJson(r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	txHash, err := request.Hash()
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusBadRequest, log.Error(err), err.Error()})
		return
	}

	s.logger.Info("http server received get-transaction-status", trace.LogFieldFrom(ctx), log.Stringable("txHash", txHash))
	result, err := s.publicApi.GetTransactionStatus(ctx, &publicapi.GetTransactionStatusInput{
		VirtualChainId: primitives.VirtualChainId(request.VirtualChainId),
		TxHash:         txHash,
	})
	if result == nil {
		s.writeErrorResponseAndLog(w, internalError(err))
		return
	}

	response, convertErr := jsonapi.NewTransactionResponse(result.RequestStatus, result.TransactionStatus, result.TransactionReceipt, result.BlockHeight, result.BlockTimestamp)
	if convertErr != nil {
		s.writeErrorResponseAndLog(w, internalError(convertErr))
		return
	}
	if err != nil {
		response.ErrorDetails = err.Error()
	}
	s.writeJsonResponse(w, result.RequestStatus, result.BlockHeight, result.BlockTimestamp, response, err)
}

func internalError(err error) *httpErr {
	if err == nil {
		return &httpErr{http.StatusInternalServerError, nil, "request produced no result"}
	}
	return &httpErr{http.StatusInternalServerError, log.Error(err), err.Error()}
}
