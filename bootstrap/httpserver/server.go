// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/publicapi"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

var LogTag = log.String("adapter", "http-server")

type httpErr struct {
	code     int
	logField *log.Field
	message  string
}

type HttpServer interface {
	GracefulShutdown(ctx context.Context)
	Port() int
}

type server struct {
	httpServer     *http.Server
	logger         log.Logger
	publicApi      publicapi.PublicApi
	metricRegistry metric.Registry
	config         config.HttpServerConfig
	started        time.Time

	port int
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func NewHttpServer(cfg config.HttpServerConfig, logger log.Logger, publicApi publicapi.PublicApi, metricRegistry metric.Registry) (HttpServer, error) {
	server := &server{
		logger:         logger.WithTags(LogTag),
		publicApi:      publicApi,
		metricRegistry: metricRegistry,
		config:         cfg,
		started:        time.Now(),
	}

	// not ListenAndServe, the socket must be listening (or fail) before this returns
	listener, err := net.Listen("tcp", cfg.HttpAddress())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start http server on %s", cfg.HttpAddress())
	}

	server.port = listener.Addr().(*net.TCPAddr).Port
	server.httpServer = &http.Server{
		Handler: server.createRouter(),
	}

	govnr.Once(logfields.GovnrErrorer(server.logger), func() {
		if err := server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)}); err != nil && err != http.ErrServerClosed {
			server.logger.Error("http server stopped unexpectedly", log.Error(err))
		}
	})

	server.logger.Info("started http server", log.String("address", cfg.HttpAddress()), log.Int("port", server.port))

	return server, nil
}

func (s *server) Port() int {
	return s.port
}

func (s *server) GracefulShutdown(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *server) createRouter() http.Handler {
	router := http.NewServeMux()
	router.Handle("/api/v1/send-transaction", http.HandlerFunc(wrapHandlerWithCORS(s.sendTransactionHandler)))
	router.Handle("/api/v1/run-query", http.HandlerFunc(wrapHandlerWithCORS(s.runQueryHandler)))
	router.Handle("/api/v1/get-transaction-status", http.HandlerFunc(wrapHandlerWithCORS(s.getTransactionStatusHandler)))
	router.Handle("/metrics", http.HandlerFunc(wrapHandlerWithCORS(s.dumpMetrics)))
	router.Handle("/status", http.HandlerFunc(wrapHandlerWithCORS(s.getStatus)))
	router.Handle("/robots.txt", http.HandlerFunc(s.robots))

	if s.config.Profiling() {
		registerPprof(router)
	}

	return router
}

func readJson(r *http.Request, v interface{}) *httpErr {
	if r.Method != http.MethodPost {
		return &httpErr{http.StatusMethodNotAllowed, log.String("method", r.Method), "http method must be POST"}
	}
	if r.Body == nil {
		return &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}

	bytes, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return &httpErr{http.StatusBadRequest, log.Error(err), "http request body could not be read"}
	}
	if len(bytes) == 0 {
		return &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		return &httpErr{http.StatusBadRequest, log.Error(err), "http request is not valid json"}
	}
	return nil
}

func translateRequestStatusToHttpCode(responseCode protocol.RequestStatus) int {
	switch responseCode {
	case protocol.REQUEST_STATUS_COMPLETED:
		return http.StatusOK
	case protocol.REQUEST_STATUS_IN_PROCESS:
		return http.StatusAccepted
	case protocol.REQUEST_STATUS_NOT_FOUND:
		return http.StatusNotFound
	case protocol.REQUEST_STATUS_BAD_REQUEST:
		return http.StatusBadRequest
	case protocol.REQUEST_STATUS_CONGESTION:
		return http.StatusServiceUnavailable
	case protocol.REQUEST_STATUS_SYSTEM_ERROR:
		return http.StatusInternalServerError
	case protocol.REQUEST_STATUS_RESERVED:
		return http.StatusInternalServerError
	}
	return http.StatusNotImplemented
}

func (s *server) writeJsonResponse(w http.ResponseWriter, requestStatus protocol.RequestStatus, blockHeight primitives.BlockHeight, blockTimestamp primitives.TimestampNano, body interface{}, errorForVerbosity error) {
	data, err := json.Marshal(body)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-AVS-REQUEST-RESULT", requestStatus.String())
	w.Header().Set("X-AVS-BLOCK-HEIGHT", fmt.Sprintf("%d", blockHeight))
	w.Header().Set("X-AVS-BLOCK-TIMESTAMP", sprintfTimestamp(blockTimestamp))
	if errorForVerbosity != nil {
		w.Header().Set("X-AVS-ERROR-DETAILS", errorForVerbosity.Error())
	}
	w.WriteHeader(translateRequestStatusToHttpCode(requestStatus))
	if _, err := w.Write(data); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func sprintfTimestamp(timestamp primitives.TimestampNano) string {
	return time.Unix(0, int64(timestamp)).UTC().Format(time.RFC3339Nano)
}

func (s *server) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message)
	} else {
		s.logger.Info(m.message, m.logField)
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(m.code)
	_, err := w.Write([]byte(m.message))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func registerPprof(router *http.ServeMux) {
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			f(w, r)
		}
	}
}
