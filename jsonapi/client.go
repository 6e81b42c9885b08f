// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

const (
	SEND_TRANSACTION_PATH       = "/api/v1/send-transaction"
	RUN_QUERY_PATH              = "/api/v1/run-query"
	GET_TRANSACTION_STATUS_PATH = "/api/v1/get-transaction-status"
	STATUS_PATH                 = "/status"
)

type Client struct {
	endpoint   string
	transport  *http.Transport
	httpClient *http.Client
}

// each client keeps its own connection pool so closing it does not touch other clients
func NewClient(endpoint string, timeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		transport:  transport,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (c *Client) CloseIdleConnections() {
	c.transport.CloseIdleConnections()
}

func (c *Client) SendTransaction(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*TransactionResponse, error) {
	req, err := NewSendTransactionRequest(signedTransaction)
	if err != nil {
		return nil, err
	}
	res := &TransactionResponse{}
	if err := c.post(ctx, SEND_TRANSACTION_PATH, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) RunQuery(ctx context.Context, query *transaction.Query) (*QueryResponse, error) {
	req, err := NewRunQueryRequest(query)
	if err != nil {
		return nil, err
	}
	res := &QueryResponse{}
	if err := c.post(ctx, RUN_QUERY_PATH, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetTransactionStatus(ctx context.Context, vcId primitives.VirtualChainId, txHash primitives.Sha256) (*TransactionResponse, error) {
	res := &TransactionResponse{}
	err := c.post(ctx, GET_TRANSACTION_STATUS_PATH, &GetTransactionStatusRequest{
		VirtualChainId: uint32(vcId),
		TxHash:         EncodeHex(txHash),
	}, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	httpReq, err := http.NewRequest(http.MethodGet, c.endpoint+STATUS_PATH, nil)
	if err != nil {
		return nil, err
	}
	res := &StatusResponse{}
	if err := c.do(ctx, httpReq, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, path string, req interface{}, res interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}
	httpReq, err := http.NewRequest(http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(ctx, httpReq, res)
}

// error responses of the api carry a json body too, only non-json bodies are returned as errors
func (c *Client) do(ctx context.Context, httpReq *http.Request, res interface{}) error {
	if tc, ok := trace.FromContext(ctx); ok {
		tc.WriteTraceToRequest(httpReq)
	}

	httpRes, err := c.httpClient.Do(httpReq.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "failed to call %s", httpReq.URL)
	}
	defer httpRes.Body.Close()

	body, err := ioutil.ReadAll(httpRes.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if !strings.HasPrefix(httpRes.Header.Get("Content-Type"), "application/json") {
		return errors.Errorf("got http status %d: %s", httpRes.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, res); err != nil {
		return errors.Wrapf(err, "failed to decode response with http status %d", httpRes.StatusCode)
	}
	return nil
}
