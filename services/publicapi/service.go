// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"golang.org/x/time/rate"
)

var LogTag = log.Service("public-api")

type PublicApi interface {
	SendTransaction(ctx context.Context, input *SendTransactionInput) (*SendTransactionOutput, error)
	RunQuery(ctx context.Context, input *RunQueryInput) (*RunQueryOutput, error)
	GetTransactionStatus(ctx context.Context, input *GetTransactionStatusInput) (*GetTransactionStatusOutput, error)
}

type SendTransactionInput struct {
	SignedTransaction *transaction.SignedTransaction
}

type SendTransactionOutput struct {
	RequestStatus      protocol.RequestStatus
	TransactionStatus  protocol.TransactionStatus
	TransactionReceipt *transaction.Receipt
	BlockHeight        primitives.BlockHeight
	BlockTimestamp     primitives.TimestampNano
}

type RunQueryInput struct {
	Query *transaction.Query
}

type RunQueryOutput struct {
	RequestStatus  protocol.RequestStatus
	QueryResult    *transaction.QueryResult
	BlockHeight    primitives.BlockHeight
	BlockTimestamp primitives.TimestampNano
}

type GetTransactionStatusInput struct {
	VirtualChainId primitives.VirtualChainId
	TxHash         primitives.Sha256
}

type GetTransactionStatusOutput struct {
	RequestStatus      protocol.RequestStatus
	TransactionStatus  protocol.TransactionStatus
	TransactionReceipt *transaction.Receipt
	BlockHeight        primitives.BlockHeight
	BlockTimestamp     primitives.TimestampNano
}

type service struct {
	config         config.PublicApiConfig
	virtualMachine virtualmachine.VirtualMachine
	logger         log.Logger

	limiter  *rate.Limiter
	receipts *receiptIndex
	waiter   *waiter

	metrics *metrics
}

type metrics struct {
	sendTransactionTime                *metric.Histogram
	getTransactionStatusTime           *metric.Histogram
	runQueryTime                       *metric.Histogram
	totalTransactionsFromClients       *metric.Gauge
	totalTransactionsErrNilRequest     *metric.Gauge
	totalTransactionsErrInvalidRequest *metric.Gauge
	totalTransactionsErrDuplicate      *metric.Gauge
	totalTransactionsErrTimeout        *metric.Gauge
	totalRequestsErrCongestion         *metric.Gauge
}

func newMetrics(factory metric.Factory, config config.PublicApiConfig) *metrics {
	return &metrics{
		sendTransactionTime:                factory.NewLatency("PublicApi.SendTransactionProcessingTime.Millis", config.PublicApiSendTransactionTimeout()),
		getTransactionStatusTime:           factory.NewLatency("PublicApi.GetTransactionStatusProcessingTime.Millis", config.PublicApiRunQueryTimeout()),
		runQueryTime:                       factory.NewLatency("PublicApi.RunQueryProcessingTime.Millis", config.PublicApiRunQueryTimeout()),
		totalTransactionsFromClients:       factory.NewGauge("PublicApi.TotalTransactionsFromClients.Count"),
		totalTransactionsErrNilRequest:     factory.NewGauge("PublicApi.TotalTransactionsErrNilRequest.Count"),
		totalTransactionsErrInvalidRequest: factory.NewGauge("PublicApi.TotalTransactionsErrInvalidRequest.Count"),
		totalTransactionsErrDuplicate:      factory.NewGauge("PublicApi.TotalTransactionsErrDuplicate.Count"),
		totalTransactionsErrTimeout:        factory.NewGauge("PublicApi.TotalTransactionsErrTimeout.Count"),
		totalRequestsErrCongestion:         factory.NewGauge("PublicApi.TotalRequestsErrCongestion.Count"),
	}
}

func NewPublicApi(
	config config.PublicApiConfig,
	virtualMachine virtualmachine.VirtualMachine,
	logger log.Logger,
	metricFactory metric.Factory,
) PublicApi {
	return &service{
		config:         config,
		virtualMachine: virtualMachine,
		logger:         logger.WithTags(LogTag),

		limiter:  rate.NewLimiter(rate.Limit(config.PublicApiRequestsPerSecond()), int(config.PublicApiRequestsBurst())),
		receipts: newReceiptIndex(int(config.PublicApiReceiptsCacheSize()), metricFactory),
		waiter:   newWaiter(),

		metrics: newMetrics(metricFactory, config),
	}
}
