// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/statestorage"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("virtual-machine")

var ErrSignatureMismatch = errors.New("transaction signature does not match its signer")
var ErrTransactionAlreadyCommitted = errors.New("transaction was already committed")
var ErrTransactionExpired = errors.New("transaction timestamp is older than the expiration window")

type VirtualMachine interface {
	processor.SdkCallHandler
	ProcessTransaction(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error)
	RunQuery(ctx context.Context, query *transaction.Query) (*transaction.QueryResult, error)
	InitializeContracts(ctx context.Context) error
	GetTransactionReceipt(ctx context.Context, txHash primitives.Sha256) (*transaction.Receipt, error)
}

type service struct {
	stateStorage statestorage.StateStorage
	processor    processor.Processor
	config       config.VirtualMachineConfig
	logger       log.Logger
	metrics      *metrics

	contexts *executionContextProvider

	// serializes transactions, each one is committed as its own block
	transactionMutex sync.Mutex
	committed        *committedTransactions
}

type metrics struct {
	processTransactionTime *metric.Histogram
	runQueryTime           *metric.Histogram
	transactionsRate       *metric.Rate
	failedTransactions     *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		processTransactionTime: m.NewLatency("VirtualMachine.ProcessTransaction.Millis", 10*time.Second),
		runQueryTime:           m.NewLatency("VirtualMachine.RunQuery.Millis", 10*time.Second),
		transactionsRate:       m.NewRate("VirtualMachine.Transactions.PerSecond"),
		failedTransactions:     m.NewRate("VirtualMachine.FailedTransactions.PerSecond"),
	}
}

func NewVirtualMachine(
	stateStorage statestorage.StateStorage,
	processor processor.Processor,
	config config.VirtualMachineConfig,
	parentLogger log.Logger,
	metricFactory metric.Factory,
) VirtualMachine {

	s := &service{
		stateStorage: stateStorage,
		processor:    processor,
		config:       config,
		logger:       parentLogger.WithTags(LogTag),
		metrics:      newMetrics(metricFactory),
		contexts:     newExecutionContextProvider(),
		committed:    &committedTransactions{},
	}

	processor.RegisterContractSdkCallHandler(s)

	return s
}

func (s *service) HandleSdkCall(ctx context.Context, input *processor.SdkCallInput) (*processor.SdkCallOutput, error) {
	executionContext := s.contexts.loadExecutionContext(input.ContextId)
	if executionContext == nil {
		return nil, errors.Errorf("invalid execution context %x", []byte(input.ContextId))
	}

	var output []*protocol.Argument
	var err error
	switch input.OperationName {
	case processor.SDK_OPERATION_NAME_STATE:
		output, err = s.handleSdkStateCall(ctx, executionContext, input.MethodName, input.InputArguments)
	case processor.SDK_OPERATION_NAME_ADDRESS:
		output, err = s.handleSdkAddressCall(executionContext, input.MethodName, input.InputArguments)
	default:
		return nil, errors.Errorf("unknown SDK call operation: %s", input.OperationName)
	}
	if err != nil {
		return nil, err
	}

	return &processor.SdkCallOutput{
		OutputArguments: output,
	}, nil
}
