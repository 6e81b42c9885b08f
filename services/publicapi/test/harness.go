// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/publicapi"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	testKeys "github.com/orbs-network/address-value-store/test/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type virtualMachineMock struct {
	mock.Mock
}

func (m *virtualMachineMock) HandleSdkCall(ctx context.Context, input *processor.SdkCallInput) (*processor.SdkCallOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*processor.SdkCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *virtualMachineMock) ProcessTransaction(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error) {
	ret := m.Called(ctx, signedTransaction)
	if out := ret.Get(0); out != nil {
		return out.(*transaction.Receipt), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *virtualMachineMock) RunQuery(ctx context.Context, query *transaction.Query) (*transaction.QueryResult, error) {
	ret := m.Called(ctx, query)
	if out := ret.Get(0); out != nil {
		return out.(*transaction.QueryResult), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *virtualMachineMock) InitializeContracts(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *virtualMachineMock) GetTransactionReceipt(ctx context.Context, txHash primitives.Sha256) (*transaction.Receipt, error) {
	ret := m.Called(ctx, txHash)
	if out := ret.Get(0); out != nil {
		return out.(*transaction.Receipt), ret.Error(1)
	}
	return nil, ret.Error(1)
}

type harness struct {
	papi       publicapi.PublicApi
	vmMock     *virtualMachineMock
	executions int32

	mutex     sync.Mutex
	persisted map[string]*transaction.Receipt
}

func newPublicApiHarness(tb testing.TB, logger log.Logger, overrides ...config.NodeConfigKeyValue) *harness {
	cfg := config.ForAcceptanceTests().Modify(overrides...)

	vmMock := &virtualMachineMock{}
	h := &harness{
		papi:      publicapi.NewPublicApi(cfg, vmMock, logger, metric.NewRegistry()),
		vmMock:    vmMock,
		persisted: make(map[string]*transaction.Receipt),
	}
	vmMock.When("GetTransactionReceipt", mock.Any, mock.Any).Call(func(ctx context.Context, txHash primitives.Sha256) (*transaction.Receipt, error) {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		return h.persisted[string(txHash)], nil
	})
	return h
}

// a receipt the virtual machine holds from before the public api started, as after a restart
func (h *harness) transactionCommittedBefore(signedTransaction *transaction.SignedTransaction, height primitives.BlockHeight) *transaction.Receipt {
	receipt := &transaction.Receipt{
		TxHash:              digest.CalcTxHash(signedTransaction.Transaction),
		ExecutionResult:     protocol.EXECUTION_RESULT_SUCCESS,
		OutputArgumentArray: transaction.EmptyArguments(),
		BlockHeight:         height,
		BlockTimestamp:      primitives.TimestampNano(time.Now().UnixNano()),
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.persisted[string(receipt.TxHash)] = receipt
	return receipt
}

// the virtual machine finds the transaction among its committed records
func (h *harness) transactionAlreadyCommitted() {
	h.vmMock.When("ProcessTransaction", mock.Any, mock.Any).Call(func(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error) {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		return h.persisted[string(digest.CalcTxHash(signedTransaction.Transaction))], virtualmachine.ErrTransactionAlreadyCommitted
	})
}

func withSendTransactionTimeout(d time.Duration) config.NodeConfigKeyValue {
	return config.NodeConfigKeyValue{Key: config.PUBLIC_API_SEND_TRANSACTION_TIMEOUT, Value: config.NodeConfigValue{DurationValue: d}}
}

func withBurst(burst uint32) config.NodeConfigKeyValue {
	return config.NodeConfigKeyValue{Key: config.PUBLIC_API_REQUESTS_BURST, Value: config.NodeConfigValue{Uint32Value: burst}}
}

func withRequestsPerSecond(requestsPerSecond uint32) config.NodeConfigKeyValue {
	return config.NodeConfigKeyValue{Key: config.PUBLIC_API_REQUESTS_PER_SECOND, Value: config.NodeConfigValue{Uint32Value: requestsPerSecond}}
}

func (h *harness) transactionProcessedAt(height primitives.BlockHeight, result protocol.ExecutionResult) {
	h.vmMock.When("ProcessTransaction", mock.Any, mock.Any).Call(func(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error) {
		atomic.AddInt32(&h.executions, 1)
		return &transaction.Receipt{
			TxHash:              digest.CalcTxHash(signedTransaction.Transaction),
			ExecutionResult:     result,
			OutputArgumentArray: transaction.EmptyArguments(),
			BlockHeight:         height,
			BlockTimestamp:      primitives.TimestampNano(time.Now().UnixNano()),
		}, nil
	})
}

func (h *harness) numberOfExecutions() int {
	return int(atomic.LoadInt32(&h.executions))
}

func (h *harness) transactionFailsWith(err error) {
	h.vmMock.When("ProcessTransaction", mock.Any, mock.Any).Return(nil, err)
}

// blocks execution until the returned function is called
func (h *harness) transactionProcessingBlocked(height primitives.BlockHeight) (release func()) {
	released := make(chan struct{})
	h.vmMock.When("ProcessTransaction", mock.Any, mock.Any).Call(func(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error) {
		<-released
		return &transaction.Receipt{
			TxHash:              digest.CalcTxHash(signedTransaction.Transaction),
			ExecutionResult:     protocol.EXECUTION_RESULT_SUCCESS,
			OutputArgumentArray: transaction.EmptyArguments(),
			BlockHeight:         height,
		}, nil
	})
	return func() { close(released) }
}

func (h *harness) queryReturns(result protocol.ExecutionResult, height primitives.BlockHeight, outputs ...interface{}) {
	h.vmMock.When("RunQuery", mock.Any, mock.Any).Return(&transaction.QueryResult{
		ExecutionResult:     result,
		OutputArgumentArray: transaction.MustArgumentsFromNatives(outputs...),
		BlockHeight:         height,
	}, nil)
}

func (h *harness) sendTransaction(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*publicapi.SendTransactionOutput, error) {
	return h.papi.SendTransaction(ctx, &publicapi.SendTransactionInput{SignedTransaction: signedTransaction})
}

func (h *harness) getTransactionStatus(ctx context.Context, txHash primitives.Sha256) (*publicapi.GetTransactionStatusOutput, error) {
	return h.papi.GetTransactionStatus(ctx, &publicapi.GetTransactionStatusInput{
		VirtualChainId: 42,
		TxHash:         txHash,
	})
}

func signedTransaction(tb testing.TB, timestamp time.Time, methodName primitives.MethodName, args ...interface{}) *transaction.SignedTransaction {
	keyPair := testKeys.Ed25519KeyPairForTests(0)
	signed, err := signature.SignTransaction(&transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          primitives.TimestampNano(timestamp.UnixNano()),
		SignerPublicKey:    keyPair.PublicKey(),
		ContractName:       "AddressValueStore",
		MethodName:         methodName,
		InputArgumentArray: transaction.MustArgumentsFromNatives(args...),
	}, keyPair.PrivateKey())
	require.NoError(tb, err)
	return signed
}

func helloTransaction(tb testing.TB) *transaction.SignedTransaction {
	return signedTransaction(tb, time.Now(), "hello", "World")
}
