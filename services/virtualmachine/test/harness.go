// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/crypto/keys"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/statestorage"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/memory"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	testKeys "github.com/orbs-network/address-value-store/test/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type processorMock struct {
	mock.Mock
}

func (m *processorMock) ProcessCall(ctx context.Context, input *processor.ProcessCallInput) (*processor.ProcessCallOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*processor.ProcessCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *processorMock) RegisterContractSdkCallHandler(handler processor.SdkCallHandler) {
	m.Called(handler)
}

func (m *processorMock) DeployedContracts() []primitives.ContractName {
	return m.Called().Get(0).([]primitives.ContractName)
}

type harness struct {
	processor    *processorMock
	persistence  *memory.InMemoryStatePersistence
	stateStorage statestorage.StateStorage
	service      virtualmachine.VirtualMachine
	config       config.VirtualMachineConfig
}

func newHarness(tb testing.TB, requireSignerAuth bool) *harness {
	return newHarnessWithConfig(tb, config.ForAcceptanceTests().SetBool(config.VIRTUAL_MACHINE_REQUIRE_SIGNER_AUTH, requireSignerAuth))
}

func newHarnessWithConfig(tb testing.TB, cfg config.VirtualMachineConfig) *harness {
	h := &harness{
		processor:   &processorMock{},
		persistence: memory.NewStatePersistence(metric.NewRegistry()),
		config:      cfg,
	}
	h.start(tb)
	return h
}

// a fresh state storage and virtual machine over the same persistence, as after a node restart
func (h *harness) restart(tb testing.TB) {
	h.start(tb)
}

func (h *harness) start(tb testing.TB) {
	logger := log.DefaultTestingLogger(tb)
	registry := metric.NewRegistry()

	stateStorage, err := statestorage.NewStateStorage(h.persistence, logger, registry)
	require.NoError(tb, err)

	h.processor.When("RegisterContractSdkCallHandler", mock.Any).Return().Times(1)
	h.stateStorage = stateStorage
	h.service = virtualmachine.NewVirtualMachine(stateStorage, h.processor, h.config, logger, registry)
}

type contractFunction func(ctx context.Context, contextId primitives.ExecutionContextId) (protocol.ExecutionResult, error)

func (h *harness) expectContractMethodCalled(expectedContractName primitives.ContractName, expectedMethodName primitives.MethodName, f contractFunction) {
	callMatcher := func(i interface{}) bool {
		input, ok := i.(*processor.ProcessCallInput)
		return ok && input.ContractName == expectedContractName && input.MethodName == expectedMethodName
	}

	h.processor.When("ProcessCall", mock.Any, mock.AnyIf("contract and method match", callMatcher)).Call(func(ctx context.Context, input *processor.ProcessCallInput) (*processor.ProcessCallOutput, error) {
		callResult, err := f(ctx, input.ContextId)
		return &processor.ProcessCallOutput{
			OutputArgumentArray: transaction.EmptyArguments(),
			CallResult:          callResult,
		}, err
	}).Times(1)
}

func (h *harness) verifyProcessorCalled(tb testing.TB) {
	ok, err := h.processor.Verify()
	require.True(tb, ok, "processor called incorrectly: %v", err)
}

func (h *harness) handleSdkCall(ctx context.Context, contextId primitives.ExecutionContextId, operationName string, methodName string, args ...interface{}) ([][]byte, error) {
	inputArgs := []*protocol.Argument{}
	for i := transaction.MustArgumentsFromNatives(args...).ArgumentsIterator(); i.HasNext(); {
		inputArgs = append(inputArgs, i.NextArguments())
	}

	output, err := h.service.HandleSdkCall(ctx, &processor.SdkCallInput{
		ContextId:       contextId,
		OperationName:   operationName,
		MethodName:      methodName,
		InputArguments:  inputArgs,
		PermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})
	if err != nil {
		return nil, err
	}

	res := [][]byte{}
	for _, arg := range output.OutputArguments {
		res = append(res, arg.BytesValue())
	}
	return res, nil
}

func (h *harness) processTransaction(ctx context.Context, keyPair *keys.Ed25519KeyPair, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*transaction.Receipt, error) {
	signedTx, err := signTransactionAt(time.Now(), keyPair, contractName, methodName, args...)
	if err != nil {
		return nil, err
	}
	return h.service.ProcessTransaction(ctx, signedTx)
}

func signTransactionAt(timestamp time.Time, keyPair *keys.Ed25519KeyPair, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*transaction.SignedTransaction, error) {
	return signature.SignTransaction(&transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          primitives.TimestampNano(timestamp.UnixNano()),
		SignerPublicKey:    keyPair.PublicKey(),
		ContractName:       contractName,
		MethodName:         methodName,
		InputArgumentArray: transaction.MustArgumentsFromNatives(args...),
	}, keyPair.PrivateKey())
}

func (h *harness) runQuery(ctx context.Context, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*transaction.QueryResult, error) {
	return h.service.RunQuery(ctx, &transaction.Query{
		VirtualChainId:     42,
		ContractName:       contractName,
		MethodName:         methodName,
		InputArgumentArray: transaction.MustArgumentsFromNatives(args...),
	})
}

func (h *harness) committedValue(tb testing.TB, contractName primitives.ContractName, key []byte) []byte {
	value, _, err := h.persistence.Read(contractName, string(key))
	require.NoError(tb, err)
	return value
}

func signerKeys(index int) *keys.Ed25519KeyPair {
	return testKeys.Ed25519KeyPairForTests(index)
}
