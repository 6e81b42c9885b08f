// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestProcessTransaction_RejectsTamperedTransaction(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t, false)
		kp := signerKeys(0)

		signedTx, err := signature.SignTransaction(&transaction.Transaction{
			VirtualChainId:     42,
			Timestamp:          primitives.TimestampNano(time.Now().UnixNano()),
			SignerPublicKey:    kp.PublicKey(),
			ContractName:       "Contract1",
			MethodName:         "method1",
			InputArgumentArray: transaction.EmptyArguments(),
		}, kp.PrivateKey())
		require.NoError(t, err)
		signedTx.Transaction.MethodName = "method2"

		_, err = h.service.ProcessTransaction(ctx, signedTx)
		require.Equal(t, virtualmachine.ErrSignatureMismatch, errors.Cause(err))

		height, _, err := h.stateStorage.GetBlockHeight(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 0, height, "rejected transactions do not take a block")
	})
}

func TestProcessTransaction_EachTransactionIsABlock(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t, false)
		success := func(ctx context.Context, contextId primitives.ExecutionContextId) (protocol.ExecutionResult, error) {
			return protocol.EXECUTION_RESULT_SUCCESS, nil
		}
		h.expectContractMethodCalled("Contract1", "method1", success)
		h.expectContractMethodCalled("Contract1", "method2", success)

		receipt1, err := h.processTransaction(ctx, signerKeys(0), "Contract1", "method1")
		require.NoError(t, err)
		receipt2, err := h.processTransaction(ctx, signerKeys(0), "Contract1", "method2")
		require.NoError(t, err)

		require.EqualValues(t, 1, receipt1.BlockHeight)
		require.EqualValues(t, 2, receipt2.BlockHeight)
		require.NotEqual(t, receipt1.TxHash, receipt2.TxHash)
		h.verifyProcessorCalled(t)
	})
}

func TestProcessTransaction_RunsWithReadWriteAccess(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t, false)

		var observed *processor.ProcessCallInput
		h.processor.When("ProcessCall", mock.Any, mock.Any).Call(func(ctx context.Context, input *processor.ProcessCallInput) (*processor.ProcessCallOutput, error) {
			observed = input
			return &processor.ProcessCallOutput{OutputArgumentArray: transaction.EmptyArguments(), CallResult: protocol.EXECUTION_RESULT_SUCCESS}, nil
		}).Times(1)

		_, err := h.processTransaction(ctx, signerKeys(0), "Contract1", "method1", uint32(7))
		require.NoError(t, err)

		require.Equal(t, protocol.ACCESS_SCOPE_READ_WRITE, observed.AccessScope)
		require.Equal(t, protocol.PERMISSION_SCOPE_SERVICE, observed.CallingPermissionScope)
		args, err := transaction.ArgumentsToNatives(observed.InputArgumentArray)
		require.NoError(t, err)
		require.Equal(t, []interface{}{uint32(7)}, args)
	})
}

func TestInitializeContracts_RunsInitWithSystemPermissions(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t, false)
		h.processor.When("DeployedContracts").Return([]primitives.ContractName{"Contract1"}).Times(1)

		h.expectContractMethodCalled("Contract1", "_init", func(ctx context.Context, contextId primitives.ExecutionContextId) (protocol.ExecutionResult, error) {
			_, err := h.handleSdkCall(ctx, contextId, processor.SDK_OPERATION_NAME_STATE, "write", []byte("version"), []byte{0x01})
			require.NoError(t, err)
			return protocol.EXECUTION_RESULT_SUCCESS, nil
		})

		require.NoError(t, h.service.InitializeContracts(ctx))

		require.Equal(t, []byte{0x01}, h.committedValue(t, "Contract1", []byte("version")))
		height, _, err := h.stateStorage.GetBlockHeight(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, height)
		h.verifyProcessorCalled(t)
	})
}

func TestInitializeContracts_FailsWhenInitFails(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t, false)
		h.processor.When("DeployedContracts").Return([]primitives.ContractName{"Contract1"}).Times(1)

		h.expectContractMethodCalled("Contract1", "_init", func(ctx context.Context, contextId primitives.ExecutionContextId) (protocol.ExecutionResult, error) {
			return protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, errors.New("init failed")
		})

		require.Error(t, h.service.InitializeContracts(ctx))
	})
}
