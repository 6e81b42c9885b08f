// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/address-value-store/test/with"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestSendTransaction_CommitsAndReturnsReceipt(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))
		h.transactionProcessedAt(1, protocol.EXECUTION_RESULT_SUCCESS)
		tx := helloTransaction(t)

		out, err := h.sendTransaction(ctx, tx)
		require.NoError(t, err)
		require.Equal(t, protocol.REQUEST_STATUS_COMPLETED, out.RequestStatus)
		require.Equal(t, protocol.TRANSACTION_STATUS_COMMITTED, out.TransactionStatus)
		require.EqualValues(t, 1, out.BlockHeight)
		require.NotNil(t, out.TransactionReceipt)
		require.Equal(t, digest.CalcTxHash(tx.Transaction), out.TransactionReceipt.TxHash)
	})
}

func TestSendTransaction_DuplicateOfCommittedIsNotExecutedAgain(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))
		h.transactionProcessedAt(1, protocol.EXECUTION_RESULT_SUCCESS)
		tx := helloTransaction(t)

		_, err := h.sendTransaction(ctx, tx)
		require.NoError(t, err)

		out, err := h.sendTransaction(ctx, tx)
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_COMMITTED, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_COMPLETED, out.RequestStatus)
		require.NotNil(t, out.TransactionReceipt)
		require.EqualValues(t, 1, out.BlockHeight)

		require.Equal(t, 1, h.numberOfExecutions(), "virtual machine should execute the transaction once")
	})
}

func TestSendTransaction_RejectsWrongVirtualChain(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))
		h.vmMock.Never("ProcessTransaction", mock.Any, mock.Any)
		tx := helloTransaction(t)
		tx.Transaction.VirtualChainId = 43

		out, err := h.sendTransaction(ctx, tx)
		require.Error(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_REJECTED_VIRTUAL_CHAIN_MISMATCH, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_BAD_REQUEST, out.RequestStatus)

		ok, verifyErr := h.vmMock.Verify()
		require.True(t, ok, verifyErr)
	})
}

func TestSendTransaction_RejectsExpiredTimestamp(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))
		h.vmMock.Never("ProcessTransaction", mock.Any, mock.Any)
		tx := signedTransaction(t, time.Now().Add(-24*time.Hour), "hello", "World")

		out, err := h.sendTransaction(ctx, tx)
		require.Error(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_WINDOW_EXCEEDED, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_BAD_REQUEST, out.RequestStatus)
	})
}

func TestSendTransaction_RejectsWhenCongested(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t), withRequestsPerSecond(1), withBurst(1))
		h.transactionProcessedAt(1, protocol.EXECUTION_RESULT_SUCCESS)

		_, err := h.sendTransaction(ctx, signedTransaction(t, time.Now(), "hello", "first"))
		require.NoError(t, err)

		out, err := h.sendTransaction(ctx, signedTransaction(t, time.Now(), "hello", "second"))
		require.Error(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_REJECTED_CONGESTION, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_CONGESTION, out.RequestStatus)
	})
}

func TestSendTransaction_SignatureMismatchIsBadRequest(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))
		h.transactionFailsWith(virtualmachine.ErrSignatureMismatch)

		out, err := h.sendTransaction(ctx, helloTransaction(t))
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_REJECTED_SIGNATURE_MISMATCH, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_BAD_REQUEST, out.RequestStatus)
		require.Nil(t, out.TransactionReceipt)
	})
}

func TestSendTransaction_ExecutionFailureIsSystemError(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		parent.AllowErrorsMatching("failed to process transaction")
		test.WithContext(func(ctx context.Context) {
			h := newPublicApiHarness(t, parent.Logger)
			h.transactionFailsWith(errors.New("state storage is unavailable"))
			tx := helloTransaction(t)

			out, err := h.sendTransaction(ctx, tx)
			require.NoError(t, err)
			require.Equal(t, protocol.REQUEST_STATUS_SYSTEM_ERROR, out.RequestStatus)

			status, err := h.getTransactionStatus(ctx, digest.CalcTxHash(tx.Transaction))
			require.NoError(t, err)
			require.Equal(t, protocol.TRANSACTION_STATUS_NO_RECORD_FOUND, status.TransactionStatus, "failed execution should not leave a record")
		})
	})
}

func TestSendTransaction_TimeoutReturnsPendingAndCompletesLater(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t), withSendTransactionTimeout(20*time.Millisecond))
		release := h.transactionProcessingBlocked(7)
		tx := helloTransaction(t)
		txHash := digest.CalcTxHash(tx.Transaction)

		out, err := h.sendTransaction(ctx, tx)
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_PENDING, out.TransactionStatus)
		require.Equal(t, protocol.REQUEST_STATUS_IN_PROCESS, out.RequestStatus)

		duplicate, err := h.sendTransaction(ctx, tx)
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_PENDING, duplicate.TransactionStatus)

		status, err := h.getTransactionStatus(ctx, txHash)
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_PENDING, status.TransactionStatus)

		release()

		require.True(t, test.Eventually(test.EVENTUALLY_LOCAL_TIMEOUT, func() bool {
			status, err := h.getTransactionStatus(ctx, txHash)
			return err == nil && status.TransactionStatus == protocol.TRANSACTION_STATUS_COMMITTED
		}), "transaction should eventually be committed")

		status, err = h.getTransactionStatus(ctx, txHash)
		require.NoError(t, err)
		require.Equal(t, protocol.REQUEST_STATUS_COMPLETED, status.RequestStatus)
		require.EqualValues(t, 7, status.BlockHeight)
		require.Equal(t, txHash, status.TransactionReceipt.TxHash)
	})
}

func TestSendTransaction_NilInput(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newPublicApiHarness(t, log.DefaultTestingLogger(t))

		out, err := h.papi.SendTransaction(ctx, nil)
		require.Error(t, err)
		require.Nil(t, out)
	})
}
