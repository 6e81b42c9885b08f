// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func transactionAt(ts time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          primitives.TimestampNano(ts.UnixNano()),
		ContractName:       "AddressValueStore",
		MethodName:         "hello",
		InputArgumentArray: transaction.EmptyArguments(),
	}
}

func TestValidateTransaction(t *testing.T) {
	cfg := config.ForAcceptanceTests()
	now := time.Now()

	tests := []struct {
		name   string
		expect protocol.TransactionStatus
		tx     func() *transaction.Transaction
	}{
		{"valid", protocol.TRANSACTION_STATUS_RESERVED, func() *transaction.Transaction { return transactionAt(now) }},
		{"wrong virtual chain", protocol.TRANSACTION_STATUS_REJECTED_VIRTUAL_CHAIN_MISMATCH, func() *transaction.Transaction {
			tx := transactionAt(now)
			tx.VirtualChainId = 43
			return tx
		}},
		{"missing method", protocol.TRANSACTION_STATUS_REJECTED_GLOBAL_PRE_ORDER, func() *transaction.Transaction {
			tx := transactionAt(now)
			tx.MethodName = ""
			return tx
		}},
		{"expired", protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_WINDOW_EXCEEDED, func() *transaction.Transaction {
			return transactionAt(now.Add(-cfg.TransactionExpirationWindow() - time.Minute))
		}},
		{"from the future", protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_AHEAD_OF_NODE_TIME, func() *transaction.Transaction {
			return transactionAt(now.Add(cfg.TransactionFutureTimestampGrace() + time.Minute))
		}},
	}
	for i := range tests {
		cTest := tests[i]
		t.Run(cTest.name, func(t *testing.T) {
			status, err := validateTransaction(cfg, cTest.tx(), now)
			require.Equal(t, cTest.expect, status)
			if cTest.expect == protocol.TRANSACTION_STATUS_RESERVED {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestTranslateTransactionStatusToRequestStatus(t *testing.T) {
	tests := []struct {
		name   string
		expect protocol.RequestStatus
		status protocol.TransactionStatus
		result protocol.ExecutionResult
	}{
		{"committed success", protocol.REQUEST_STATUS_COMPLETED, protocol.TRANSACTION_STATUS_COMMITTED, protocol.EXECUTION_RESULT_SUCCESS},
		{"committed contract error", protocol.REQUEST_STATUS_COMPLETED, protocol.TRANSACTION_STATUS_COMMITTED, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT},
		{"committed bad input", protocol.REQUEST_STATUS_BAD_REQUEST, protocol.TRANSACTION_STATUS_COMMITTED, protocol.EXECUTION_RESULT_ERROR_INPUT},
		{"duplicate committed", protocol.REQUEST_STATUS_COMPLETED, protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_COMMITTED, protocol.EXECUTION_RESULT_SUCCESS},
		{"pending", protocol.REQUEST_STATUS_IN_PROCESS, protocol.TRANSACTION_STATUS_PENDING, protocol.EXECUTION_RESULT_RESERVED},
		{"duplicate pending", protocol.REQUEST_STATUS_IN_PROCESS, protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_PENDING, protocol.EXECUTION_RESULT_RESERVED},
		{"no record", protocol.REQUEST_STATUS_NOT_FOUND, protocol.TRANSACTION_STATUS_NO_RECORD_FOUND, protocol.EXECUTION_RESULT_RESERVED},
		{"signature mismatch", protocol.REQUEST_STATUS_BAD_REQUEST, protocol.TRANSACTION_STATUS_REJECTED_SIGNATURE_MISMATCH, protocol.EXECUTION_RESULT_RESERVED},
		{"congestion", protocol.REQUEST_STATUS_CONGESTION, protocol.TRANSACTION_STATUS_REJECTED_CONGESTION, protocol.EXECUTION_RESULT_RESERVED},
		{"unknown", protocol.REQUEST_STATUS_SYSTEM_ERROR, protocol.TRANSACTION_STATUS_RESERVED, protocol.EXECUTION_RESULT_RESERVED},
	}
	for i := range tests {
		cTest := tests[i]
		t.Run(cTest.name, func(t *testing.T) {
			require.Equal(t, cTest.expect, translateTransactionStatusToRequestStatus(cTest.status, cTest.result))
		})
	}
}

func TestToSendTxOutput_WithoutReceipt(t *testing.T) {
	out := toSendTxOutput(&txOutput{transactionStatus: protocol.TRANSACTION_STATUS_REJECTED_CONGESTION, blockHeight: 8})

	require.Nil(t, out.TransactionReceipt)
	require.EqualValues(t, 8, out.BlockHeight)
	require.Equal(t, protocol.REQUEST_STATUS_CONGESTION, out.RequestStatus)
}
