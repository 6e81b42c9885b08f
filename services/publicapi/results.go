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
	"github.com/pkg/errors"
	"time"
)

type txOutput struct {
	transactionStatus  protocol.TransactionStatus
	transactionReceipt *transaction.Receipt
	blockHeight        primitives.BlockHeight
	blockTimestamp     primitives.TimestampNano
}

func validateVirtualChain(config config.PublicApiConfig, vcId primitives.VirtualChainId) (protocol.TransactionStatus, error) {
	if config.VirtualChainId() != vcId {
		return protocol.TRANSACTION_STATUS_REJECTED_VIRTUAL_CHAIN_MISMATCH, errors.Errorf("virtual chain mismatch received %d but expected %d", vcId, config.VirtualChainId())
	}
	return protocol.TRANSACTION_STATUS_RESERVED, nil
}

func validateTransaction(config config.PublicApiConfig, tx *transaction.Transaction, now time.Time) (protocol.TransactionStatus, error) {
	if txStatus, err := validateVirtualChain(config, tx.VirtualChainId); err != nil {
		return txStatus, err
	}

	if tx.ContractName == "" || tx.MethodName == "" {
		return protocol.TRANSACTION_STATUS_REJECTED_GLOBAL_PRE_ORDER, errors.New("transaction must name a contract and a method")
	}

	txTime := time.Unix(0, int64(tx.Timestamp))
	if txTime.Before(now.Add(-config.TransactionExpirationWindow())) {
		return protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_WINDOW_EXCEEDED, errors.Errorf("transaction timestamp %s is older than the expiration window %s", txTime.UTC(), config.TransactionExpirationWindow())
	}
	if txTime.After(now.Add(config.TransactionFutureTimestampGrace())) {
		return protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_AHEAD_OF_NODE_TIME, errors.Errorf("transaction timestamp %s is ahead of node time %s", txTime.UTC(), now.UTC())
	}

	return protocol.TRANSACTION_STATUS_RESERVED, nil
}

func translateTransactionStatusToRequestStatus(txStatus protocol.TransactionStatus, executionResult protocol.ExecutionResult) protocol.RequestStatus {
	switch txStatus {
	case protocol.TRANSACTION_STATUS_COMMITTED:
		return translateExecutionStatusToRequestStatus(executionResult)
	case protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_COMMITTED:
		return translateExecutionStatusToRequestStatus(executionResult)
	case protocol.TRANSACTION_STATUS_PENDING:
		return protocol.REQUEST_STATUS_IN_PROCESS
	case protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_PENDING:
		return protocol.REQUEST_STATUS_IN_PROCESS
	case protocol.TRANSACTION_STATUS_NO_RECORD_FOUND:
		return protocol.REQUEST_STATUS_NOT_FOUND
	case protocol.TRANSACTION_STATUS_REJECTED_VIRTUAL_CHAIN_MISMATCH:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_WINDOW_EXCEEDED:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_AHEAD_OF_NODE_TIME:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.TRANSACTION_STATUS_REJECTED_SIGNATURE_MISMATCH:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.TRANSACTION_STATUS_REJECTED_GLOBAL_PRE_ORDER:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.TRANSACTION_STATUS_REJECTED_CONGESTION:
		return protocol.REQUEST_STATUS_CONGESTION
	}
	return protocol.REQUEST_STATUS_SYSTEM_ERROR
}

func translateExecutionStatusToRequestStatus(executionResult protocol.ExecutionResult) protocol.RequestStatus {
	switch executionResult {
	case protocol.EXECUTION_RESULT_SUCCESS:
		return protocol.REQUEST_STATUS_COMPLETED
	case protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT:
		return protocol.REQUEST_STATUS_COMPLETED
	case protocol.EXECUTION_RESULT_ERROR_INPUT:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	case protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED:
		return protocol.REQUEST_STATUS_BAD_REQUEST
	}
	return protocol.REQUEST_STATUS_SYSTEM_ERROR
}

func toSendTxOutput(out *txOutput) *SendTransactionOutput {
	response := &SendTransactionOutput{
		RequestStatus:     translateTransactionStatusToRequestStatus(out.transactionStatus, protocol.EXECUTION_RESULT_RESERVED),
		TransactionStatus: out.transactionStatus,
		BlockHeight:       out.blockHeight,
		BlockTimestamp:    out.blockTimestamp,
	}
	if out.transactionReceipt != nil {
		response.RequestStatus = translateTransactionStatusToRequestStatus(out.transactionStatus, out.transactionReceipt.ExecutionResult)
		response.TransactionReceipt = out.transactionReceipt
	}
	return response
}

func toGetTxStatusOutput(out *txOutput) *GetTransactionStatusOutput {
	sendOutput := toSendTxOutput(out)
	return &GetTransactionStatusOutput{
		RequestStatus:      sendOutput.RequestStatus,
		TransactionStatus:  sendOutput.TransactionStatus,
		TransactionReceipt: sendOutput.TransactionReceipt,
		BlockHeight:        sendOutput.BlockHeight,
		BlockTimestamp:     sendOutput.BlockTimestamp,
	}
}
