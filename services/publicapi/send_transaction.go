// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

func (s *service) SendTransaction(parentCtx context.Context, input *SendTransactionInput) (*SendTransactionOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.SendTransaction")
	start := time.Now()
	out, err := s.sendTransaction(ctx, input)
	if out == nil {
		return nil, err
	}
	if out.transactionStatus == protocol.TRANSACTION_STATUS_COMMITTED {
		s.metrics.sendTransactionTime.RecordSince(start)
	}
	return toSendTxOutput(out), err
}

func (s *service) sendTransaction(ctx context.Context, input *SendTransactionInput) (*txOutput, error) {
	s.metrics.totalTransactionsFromClients.Inc()
	if input == nil || input.SignedTransaction == nil || input.SignedTransaction.Transaction == nil {
		s.metrics.totalTransactionsErrNilRequest.Inc()
		err := errors.Errorf("client request is nil")
		s.logger.Info("send transaction received missing input", log.Error(err))
		return nil, err
	}

	tx := input.SignedTransaction.Transaction
	txHash := digest.CalcTxHash(tx)
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Transaction(txHash))

	if txStatus, err := validateTransaction(s.config, tx, time.Now()); err != nil {
		s.metrics.totalTransactionsErrInvalidRequest.Inc()
		logger.Info("send transaction received input failed", log.Error(err))
		return &txOutput{transactionStatus: txStatus}, err
	}

	if !s.limiter.Allow() {
		s.metrics.totalRequestsErrCongestion.Inc()
		logger.Info("send transaction rejected due to congestion")
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_REJECTED_CONGESTION}, errors.New("too many requests")
	}

	// the waiter is registered before reserving so a fast execution cannot complete unobserved
	key := string(txHash)
	waitResult := s.waiter.add(key)

	committed, pending := s.receipts.reserve(key)
	if committed != nil {
		s.metrics.totalTransactionsErrDuplicate.Inc()
		s.waiter.deleteByChannel(waitResult)
		return asDuplicate(committed), nil
	}
	if pending {
		s.metrics.totalTransactionsErrDuplicate.Inc()
		s.waiter.deleteByChannel(waitResult)
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_PENDING}, nil
	}

	logger.Info("send transaction request received")

	tc, _ := trace.FromContext(ctx)
	govnr.Once(logfields.GovnrErrorer(logger), func() {
		// execution outlives the request, a timed out client can still find the receipt later
		s.execute(trace.PropagateContext(context.Background(), tc), key, input.SignedTransaction, logger)
	})

	waitCtx, cancel := context.WithTimeout(ctx, s.config.PublicApiSendTransactionTimeout())
	defer cancel()

	out, err := s.waiter.wait(waitCtx, waitResult)
	if err != nil {
		s.metrics.totalTransactionsErrTimeout.Inc()
		logger.Info("waiting for transaction to be processed failed", log.Error(err))
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_PENDING}, nil
	}
	return out, nil
}

func (s *service) execute(ctx context.Context, key string, signedTransaction *transaction.SignedTransaction, logger log.Logger) {
	receipt, err := s.virtualMachine.ProcessTransaction(ctx, signedTransaction)

	// out is what the receipt index keeps, reply is what the waiting client gets
	var out, reply *txOutput
	switch {
	case errors.Cause(err) == virtualmachine.ErrSignatureMismatch:
		logger.Info("transaction signature is invalid", log.Error(err))
		out = &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_REJECTED_SIGNATURE_MISMATCH}
	case errors.Cause(err) == virtualmachine.ErrTransactionExpired:
		logger.Info("transaction expired before it was processed", log.Error(err))
		out = &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_REJECTED_TIMESTAMP_WINDOW_EXCEEDED}
	case errors.Cause(err) == virtualmachine.ErrTransactionAlreadyCommitted:
		s.metrics.totalTransactionsErrDuplicate.Inc()
		logger.Info("transaction was committed before", logfields.BlockHeight(receipt.BlockHeight))
		out = committedOutput(receipt)
		reply = asDuplicate(out)
	case err != nil:
		logger.Error("failed to process transaction", log.Error(err))
		out = &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_RESERVED}
	default:
		logger.Info("transaction processed", log.Stringable("execution-result", receipt.ExecutionResult), logfields.BlockHeight(receipt.BlockHeight))
		out = committedOutput(receipt)
	}

	if reply == nil {
		reply = out
	}
	s.receipts.complete(key, out)
	s.waiter.complete(key, reply)
}

func committedOutput(receipt *transaction.Receipt) *txOutput {
	return &txOutput{
		transactionStatus:  protocol.TRANSACTION_STATUS_COMMITTED,
		transactionReceipt: receipt,
		blockHeight:        receipt.BlockHeight,
		blockTimestamp:     receipt.BlockTimestamp,
	}
}

func asDuplicate(committed *txOutput) *txOutput {
	return &txOutput{
		transactionStatus:  protocol.TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_COMMITTED,
		transactionReceipt: committed.transactionReceipt,
		blockHeight:        committed.blockHeight,
		blockTimestamp:     committed.blockTimestamp,
	}
}

func (s *service) GetTransactionStatus(parentCtx context.Context, input *GetTransactionStatusInput) (*GetTransactionStatusOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.GetTransactionStatus")
	start := time.Now()
	defer s.metrics.getTransactionStatusTime.RecordSince(start)

	if input == nil {
		err := errors.Errorf("client request is nil")
		s.logger.Info("get transaction status received missing input", log.Error(err))
		return nil, err
	}

	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Transaction(input.TxHash))
	if txStatus, err := validateVirtualChain(s.config, input.VirtualChainId); err != nil {
		logger.Info("get transaction status received input failed", log.Error(err))
		return toGetTxStatusOutput(&txOutput{transactionStatus: txStatus}), err
	}

	out, err := s.lookupTransaction(ctx, input.TxHash)
	if err != nil {
		logger.Error("failed to read committed transaction", log.Error(err))
	}
	return toGetTxStatusOutput(out), err
}

// recent results come from the receipt index, older ones from the committed transaction records
func (s *service) lookupTransaction(ctx context.Context, txHash primitives.Sha256) (*txOutput, error) {
	committed, pending := s.receipts.get(string(txHash))
	switch {
	case committed != nil:
		return committed, nil
	case pending:
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_PENDING}, nil
	}

	receipt, err := s.virtualMachine.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_RESERVED}, err
	}
	if receipt == nil {
		return &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_NO_RECORD_FOUND}, nil
	}
	return committedOutput(receipt), nil
}
