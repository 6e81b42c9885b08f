// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/statestorage"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

const INIT_METHOD_NAME = primitives.MethodName("_init")

type methodCall struct {
	contractName    primitives.ContractName
	methodName      primitives.MethodName
	inputArguments  *protocol.ArgumentArray
	signerAddress   primitives.ClientAddress
	permissionScope protocol.ExecutionPermissionScope
}

func (s *service) ProcessTransaction(ctx context.Context, signedTransaction *transaction.SignedTransaction) (*transaction.Receipt, error) {
	if signedTransaction == nil || signedTransaction.Transaction == nil {
		return nil, errors.New("missing transaction")
	}
	tx := signedTransaction.Transaction
	txHash := digest.CalcTxHash(tx)
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Transaction(txHash))

	if !signature.VerifyTransaction(signedTransaction) {
		return nil, ErrSignatureMismatch
	}
	signerAddress, err := digest.CalcClientAddressOfEd25519PublicKey(tx.SignerPublicKey)
	if err != nil {
		return nil, errors.Wrap(ErrSignatureMismatch, err.Error())
	}

	s.transactionMutex.Lock()
	defer s.transactionMutex.Unlock()

	now := time.Now()
	defer s.metrics.processTransactionTime.RecordSince(now)
	s.metrics.transactionsRate.Measure(1)

	if tx.Timestamp < expirationCutoff(now, s.config.TransactionExpirationWindow()) {
		return nil, ErrTransactionExpired
	}
	committedReceipt, err := s.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if committedReceipt != nil {
		logger.Info("transaction already committed", logfields.BlockHeight(committedReceipt.BlockHeight))
		return committedReceipt, ErrTransactionAlreadyCommitted
	}

	lastCommittedBlockHeight, _, err := s.stateStorage.GetBlockHeight(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("processing transaction", logfields.Contract(tx.ContractName), logfields.Method(tx.MethodName), logfields.ClientAddress(signerAddress))
	callResult, outputArgs, transientState, _ := s.runMethod(ctx, lastCommittedBlockHeight, protocol.ACCESS_SCOPE_READ_WRITE, &methodCall{
		contractName:    tx.ContractName,
		methodName:      tx.MethodName,
		inputArguments:  tx.InputArgumentArray,
		signerAddress:   signerAddress,
		permissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})

	// a failed transaction is still recorded in a block but leaves the state untouched
	stateDiff := adapter.ChainState{}
	if callResult == protocol.EXECUTION_RESULT_SUCCESS {
		stateDiff = transientState.toChainState()
	} else {
		s.metrics.failedTransactions.Measure(1)
	}

	receipt := &transaction.Receipt{
		TxHash:              txHash,
		ExecutionResult:     callResult,
		OutputArgumentArray: outputArgs,
		BlockHeight:         lastCommittedBlockHeight + 1,
		BlockTimestamp:      primitives.TimestampNano(now.UnixNano()),
	}
	stateDiff.Set(TRANSACTIONS_CONTRACT_NAME, txHash, transaction.EncodeRecord(tx, receipt))
	expired := s.committed.popOlderThan(expirationCutoff(now, s.config.TransactionExpirationWindow()))
	deleteRecords(stateDiff, expired)

	if err := s.commit(ctx, receipt.BlockHeight, receipt.BlockTimestamp, stateDiff); err != nil {
		s.committed.restore(expired)
		return nil, err
	}
	s.committed.add(txHash, tx.Timestamp)
	if len(expired) > 0 {
		logger.Info("pruned expired transaction records", log.Int("count", len(expired)))
	}

	return receipt, nil
}

func (s *service) RunQuery(ctx context.Context, query *transaction.Query) (*transaction.QueryResult, error) {
	if query == nil {
		return nil, errors.New("missing query")
	}

	start := time.Now()
	defer s.metrics.runQueryTime.RecordSince(start)

	var signerAddress primitives.ClientAddress
	if len(query.SignerPublicKey) > 0 {
		address, err := digest.CalcClientAddressOfEd25519PublicKey(query.SignerPublicKey)
		if err != nil {
			return nil, err
		}
		signerAddress = address
	}

	blockHeight, blockTimestamp, err := s.stateStorage.GetBlockHeight(ctx)
	if err != nil {
		return nil, err
	}

	callResult, outputArgs, _, _ := s.runMethod(ctx, blockHeight, protocol.ACCESS_SCOPE_READ_ONLY, &methodCall{
		contractName:    query.ContractName,
		methodName:      query.MethodName,
		inputArguments:  query.InputArgumentArray,
		signerAddress:   signerAddress,
		permissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})

	return &transaction.QueryResult{
		ExecutionResult:     callResult,
		OutputArgumentArray: outputArgs,
		BlockHeight:         blockHeight,
		BlockTimestamp:      blockTimestamp,
	}, nil
}

// runs _init of every deployed contract with system permissions, writes are committed as one block
func (s *service) InitializeContracts(ctx context.Context) error {
	s.transactionMutex.Lock()
	defer s.transactionMutex.Unlock()

	if err := s.loadCommittedTransactions(ctx); err != nil {
		return err
	}

	lastCommittedBlockHeight, _, err := s.stateStorage.GetBlockHeight(ctx)
	if err != nil {
		return err
	}

	stateDiff := adapter.ChainState{}
	for _, contractName := range s.processor.DeployedContracts() {
		callResult, _, transientState, err := s.runMethod(ctx, lastCommittedBlockHeight, protocol.ACCESS_SCOPE_READ_WRITE, &methodCall{
			contractName:    contractName,
			methodName:      INIT_METHOD_NAME,
			inputArguments:  transaction.EmptyArguments(),
			permissionScope: protocol.PERMISSION_SCOPE_SYSTEM,
		})
		if callResult != protocol.EXECUTION_RESULT_SUCCESS {
			return errors.Errorf("failed to initialize contract %s: %s (%v)", contractName, callResult, err)
		}
		for contract, records := range transientState.toChainState() {
			for key, value := range records {
				stateDiff.Set(contract, []byte(key), value)
			}
		}
		s.logger.Info("contract initialized", logfields.Contract(contractName))
	}

	if stateDiff.NumberOfRecords() == 0 {
		return nil
	}
	return s.commit(ctx, lastCommittedBlockHeight+1, primitives.TimestampNano(time.Now().UnixNano()), stateDiff)
}

func (s *service) runMethod(ctx context.Context, blockHeight primitives.BlockHeight, accessScope protocol.ExecutionAccessScope, call *methodCall) (protocol.ExecutionResult, *protocol.ArgumentArray, *transientState, error) {
	contextId, executionContext := s.contexts.allocateExecutionContext(blockHeight, accessScope)
	defer s.contexts.destroyExecutionContext(contextId)
	executionContext.contractName = call.contractName
	executionContext.signerAddress = call.signerAddress

	inputArgs := call.inputArguments
	if inputArgs == nil {
		inputArgs = transaction.EmptyArguments()
	}

	output, err := s.processor.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              contextId,
		ContractName:           call.contractName,
		MethodName:             call.methodName,
		InputArgumentArray:     inputArgs,
		AccessScope:            accessScope,
		CallingPermissionScope: call.permissionScope,
	})
	if output == nil {
		s.logger.Error("processor returned no output", log.Error(err), logfields.Contract(call.contractName), logfields.Method(call.methodName))
		return protocol.EXECUTION_RESULT_ERROR_UNEXPECTED, transaction.EmptyArguments(), executionContext.transientState, errors.Wrap(err, "processor returned no output")
	}
	if err != nil {
		s.logger.Info("method execution failed", log.Stringable("result", output.CallResult), log.Error(err), logfields.Contract(call.contractName), logfields.Method(call.methodName))
	}

	outputArgs := output.OutputArgumentArray
	if outputArgs == nil {
		outputArgs = transaction.EmptyArguments()
	}
	return output.CallResult, outputArgs, executionContext.transientState, err
}

func (s *service) commit(ctx context.Context, blockHeight primitives.BlockHeight, blockTimestamp primitives.TimestampNano, stateDiff adapter.ChainState) error {
	_, err := s.stateStorage.CommitStateDiff(ctx, &statestorage.CommitStateDiffInput{
		BlockHeight:        blockHeight,
		BlockTimestamp:     blockTimestamp,
		ContractStateDiffs: stateDiff,
	})
	return errors.Wrapf(err, "failed to commit block %d", blockHeight)
}
