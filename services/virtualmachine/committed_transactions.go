// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"container/heap"
	"context"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"time"
)

// records of committed transactions live in the block state under this name, keyed by tx hash
const TRANSACTIONS_CONTRACT_NAME = primitives.ContractName("_Transactions")

type committedTransaction struct {
	txHash    string
	timestamp primitives.TimestampNano
}

// min-heap of committed transactions by their own timestamp, guarded by transactionMutex
type committedTransactions []committedTransaction

func (c committedTransactions) Len() int           { return len(c) }
func (c committedTransactions) Less(i, j int) bool { return c[i].timestamp < c[j].timestamp }
func (c committedTransactions) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

func (c *committedTransactions) Push(x interface{}) {
	*c = append(*c, x.(committedTransaction))
}

func (c *committedTransactions) Pop() interface{} {
	old := *c
	last := old[len(old)-1]
	*c = old[:len(old)-1]
	return last
}

func (c *committedTransactions) add(txHash []byte, timestamp primitives.TimestampNano) {
	heap.Push(c, committedTransaction{txHash: string(txHash), timestamp: timestamp})
}

// removes and returns every transaction older than cutoff
func (c *committedTransactions) popOlderThan(cutoff primitives.TimestampNano) []committedTransaction {
	var expired []committedTransaction
	for c.Len() > 0 && (*c)[0].timestamp < cutoff {
		expired = append(expired, heap.Pop(c).(committedTransaction))
	}
	return expired
}

func (c *committedTransactions) restore(txs []committedTransaction) {
	for _, tx := range txs {
		heap.Push(c, tx)
	}
}

func expirationCutoff(now time.Time, window time.Duration) primitives.TimestampNano {
	return primitives.TimestampNano(now.Add(-window).UnixNano())
}

// records of expired transactions are deleted in the same block that commits the next one
func deleteRecords(stateDiff adapter.ChainState, txs []committedTransaction) {
	for _, tx := range txs {
		stateDiff.Set(TRANSACTIONS_CONTRACT_NAME, []byte(tx.txHash), []byte{})
	}
}

func (s *service) loadCommittedTransactions(ctx context.Context) error {
	loaded := committedTransactions{}
	var decodeErr error
	err := s.stateStorage.ScanContract(ctx, TRANSACTIONS_CONTRACT_NAME, func(key []byte, value []byte) {
		_, timestamp, err := transaction.DecodeRecord(key, value)
		if err != nil {
			decodeErr = err
			return
		}
		loaded = append(loaded, committedTransaction{txHash: string(key), timestamp: timestamp})
	})
	if err != nil {
		return err
	}
	if decodeErr != nil {
		return errors.Wrap(decodeErr, "failed to load committed transactions")
	}

	heap.Init(&loaded)
	s.committed = &loaded
	return nil
}

func (s *service) GetTransactionReceipt(ctx context.Context, txHash primitives.Sha256) (*transaction.Receipt, error) {
	raw, ok, err := s.stateStorage.ReadKey(ctx, TRANSACTIONS_CONTRACT_NAME, txHash)
	if err != nil || !ok {
		return nil, err
	}
	receipt, _, err := transaction.DecodeRecord(txHash, raw)
	return receipt, err
}
