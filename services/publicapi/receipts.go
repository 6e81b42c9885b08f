// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"github.com/golang/groupcache/lru"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"sync"
)

// committed results of recent transactions, oldest evicted first once full
type receiptIndex struct {
	mutex     sync.Mutex
	committed *lru.Cache
	pending   map[string]struct{}

	committedCount *metric.Gauge
	pendingCount   *metric.Gauge
}

func newReceiptIndex(maxSize int, factory metric.Factory) *receiptIndex {
	return &receiptIndex{
		committed:      lru.New(maxSize),
		pending:        make(map[string]struct{}),
		committedCount: factory.NewGauge("PublicApi.ReceiptIndex.Committed.Count"),
		pendingCount:   factory.NewGauge("PublicApi.ReceiptIndex.Pending.Count"),
	}
}

// returns the committed result or whether the transaction is running, otherwise marks it as running
func (r *receiptIndex) reserve(k string) (committed *txOutput, pending bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if out, found := r.committed.Get(k); found {
		return out.(*txOutput), false
	}
	if _, found := r.pending[k]; found {
		return nil, true
	}

	r.pending[k] = struct{}{}
	r.pendingCount.Update(int64(len(r.pending)))
	return nil, false
}

func (r *receiptIndex) complete(k string, out *txOutput) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.pending, k)
	r.pendingCount.Update(int64(len(r.pending)))

	if out.transactionStatus == protocol.TRANSACTION_STATUS_COMMITTED {
		r.committed.Add(k, out)
		r.committedCount.Update(int64(r.committed.Len()))
	}
}

func (r *receiptIndex) get(k string) (committed *txOutput, pending bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if out, found := r.committed.Get(k); found {
		return out.(*txOutput), false
	}
	_, pending = r.pending[k]
	return nil, pending
}
