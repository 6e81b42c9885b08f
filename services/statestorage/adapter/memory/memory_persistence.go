// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"fmt"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
	"strings"
	"sync"
)

type metrics struct {
	numberOfKeys      *metric.Gauge
	numberOfContracts *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfKeys:      m.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count"),
		numberOfContracts: m.NewGauge("StateStoragePersistence.TotalNumberOfContracts.Count"),
	}
}

type InMemoryStatePersistence struct {
	metrics   *metrics
	mutex     sync.RWMutex
	fullState adapter.ChainState
	height    primitives.BlockHeight
	ts        primitives.TimestampNano
}

func NewStatePersistence(metricFactory metric.Factory) *InMemoryStatePersistence {
	return &InMemoryStatePersistence{
		metrics:   newMetrics(metricFactory),
		fullState: adapter.ChainState{},
	}
}

func (sp *InMemoryStatePersistence) reportSize() {
	nContracts := 0
	nKeys := 0
	for _, records := range sp.fullState {
		if len(records) == 0 {
			continue
		}
		nContracts++
		nKeys = nKeys + len(records)
	}
	sp.metrics.numberOfKeys.Update(int64(nKeys))
	sp.metrics.numberOfContracts.Update(int64(nContracts))
}

func (sp *InMemoryStatePersistence) Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	sp.height = height
	sp.ts = ts

	for contract, records := range diff {
		for key, value := range records {
			sp._writeOneRecord(contract, key, value)
		}
	}
	sp.reportSize()
	return nil
}

func (sp *InMemoryStatePersistence) _writeOneRecord(c primitives.ContractName, key string, value []byte) {
	if _, ok := sp.fullState[c]; !ok {
		sp.fullState[c] = map[string][]byte{}
	}

	if adapter.IsZeroValue(value) {
		delete(sp.fullState[c], key)
		return
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	sp.fullState[c][key] = stored
}

func (sp *InMemoryStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	record, ok := sp.fullState[contract][key]
	return record, ok, nil
}

func (sp *InMemoryStatePersistence) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	return sp.height, sp.ts, nil
}

func (sp *InMemoryStatePersistence) Each(contract primitives.ContractName, f func(key string, value []byte)) error {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	for key, value := range sp.fullState[contract] {
		f(key, value)
	}
	return nil
}

// iterates a consistent copy of the full state, used by the snapshot serializer
func (sp *InMemoryStatePersistence) FullState() (primitives.BlockHeight, primitives.TimestampNano, adapter.ChainState) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	state := make(adapter.ChainState, len(sp.fullState))
	for contract, records := range sp.fullState {
		copied := make(map[string][]byte, len(records))
		for k, v := range records {
			copied[k] = v
		}
		state[contract] = copied
	}
	return sp.height, sp.ts, state
}

// keys and values are printed as hex, contracts and keys sorted
func (sp *InMemoryStatePersistence) Dump() string {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	output := strings.Builder{}
	output.WriteString(fmt.Sprintf("{height: %d, data: {", uint64(sp.height)))
	contracts := make([]primitives.ContractName, 0, len(sp.fullState))
	for c := range sp.fullState {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i] < contracts[j] })
	for _, currentContract := range contracts {
		keys := make([]string, 0, len(sp.fullState[currentContract]))
		for k := range sp.fullState[currentContract] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		output.WriteString(string(currentContract) + ":{")
		for _, k := range keys {
			output.WriteString(fmt.Sprintf("%x:%x,", k, sp.fullState[currentContract][k]))
		}
		output.WriteString("},")
	}
	output.WriteString("}}")
	return output.String()
}
