// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type transientRecord struct {
	value   []byte
	isDirty bool
}

type transientContract map[string]*transientRecord

// writes of a single transaction, held until the transaction succeeds
type transientState struct {
	contracts         map[primitives.ContractName]transientContract
	contractSortOrder []primitives.ContractName
}

func newTransientState() *transientState {
	return &transientState{
		contracts: make(map[primitives.ContractName]transientContract),
	}
}

func (t *transientState) getValue(contract primitives.ContractName, key []byte) ([]byte, bool) {
	records, found := t.contracts[contract]
	if !found {
		return nil, false
	}
	record, found := records[string(key)]
	if !found {
		return nil, false
	}
	return record.value, true
}

func (t *transientState) setValue(contract primitives.ContractName, key []byte, value []byte, isDirty bool) {
	records, found := t.contracts[contract]
	if !found {
		records = make(transientContract)
		t.contracts[contract] = records
		t.contractSortOrder = append(t.contractSortOrder, contract)
	}

	if record, found := records[string(key)]; found {
		record.value = value
		record.isDirty = isDirty
		return
	}
	records[string(key)] = &transientRecord{value: value, isDirty: isDirty}
}

func (t *transientState) forDirty(contract primitives.ContractName, f func(key []byte, value []byte)) {
	for key, record := range t.contracts[contract] {
		if record.isDirty {
			f([]byte(key), record.value)
		}
	}
}

func (t *transientState) toChainState() adapter.ChainState {
	res := make(adapter.ChainState)
	for _, contract := range t.contractSortOrder {
		t.forDirty(contract, func(key []byte, value []byte) {
			res.Set(contract, key, value)
		})
	}
	return res
}
