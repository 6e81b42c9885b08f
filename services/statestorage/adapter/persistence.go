// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"bytes"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// contract name -> raw key -> raw value; an empty value deletes the record
type ChainState map[primitives.ContractName]map[string][]byte

type StatePersistence interface {
	Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff ChainState) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error)
	// f must not call back into the persistence
	Each(contract primitives.ContractName, f func(key string, value []byte)) error
}

func IsZeroValue(value []byte) bool {
	return bytes.Equal(value, []byte{}) || value == nil
}

func (s ChainState) Set(contract primitives.ContractName, key []byte, value []byte) {
	if _, ok := s[contract]; !ok {
		s[contract] = map[string][]byte{}
	}
	s[contract][string(key)] = value
}

func (s ChainState) NumberOfRecords() int {
	n := 0
	for _, records := range s {
		n += len(records)
	}
	return n
}
