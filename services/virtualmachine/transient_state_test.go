// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

type keyValuePair struct {
	key   []byte
	value []byte
}

func requireDirtyPairs(t *testing.T, s *transientState, contract primitives.ContractName, expected []keyValuePair) {
	d := []keyValuePair{}
	s.forDirty(contract, func(key []byte, value []byte) {
		d = append(d, keyValuePair{key, value})
	})
	require.ElementsMatch(t, expected, d, "dirty keys should be equal")
}

func TestTransientStateReadMissingContract(t *testing.T) {
	s := newTransientState()

	_, found := s.getValue("Contract1", []byte{0x01})
	require.False(t, found, "key should not be found")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateReadMissingKey(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x02}, []byte{0x77, 0x88}, false)

	_, found := s.getValue("Contract1", []byte{0x01})
	require.False(t, found, "key should not be found")
}

func TestTransientStateReplaceKey(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x77, 0x88}, true)
	s.setValue("Contract1", []byte{0x01}, []byte{0x99, 0xaa, 0xbb}, true)

	v, found := s.getValue("Contract1", []byte{0x01})
	require.True(t, found, "key should be found")
	require.Equal(t, []byte{0x99, 0xaa, 0xbb}, v, "last write should win")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x99, 0xaa, 0xbb}},
	})
}

func TestTransientStateOnlyDirtyKeysAreReported(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x22, 0x33}, true)
	s.setValue("Contract1", []byte{0x02}, []byte{0x33, 0x44}, false)
	s.setValue("Contract1", []byte{0x03}, []byte{0x44, 0x55}, false)
	s.setValue("Contract1", []byte{0x03}, []byte{0x55, 0x66}, true)
	s.setValue("Contract2", []byte{0x01}, []byte{0x66, 0x77}, true)

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x22, 0x33}},
		{[]byte{0x03}, []byte{0x55, 0x66}},
	})
	requireDirtyPairs(t, s, "Contract2", []keyValuePair{
		{[]byte{0x01}, []byte{0x66, 0x77}},
	})
}

func TestTransientStateToChainState(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x22}, true)
	s.setValue("Contract1", []byte{0x02}, []byte{0x33}, false)
	s.setValue("Contract2", []byte{0x01}, []byte{0x44}, true)

	diff := s.toChainState()
	require.Equal(t, 2, diff.NumberOfRecords())
	require.Equal(t, []byte{0x22}, diff["Contract1"][string([]byte{0x01})])
	require.Equal(t, []byte{0x44}, diff["Contract2"][string([]byte{0x01})])
	require.NotContains(t, diff["Contract1"], string([]byte{0x02}))
}
