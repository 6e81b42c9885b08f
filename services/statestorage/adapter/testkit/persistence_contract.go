// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package testkit

import (
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/stretchr/testify/require"
	"testing"
)

type PersistenceFactory func(t *testing.T) adapter.StatePersistence

// behaviour every StatePersistence implementation must share
func RunStatePersistenceContract(t *testing.T, newPersistence PersistenceFactory) {
	t.Run("EmptyStateHasHeightZero", func(t *testing.T) {
		sp := newPersistence(t)

		height, ts, err := sp.ReadMetadata()
		require.NoError(t, err)
		require.EqualValues(t, 0, height)
		require.EqualValues(t, 0, ts)
	})

	t.Run("ReadMissingKey", func(t *testing.T) {
		sp := newPersistence(t)

		_, ok, err := sp.Read("AddressValueStore", "missing")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("WriteThenRead", func(t *testing.T) {
		sp := newPersistence(t)
		require.NoError(t, sp.Write(1, 100, adapter.ChainState{"AddressValueStore": {"a": []byte{42, 0, 0, 0}}}))

		value, ok, err := sp.Read("AddressValueStore", "a")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{42, 0, 0, 0}, value)

		height, ts, err := sp.ReadMetadata()
		require.NoError(t, err)
		require.EqualValues(t, 1, height)
		require.EqualValues(t, 100, ts)
	})

	t.Run("OverwriteKeepsLastValue", func(t *testing.T) {
		sp := newPersistence(t)
		require.NoError(t, sp.Write(1, 0, adapter.ChainState{"AddressValueStore": {"a": []byte{1, 0, 0, 0}}}))
		require.NoError(t, sp.Write(2, 0, adapter.ChainState{"AddressValueStore": {"a": []byte{2, 0, 0, 0}}}))

		value, ok, err := sp.Read("AddressValueStore", "a")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{2, 0, 0, 0}, value)
	})

	t.Run("ContractsAreIsolated", func(t *testing.T) {
		sp := newPersistence(t)
		require.NoError(t, sp.Write(1, 0, adapter.ChainState{"First": {"a": []byte{1}}}))

		_, ok, err := sp.Read("Second", "a")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("EmptyValueDeletes", func(t *testing.T) {
		sp := newPersistence(t)
		require.NoError(t, sp.Write(1, 0, adapter.ChainState{"AddressValueStore": {"a": []byte{1}}}))
		require.NoError(t, sp.Write(2, 0, adapter.ChainState{"AddressValueStore": {"a": []byte{}}}))

		_, ok, err := sp.Read("AddressValueStore", "a")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("EachVisitsOnlyTheContractRecords", func(t *testing.T) {
		sp := newPersistence(t)
		require.NoError(t, sp.Write(1, 0, adapter.ChainState{
			"First":  {"a": []byte{1}, "b": []byte{2}},
			"Second": {"a": []byte{3}},
			"Firsts": {"c": []byte{4}},
		}))
		require.NoError(t, sp.Write(2, 0, adapter.ChainState{"First": {"b": []byte{}}}))

		visited := map[string][]byte{}
		require.NoError(t, sp.Each("First", func(key string, value []byte) {
			visited[key] = value
		}))
		require.Equal(t, map[string][]byte{"a": {1}}, visited)

		require.NoError(t, sp.Each("Missing", func(key string, value []byte) {
			t.Errorf("unexpected record %x", key)
		}))
	})

	t.Run("BinaryKeys", func(t *testing.T) {
		sp := newPersistence(t)
		key := string([]byte{0x00, 0xff, 0x10, 0x00})
		require.NoError(t, sp.Write(1, 0, adapter.ChainState{"AddressValueStore": {key: []byte{7, 0, 0, 0}}}))

		value, ok, err := sp.Read("AddressValueStore", key)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{7, 0, 0, 0}, value)
	})
}
