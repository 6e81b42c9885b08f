// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/testkit"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLevelDbPersistenceContract(t *testing.T) {
	testkit.RunStatePersistenceContract(t, func(t *testing.T) adapter.StatePersistence {
		sp, err := NewStatePersistence(t.TempDir(), metric.NewRegistry())
		require.NoError(t, err)
		t.Cleanup(func() { sp.Close() })
		return sp
	})
}

func TestLevelDbPersistenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	sp, err := NewStatePersistence(dir, metric.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, sp.Write(1, 10, adapter.ChainState{"AddressValueStore": {"addr": []byte{42, 0, 0, 0}}}))
	require.NoError(t, sp.Close())

	registry := metric.NewRegistry()
	reopened, err := NewStatePersistence(dir, registry)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Read("AddressValueStore", "addr")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{42, 0, 0, 0}, value)

	height, ts, err := reopened.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 1, height)
	require.EqualValues(t, 10, ts)
	require.EqualValues(t, 1, reopened.metrics.numberOfKeys.Value(), "key count should be restored on open")
}

func TestLevelDbRecordKeysDoNotCollideAcrossContracts(t *testing.T) {
	require.NotEqual(t, recordKey("ab", "c"), recordKey("a", "bc"))
}
