// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package acceptance

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func TestStateSurvivesRestart(t *testing.T) {
	for _, adapterName := range []string{config.STATE_STORAGE_ADAPTER_LEVELDB, config.STATE_STORAGE_ADAPTER_SQLITE, config.STATE_STORAGE_ADAPTER_MEMORY} {
		t.Run(adapterName, func(t *testing.T) {
			dataDir := t.TempDir()
			snapshotPath := ""
			if adapterName == config.STATE_STORAGE_ADAPTER_MEMORY {
				snapshotPath = filepath.Join(dataDir, "snapshot.bin")
			}

			newHarness().WithStateAdapter(adapterName, dataDir, snapshotPath).Start(t, func(t testing.TB, ctx context.Context, network *NodeHarness) {
				user1, address1 := User(1)
				_, address2 := User(2)

				network.RequireStore(ctx, user1, address1, 42)
				res := network.RequireStore(ctx, user1, address2, 0)

				network.Restart()

				value, found := network.RequireGet(ctx, address1)
				require.True(t, found, "value should survive a restart")
				require.EqualValues(t, 42, value)

				value, found = network.RequireGet(ctx, address2)
				require.True(t, found, "a stored zero should survive a restart")
				require.EqualValues(t, 0, value)

				status, err := network.Client().Status(ctx)
				require.NoError(t, err)
				require.EqualValues(t, res.BlockHeight, status.BlockHeight, "block height should survive a restart")
				require.Equal(t, adapterName, status.StateAdapter)

				next := network.RequireStore(ctx, user1, address1, 43)
				require.Equal(t, res.BlockHeight+1, next.BlockHeight, "commits continue from the restored height")
			})
		})
	}
}

func TestInMemoryStateWithoutSnapshotIsLostOnRestart(t *testing.T) {
	newHarness().Start(t, func(t testing.TB, ctx context.Context, network *NodeHarness) {
		user, address := User(1)
		network.RequireStore(ctx, user, address, 42)

		network.Restart()

		_, found := network.RequireGet(ctx, address)
		require.False(t, found)
	})
}

func TestCommittedTransactionIsNotReplayedAfterRestart(t *testing.T) {
	for _, adapterName := range []string{config.STATE_STORAGE_ADAPTER_LEVELDB, config.STATE_STORAGE_ADAPTER_SQLITE, config.STATE_STORAGE_ADAPTER_MEMORY} {
		t.Run(adapterName, func(t *testing.T) {
			dataDir := t.TempDir()
			snapshotPath := ""
			if adapterName == config.STATE_STORAGE_ADAPTER_MEMORY {
				snapshotPath = filepath.Join(dataDir, "snapshot.bin")
			}

			newHarness().WithStateAdapter(adapterName, dataDir, snapshotPath).Start(t, func(t testing.TB, ctx context.Context, network *NodeHarness) {
				user, address := User(1)

				first := SignedStore(t, user, address, 1)
				res, err := network.Client().SendTransaction(ctx, first)
				require.NoError(t, err)
				require.Equal(t, "TRANSACTION_STATUS_COMMITTED", res.TransactionStatus)
				network.RequireStore(ctx, user, address, 2)

				network.Restart()

				replay, err := network.Client().SendTransaction(ctx, first)
				require.NoError(t, err)
				require.Equal(t, "TRANSACTION_STATUS_DUPLICATE_TRANSACTION_ALREADY_COMMITTED", replay.TransactionStatus)
				require.Equal(t, res.BlockHeight, replay.BlockHeight, "the replay reports the original block")

				value, found := network.RequireGet(ctx, address)
				require.True(t, found)
				require.EqualValues(t, 2, value, "the replayed store must not overwrite the later one")

				status, err := network.Client().GetTransactionStatus(ctx, network.config.VirtualChainId(), digest.CalcTxHash(first.Transaction))
				require.NoError(t, err)
				require.Equal(t, "TRANSACTION_STATUS_COMMITTED", status.TransactionStatus)
				require.Equal(t, res.BlockHeight, status.BlockHeight)
			})
		})
	}
}
