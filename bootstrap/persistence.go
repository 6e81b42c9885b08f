// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/leveldb"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/memory"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/serializer"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/sqlite"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// the closer releases the underlying storage; for the memory adapter with a snapshot path it writes the snapshot
type closeFunc func() error

func noopClose() error {
	return nil
}

func NewStatePersistence(cfg config.StateStorageConfig, logger log.Logger, metricFactory metric.Factory) (adapter.StatePersistence, closeFunc, error) {
	switch cfg.StateStorageAdapter() {
	case config.STATE_STORAGE_ADAPTER_LEVELDB:
		persistence, err := leveldb.NewStatePersistence(cfg.StateStorageDataDir(), metricFactory)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using leveldb state persistence", log.String("data-dir", cfg.StateStorageDataDir()))
		return persistence, persistence.Close, nil

	case config.STATE_STORAGE_ADAPTER_SQLITE:
		persistence, err := sqlite.NewStatePersistence(cfg.StateStorageDataDir(), metricFactory)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite state persistence", log.String("data-dir", cfg.StateStorageDataDir()))
		return persistence, persistence.Close, nil

	case config.STATE_STORAGE_ADAPTER_MEMORY:
		snapshotPath := cfg.StateStorageSnapshotPath()
		if snapshotPath == "" {
			logger.Info("using in-memory state persistence, state will not survive a restart")
			return memory.NewStatePersistence(metricFactory), noopClose, nil
		}

		persistence, err := serializer.ReadSnapshotFile(snapshotPath, metricFactory)
		if err != nil {
			return nil, nil, err
		}
		height, _, _ := persistence.ReadMetadata()
		logger.Info("using in-memory state persistence with snapshot", log.String("snapshot", snapshotPath), log.Uint64("block-height", uint64(height)))
		return persistence, func() error {
			return serializer.WriteSnapshotFile(snapshotPath, persistence)
		}, nil
	}

	return nil, nil, errors.Errorf("unknown state storage adapter '%s'", cfg.StateStorageAdapter())
}
