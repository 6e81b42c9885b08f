// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package serializer

import (
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"sort"
)

func Dump(persistence *memory.InMemoryStatePersistence) ([]byte, error) {
	height, ts, state := persistence.FullState()

	snapshot := &StateSnapshotBuilder{
		BlockHeight: height,
		Timestamp:   ts,
	}

	contracts := make([]string, 0, len(state))
	for contract := range state {
		contracts = append(contracts, string(contract))
	}
	sort.Strings(contracts)

	for _, contract := range contracts {
		records := state[primitives.ContractName(contract)]
		keys := make([]string, 0, len(records))
		for key := range records {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			snapshot.Entries = append(snapshot.Entries, &SnapshotEntryBuilder{
				ContractName: primitives.ContractName(contract),
				Key:          []byte(key),
				Value:        records[key],
			})
		}
	}

	built := snapshot.Build()
	if built == nil {
		return nil, errors.New("failed to build state snapshot")
	}
	return built.Raw(), nil
}

func Deserialize(raw []byte, metricFactory metric.Factory) (*memory.InMemoryStatePersistence, error) {
	reader := StateSnapshotReader(raw)
	if !reader.IsValid() {
		return nil, errors.New("impossible to deserialize state: invalid input")
	}

	state := adapter.ChainState{}
	for i := reader.EntriesIterator(); i.HasNext(); {
		entry := i.NextEntries()
		if !entry.IsValid() {
			return nil, errors.New("impossible to deserialize state: invalid entry")
		}
		state.Set(entry.ContractName(), entry.Key(), entry.Value())
	}

	persistence := memory.NewStatePersistence(metricFactory)
	if err := persistence.Write(reader.BlockHeight(), reader.Timestamp(), state); err != nil {
		return nil, err
	}
	return persistence, nil
}

// a missing file is an empty state at height 0
func ReadSnapshotFile(path string, metricFactory metric.Factory) (*memory.InMemoryStatePersistence, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return memory.NewStatePersistence(metricFactory), nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read state snapshot %s", path)
	}

	persistence, err := Deserialize(raw, metricFactory)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load state snapshot %s", path)
	}
	return persistence, nil
}

// the snapshot is written to a temporary file in the same directory and renamed over the target
func WriteSnapshotFile(path string, persistence *memory.InMemoryStatePersistence) error {
	raw, err := Dump(persistence)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create snapshot directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary snapshot file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write state snapshot")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync state snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close state snapshot")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "failed to replace state snapshot")
}
