// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"sync"
)

var (
	statePrefix       = []byte("s:")
	metadataHeightKey = []byte("m:height")
	metadataTsKey     = []byte("m:ts")
)

type metrics struct {
	numberOfKeys *metric.Gauge
}

type LevelDbStatePersistence struct {
	metrics *metrics
	mutex   sync.Mutex
	db      *leveldb.DB
}

func NewStatePersistence(dataDir string, metricFactory metric.Factory) (*LevelDbStatePersistence, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", dataDir)
	}

	sp := &LevelDbStatePersistence{
		metrics: &metrics{
			numberOfKeys: metricFactory.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count"),
		},
		db: db,
	}

	count, err := sp.countRecords()
	if err != nil {
		db.Close()
		return nil, err
	}
	sp.metrics.numberOfKeys.Update(count)

	return sp, nil
}

// contract names never contain a zero byte so the separator keeps contracts apart
func recordKey(contract primitives.ContractName, key string) []byte {
	res := make([]byte, 0, len(statePrefix)+len(contract)+1+len(key))
	res = append(res, statePrefix...)
	res = append(res, string(contract)...)
	res = append(res, 0)
	return append(res, key...)
}

func (sp *LevelDbStatePersistence) countRecords() (int64, error) {
	iter := sp.db.NewIterator(util.BytesPrefix(statePrefix), nil)
	defer iter.Release()

	var count int64
	for iter.Next() {
		count++
	}
	return count, errors.Wrap(iter.Error(), "failed to count leveldb records")
}

func (sp *LevelDbStatePersistence) Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	batch := new(leveldb.Batch)
	delta := int64(0)
	for contract, records := range diff {
		for key, value := range records {
			k := recordKey(contract, key)
			existed, err := sp.db.Has(k, nil)
			if err != nil {
				return errors.Wrap(err, "failed to read leveldb record")
			}

			if adapter.IsZeroValue(value) {
				if existed {
					batch.Delete(k)
					delta--
				}
				continue
			}

			batch.Put(k, value)
			if !existed {
				delta++
			}
		}
	}

	heightBytes := make([]byte, 8)
	membuffers.WriteUint64(heightBytes, uint64(height))
	batch.Put(metadataHeightKey, heightBytes)

	tsBytes := make([]byte, 8)
	membuffers.WriteUint64(tsBytes, uint64(ts))
	batch.Put(metadataTsKey, tsBytes)

	if err := sp.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(err, "failed to write block %d to leveldb", height)
	}

	sp.metrics.numberOfKeys.Add(delta)
	return nil
}

func (sp *LevelDbStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	value, err := sp.db.Get(recordKey(contract, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, errors.Wrap(err, "failed to read leveldb record")
	}
	return value, true, nil
}

func (sp *LevelDbStatePersistence) Each(contract primitives.ContractName, f func(key string, value []byte)) error {
	prefix := recordKey(contract, "")
	iter := sp.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		f(string(iter.Key()[len(prefix):]), value)
	}
	return errors.Wrapf(iter.Error(), "failed to iterate leveldb records of contract %s", contract)
}

func (sp *LevelDbStatePersistence) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	height, err := sp.readUint64(metadataHeightKey)
	if err != nil {
		return 0, 0, err
	}
	ts, err := sp.readUint64(metadataTsKey)
	if err != nil {
		return 0, 0, err
	}
	return primitives.BlockHeight(height), primitives.TimestampNano(ts), nil
}

func (sp *LevelDbStatePersistence) readUint64(key []byte) (uint64, error) {
	raw, err := sp.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrapf(err, "failed to read leveldb metadata %s", key)
	}
	if len(raw) != 8 {
		return 0, errors.Errorf("corrupt leveldb metadata %s: %d bytes", key, len(raw))
	}
	return membuffers.GetUint64(raw), nil
}

func (sp *LevelDbStatePersistence) Close() error {
	return sp.db.Close()
}
