// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("state-storage")

type StateStorage interface {
	ReadKey(ctx context.Context, contract primitives.ContractName, key []byte) ([]byte, bool, error)
	CommitStateDiff(ctx context.Context, input *CommitStateDiffInput) (*CommitStateDiffOutput, error)
	GetBlockHeight(ctx context.Context) (primitives.BlockHeight, primitives.TimestampNano, error)
	ScanContract(ctx context.Context, contract primitives.ContractName, f func(key []byte, value []byte)) error
}

type CommitStateDiffInput struct {
	BlockHeight        primitives.BlockHeight
	BlockTimestamp     primitives.TimestampNano
	ContractStateDiffs adapter.ChainState
}

type CommitStateDiffOutput struct {
	NextDesiredBlockHeight primitives.BlockHeight
}

type metrics struct {
	blockHeight *metric.Gauge
	commitTime  *metric.Histogram
	readKeyTime *metric.Histogram
	writtenKeys *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		blockHeight: m.NewGauge("StateStorage.BlockHeight"),
		commitTime:  m.NewLatency("StateStorage.CommitStateDiff.Millis", 10*time.Second),
		readKeyTime: m.NewLatency("StateStorage.ReadKey.Millis", 10*time.Second),
		writtenKeys: m.NewRate("StateStorage.WrittenKeys.PerSecond"),
	}
}

type service struct {
	logger      log.Logger
	metrics     *metrics
	persistence adapter.StatePersistence

	mutex           sync.RWMutex
	lastCommitted   primitives.BlockHeight
	lastCommittedTs primitives.TimestampNano
}

func NewStateStorage(persistence adapter.StatePersistence, parentLogger log.Logger, metricFactory metric.Factory) (StateStorage, error) {
	s := &service{
		logger:      parentLogger.WithTags(LogTag),
		metrics:     newMetrics(metricFactory),
		persistence: persistence,
	}

	height, ts, err := persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	s.lastCommitted = height
	s.lastCommittedTs = ts
	s.metrics.blockHeight.Update(int64(height))

	s.logger.Info("state storage started", logfields.BlockHeight(height))
	return s, nil
}

func (s *service) CommitStateDiff(ctx context.Context, input *CommitStateDiffInput) (*CommitStateDiffOutput, error) {
	defer s.metrics.commitTime.RecordSince(time.Now())
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if expected := s.lastCommitted + 1; input.BlockHeight != expected {
		return &CommitStateDiffOutput{NextDesiredBlockHeight: expected}, errors.Errorf("expected block height %d, got %d", expected, input.BlockHeight)
	}

	if err := s.persistence.Write(input.BlockHeight, input.BlockTimestamp, input.ContractStateDiffs); err != nil {
		logger.Error("failed to write state diff", log.Error(err), logfields.BlockHeight(input.BlockHeight))
		return &CommitStateDiffOutput{NextDesiredBlockHeight: input.BlockHeight}, errors.Wrapf(err, "failed to commit block %d", input.BlockHeight)
	}

	s.lastCommitted = input.BlockHeight
	s.lastCommittedTs = input.BlockTimestamp
	s.metrics.blockHeight.Update(int64(input.BlockHeight))
	s.metrics.writtenKeys.Measure(int64(input.ContractStateDiffs.NumberOfRecords()))

	logger.Info("committed state diff", logfields.BlockHeight(input.BlockHeight), log.Int("records", input.ContractStateDiffs.NumberOfRecords()))
	return &CommitStateDiffOutput{NextDesiredBlockHeight: input.BlockHeight + 1}, nil
}

func (s *service) ReadKey(ctx context.Context, contract primitives.ContractName, key []byte) ([]byte, bool, error) {
	defer s.metrics.readKeyTime.RecordSince(time.Now())

	if contract == "" {
		return nil, false, errors.New("missing contract name")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok, err := s.persistence.Read(contract, string(key))
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key of contract %s", contract)
	}
	return value, ok, nil
}

func (s *service) GetBlockHeight(ctx context.Context) (primitives.BlockHeight, primitives.TimestampNano, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.lastCommitted, s.lastCommittedTs, nil
}

// f runs while commits are blocked
func (s *service) ScanContract(ctx context.Context, contract primitives.ContractName, f func(key []byte, value []byte)) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	err := s.persistence.Each(contract, func(key string, value []byte) {
		f([]byte(key), value)
	})
	return errors.Wrapf(err, "failed to scan records of contract %s", contract)
}
