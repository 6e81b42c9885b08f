// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter/memory"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/address-value-store/test/with"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"testing"
)

type StatePersistenceMock struct {
	mock.Mock
}

func (spm *StatePersistenceMock) Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error {
	return spm.Mock.Called(height, ts, diff).Error(0)
}

func (spm *StatePersistenceMock) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	ret := spm.Mock.Called(contract, key)
	return ret.Get(0).([]byte), ret.Bool(1), ret.Error(2)
}

func (spm *StatePersistenceMock) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	ret := spm.Mock.Called()
	return ret.Get(0).(primitives.BlockHeight), ret.Get(1).(primitives.TimestampNano), ret.Error(2)
}

func (spm *StatePersistenceMock) Each(contract primitives.ContractName, f func(key string, value []byte)) error {
	return spm.Mock.Called(contract, f).Error(0)
}

func newPersistenceMockAtHeight(height primitives.BlockHeight) *StatePersistenceMock {
	persistenceMock := &StatePersistenceMock{}
	persistenceMock.When("ReadMetadata").Return(height, primitives.TimestampNano(0), nil).Times(1)
	return persistenceMock
}

func newServiceWithMemoryPersistence(t *testing.T) StateStorage {
	s, err := NewStateStorage(memory.NewStatePersistence(metric.NewRegistry()), log.DefaultTestingLogger(t), metric.NewRegistry())
	require.NoError(t, err)
	return s
}

func commit(ctx context.Context, s StateStorage, height primitives.BlockHeight, contract primitives.ContractName, key string, value []byte) error {
	_, err := s.CommitStateDiff(ctx, &CommitStateDiffInput{
		BlockHeight:        height,
		BlockTimestamp:     primitives.TimestampNano(height * 1000),
		ContractStateDiffs: adapter.ChainState{contract: {key: value}},
	})
	return err
}

func TestCommitStateDiff_ThenReadKey(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		s := newServiceWithMemoryPersistence(t)

		require.NoError(t, commit(ctx, s, 1, "AddressValueStore", "addr", []byte{42, 0, 0, 0}))

		value, ok, err := s.ReadKey(ctx, "AddressValueStore", []byte("addr"))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{42, 0, 0, 0}, value)

		height, ts, err := s.GetBlockHeight(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, height)
		require.EqualValues(t, 1000, ts)
	})
}

func TestCommitStateDiff_RejectsOutOfOrderHeight(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		s := newServiceWithMemoryPersistence(t)

		out, err := s.CommitStateDiff(ctx, &CommitStateDiffInput{BlockHeight: 2, ContractStateDiffs: adapter.ChainState{}})
		require.Error(t, err)
		require.EqualValues(t, 1, out.NextDesiredBlockHeight)

		require.NoError(t, commit(ctx, s, 1, "c", "k", []byte{1}))
		require.Error(t, commit(ctx, s, 1, "c", "k", []byte{2}), "the same height cannot be committed twice")

		value, _, err := s.ReadKey(ctx, "c", []byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte{1}, value)
	})
}

func TestReadKey_MissingContractName(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		s := newServiceWithMemoryPersistence(t)

		_, _, err := s.ReadKey(ctx, "", []byte("k"))
		require.Error(t, err)
	})
}

func TestNewStateStorage_ResumesFromPersistedHeight(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		persistenceMock := newPersistenceMockAtHeight(7)
		persistenceMock.When("Write", primitives.BlockHeight(8), mock.Any, mock.Any).Return(nil).Times(1)

		s, err := NewStateStorage(persistenceMock, log.DefaultTestingLogger(t), metric.NewRegistry())
		require.NoError(t, err)

		height, _, err := s.GetBlockHeight(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 7, height)

		require.NoError(t, commit(ctx, s, 8, "c", "k", []byte{1}))

		ok, errCalled := persistenceMock.Verify()
		require.True(t, ok, "persistence mock called incorrectly")
		require.NoError(t, errCalled)
	})
}

func TestCommitStateDiff_PersistenceFailureKeepsHeight(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			harness.AllowErrorsMatching("failed to write state diff")
			persistenceMock := newPersistenceMockAtHeight(0)
			persistenceMock.When("Write", mock.Any, mock.Any, mock.Any).Return(errors.New("disk full")).Times(1)

			s, err := NewStateStorage(persistenceMock, harness.Logger, metric.NewRegistry())
			require.NoError(t, err)

			require.Error(t, commit(ctx, s, 1, "c", "k", []byte{1}))

			height, _, err := s.GetBlockHeight(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 0, height, "a failed write must not advance the height")
		})
	})
}

func TestReadKey_PassesRawKeyToPersistence(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		persistenceMock := newPersistenceMockAtHeight(0)
		persistenceMock.When("Read", primitives.ContractName("c"), string([]byte{0x00, 0x01})).Return([]byte{5}, true, nil).Times(1)

		s, err := NewStateStorage(persistenceMock, log.DefaultTestingLogger(t), metric.NewRegistry())
		require.NoError(t, err)

		value, ok, err := s.ReadKey(ctx, "c", []byte{0x00, 0x01})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{5}, value)

		ok, errCalled := persistenceMock.Verify()
		require.True(t, ok)
		require.NoError(t, errCalled)
	})
}

func TestScanContract_VisitsCommittedRecordsOfOneContract(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		s := newServiceWithMemoryPersistence(t)

		require.NoError(t, commit(ctx, s, 1, "c", "k1", []byte{1}))
		require.NoError(t, commit(ctx, s, 2, "c", "k2", []byte{2}))
		require.NoError(t, commit(ctx, s, 3, "other", "k3", []byte{3}))

		seen := map[string][]byte{}
		err := s.ScanContract(ctx, "c", func(key []byte, value []byte) {
			seen[string(key)] = value
		})
		require.NoError(t, err)
		require.Equal(t, map[string][]byte{"k1": {1}, "k2": {2}}, seen)
	})
}

func TestScanContract_PersistenceFailure(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		persistenceMock := newPersistenceMockAtHeight(0)
		persistenceMock.When("Each", primitives.ContractName("c"), mock.Any).Return(errors.New("io error")).Times(1)

		s, err := NewStateStorage(persistenceMock, log.DefaultTestingLogger(t), metric.NewRegistry())
		require.NoError(t, err)

		err = s.ScanContract(ctx, "c", func(key []byte, value []byte) {})
		require.Error(t, err)
	})
}
