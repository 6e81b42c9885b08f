// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

// Package testkit runs native contracts against in-memory sdks, without a virtual machine.
package testkit

import (
	"context"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"sync"
)

type executionContext struct {
	context.Context
	id primitives.ExecutionContextId
}

func (c *executionContext) ExecutionContextId() primitives.ExecutionContextId {
	return c.id
}

func (c *executionContext) PermissionScope() protocol.ExecutionPermissionScope {
	return protocol.PERMISSION_SCOPE_SERVICE
}

func NewContext(ctx context.Context) types.Context {
	return &executionContext{Context: ctx, id: primitives.ExecutionContextId{0x01}}
}

type ManualState struct {
	sync.Mutex
	records map[string][]byte
}

func NewState() *ManualState {
	return &ManualState{records: make(map[string][]byte)}
}

func (s *ManualState) ReadBytes(ctx types.Context, key []byte) ([]byte, bool, error) {
	s.Lock()
	defer s.Unlock()
	value, found := s.records[string(key)]
	return value, found, nil
}

func (s *ManualState) ReadUint32(ctx types.Context, key []byte) (types.OptionalUint32, error) {
	value, found, err := s.ReadBytes(ctx, key)
	if err != nil || !found {
		return types.NoneUint32(), err
	}
	if len(value) != 4 {
		return types.NoneUint32(), errors.Errorf("record is %d bytes and cannot hold a uint32", len(value))
	}
	return types.SomeUint32(membuffers.GetUint32(value)), nil
}

func (s *ManualState) WriteBytes(ctx types.Context, key []byte, value []byte) error {
	s.Lock()
	defer s.Unlock()
	s.records[string(key)] = value
	return nil
}

func (s *ManualState) WriteUint32(ctx types.Context, key []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return s.WriteBytes(ctx, key, bytes)
}

func (s *ManualState) Size() int {
	s.Lock()
	defer s.Unlock()
	return len(s.records)
}

type ManualAddress struct {
	Signer      types.Address
	EnforceAuth bool
}

func (a *ManualAddress) GetSignerAddress(ctx types.Context) (types.Address, error) {
	return a.Signer, nil
}

func (a *ManualAddress) RequireAuth(ctx types.Context, address types.Address) error {
	if a.EnforceAuth && !a.Signer.Equal(address) {
		return errors.Errorf("signer %s is not authorized for %s", a.Signer, address)
	}
	return nil
}

func NewBaseContract() (*types.BaseContract, *ManualState, *ManualAddress) {
	state := NewState()
	address := &ManualAddress{}
	return types.NewBaseContract(state, address), state, address
}
