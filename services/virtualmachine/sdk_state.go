// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkStateCall(ctx context.Context, executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "read":
		value, err := s.handleSdkStateRead(ctx, executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			// value
			Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
			BytesValue: value,
		}).Build()}, nil

	case "write":
		err := s.handleSdkStateWrite(executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{}, nil

	default:
		return nil, errors.Errorf("unknown SDK state call method: %s", methodName)
	}
}

// inputArg0: key ([]byte)
// outputArg0: value ([]byte), empty when the key has no record
func (s *service) handleSdkStateRead(ctx context.Context, executionContext *executionContext, args []*protocol.Argument) ([]byte, error) {
	if len(args) != 1 || !args[0].IsTypeBytesValue() {
		return nil, errors.Errorf("invalid SDK state read args: %v", args)
	}
	key := args[0].BytesValue()

	// writes of the running transaction shadow committed state
	if executionContext.transientState != nil {
		if value, found := executionContext.transientState.getValue(executionContext.contractName, key); found {
			return value, nil
		}
	}

	value, _, err := s.stateStorage.ReadKey(ctx, executionContext.contractName, key)
	if err != nil {
		return nil, errors.Wrap(err, "state storage read failed")
	}
	return value, nil
}

// inputArg0: key ([]byte)
// inputArg1: value ([]byte)
func (s *service) handleSdkStateWrite(executionContext *executionContext, args []*protocol.Argument) error {
	if len(args) != 2 || !args[0].IsTypeBytesValue() || !args[1].IsTypeBytesValue() {
		return errors.Errorf("invalid SDK state write args: %v", args)
	}
	if executionContext.accessScope != protocol.ACCESS_SCOPE_READ_WRITE || executionContext.transientState == nil {
		return errors.Errorf("write attempted in a %s context", executionContext.accessScope)
	}

	// copy, the argument buffers belong to the caller
	key := append([]byte{}, args[0].BytesValue()...)
	value := append([]byte{}, args[1].BytesValue()...)
	executionContext.transientState.setValue(executionContext.contractName, key, value, true)
	return nil
}
