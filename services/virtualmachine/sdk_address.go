// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"bytes"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

var EmptySignerAddress = primitives.ClientAddress(make([]byte, 20))

func (s *service) handleSdkAddressCall(executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "getSignerAddress":
		value, err := s.handleSdkAddressGetSignerAddress(executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			// value
			Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
			BytesValue: value,
		}).Build()}, nil

	case "requireAuth":
		err := s.handleSdkAddressRequireAuth(executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{}, nil

	default:
		return nil, errors.Errorf("unknown SDK address call method: %s", methodName)
	}
}

// outputArg0: value ([]byte)
func (s *service) handleSdkAddressGetSignerAddress(executionContext *executionContext, args []*protocol.Argument) ([]byte, error) {
	if len(args) != 0 {
		return nil, errors.Errorf("invalid SDK address getSignerAddress args: %v", args)
	}

	if len(executionContext.signerAddress) == 0 {
		return EmptySignerAddress, nil
	}
	return executionContext.signerAddress, nil
}

// inputArg0: address ([]byte)
func (s *service) handleSdkAddressRequireAuth(executionContext *executionContext, args []*protocol.Argument) error {
	if len(args) != 1 || !args[0].IsTypeBytesValue() {
		return errors.Errorf("invalid SDK address requireAuth args: %v", args)
	}

	if !s.config.VirtualMachineRequireSignerAuth() {
		return nil
	}

	if len(executionContext.signerAddress) == 0 {
		return errors.New("call is not signed and signer authorization is required")
	}
	if !bytes.Equal(executionContext.signerAddress, args[0].BytesValue()) {
		return errors.Errorf("signer %x is not authorized to act for address %x", []byte(executionContext.signerAddress), args[0].BytesValue())
	}
	return nil
}
