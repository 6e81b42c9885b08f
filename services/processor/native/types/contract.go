// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"context"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// Contract receiver for repository contracts (instantiated once when the repository is loaded)
type Contract interface {
	// _init(ctx Context) error
}

// Context is handed to every contract method as its first argument
type Context interface {
	context.Context
	ExecutionContextId() primitives.ExecutionContextId
	PermissionScope() protocol.ExecutionPermissionScope
}

type BaseContract struct {
	State   StateSdk
	Address AddressSdk
}

func NewBaseContract(
	state StateSdk,
	address AddressSdk,
) *BaseContract {

	return &BaseContract{
		State:   state,
		Address: address,
	}
}
