// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package addressvaluestore

import (
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

const CONTRACT_NAME = "AddressValueStore"

const GREETING = "Hello"

var CONTRACT = types.ContractInfo{
	Name:       CONTRACT_NAME,
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_INIT.Name:  METHOD_INIT,
		METHOD_HELLO.Name: METHOD_HELLO,
		METHOD_STORE.Name: METHOD_STORE,
		METHOD_GET.Name:   METHOD_GET,
	},
	InitSingleton: newContract,
}

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT = types.MethodInfo{
	Name:           "_init",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract)._init,
}

func (c *contract) _init(ctx types.Context) error {
	return nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_HELLO = types.MethodInfo{
	Name:           "hello",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).hello,
}

func (c *contract) hello(ctx types.Context, to string) ([]string, error) {
	return []string{GREETING, to}, nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_STORE = types.MethodInfo{
	Name:           "store",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).store,
}

func (c *contract) store(ctx types.Context, user types.Address, value uint32) error {
	if err := c.Address.RequireAuth(ctx, user); err != nil {
		return err
	}
	return c.State.WriteUint32(ctx, user, value)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET = types.MethodInfo{
	Name:           "get",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).get,
}

func (c *contract) get(ctx types.Context, user types.Address) (types.OptionalUint32, error) {
	return c.State.ReadUint32(ctx, user)
}
