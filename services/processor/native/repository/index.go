// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/orbs-network/address-value-store/services/processor/native/repository/AddressValueStore"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

var Contracts = map[primitives.ContractName]types.ContractInfo{
	addressvaluestore.CONTRACT.Name: addressvaluestore.CONTRACT,
	// add new native contracts here
}
