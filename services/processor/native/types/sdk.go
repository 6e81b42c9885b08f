// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

type StateSdk interface {
	// read, the bool reports whether a record exists
	ReadBytes(ctx Context, key []byte) ([]byte, bool, error)
	ReadUint32(ctx Context, key []byte) (OptionalUint32, error)

	// write
	WriteBytes(ctx Context, key []byte, value []byte) error
	WriteUint32(ctx Context, key []byte, value uint32) error
}

type AddressSdk interface {
	GetSignerAddress(ctx Context) (Address, error)

	// fails when the host enforces signer authorization and the signer is not address
	RequireAuth(ctx Context, address Address) error
}
