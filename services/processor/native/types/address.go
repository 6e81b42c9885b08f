// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"bytes"
	"encoding/hex"
	"github.com/pkg/errors"
)

const ADDRESS_SIZE_BYTES = 20

// Address is an opaque client identity issued by the host, compared by bytes only
type Address []byte

func (a Address) String() string {
	return hex.EncodeToString(a)
}

func (a Address) Equal(other Address) bool {
	return bytes.Equal(a, other)
}

func ValidateAddress(address []byte) error {
	if len(address) != ADDRESS_SIZE_BYTES {
		return errors.Errorf("address must be %d bytes but has %d", ADDRESS_SIZE_BYTES, len(address))
	}
	return nil
}
