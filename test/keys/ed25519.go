// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package keys

import (
	"crypto/sha256"
	"fmt"
	"github.com/orbs-network/address-value-store/crypto/keys"
)

// same index, same key pair, on every run
func Ed25519KeyPairForTests(setIndex int) *keys.Ed25519KeyPair {
	seed := sha256.Sum256([]byte(fmt.Sprintf("address-value-store test key %d", setIndex)))
	kp, err := keys.Ed25519KeyPairFromSeed(seed[:])
	if err != nil {
		panic(err.Error())
	}
	return kp
}
