// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package digest

import (
	"crypto/sha256"
	"github.com/orbs-network/address-value-store/crypto/keys"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const (
	SHA256_HASH_SIZE_BYTES       = 32
	CLIENT_ADDRESS_SIZE_BYTES    = 20
	CLIENT_ADDRESS_SHA256_OFFSET = SHA256_HASH_SIZE_BYTES - CLIENT_ADDRESS_SIZE_BYTES
)

func CalcSha256(data ...[]byte) primitives.Sha256 {
	s := sha256.New()
	for _, d := range data {
		s.Write(d)
	}
	return s.Sum(nil)
}

func CalcClientAddressOfEd25519PublicKey(publicKey primitives.Ed25519PublicKey) (primitives.ClientAddress, error) {
	if len(publicKey) != keys.ED25519_PUBLIC_KEY_SIZE_BYTES {
		return nil, errors.New("transaction is not signed by a valid Signer")
	}
	res := CalcSha256(publicKey)[CLIENT_ADDRESS_SHA256_OFFSET:]
	return primitives.ClientAddress(res), nil
}
