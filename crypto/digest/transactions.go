// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package digest

import (
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// every variable length field is prefixed by its length so field boundaries cannot be shifted
func CalcTxHash(tx *transaction.Transaction) primitives.Sha256 {
	header := make([]byte, 4+8)
	membuffers.WriteUint32(header, uint32(tx.VirtualChainId))
	membuffers.WriteUint64(header[4:], uint64(tx.Timestamp))

	var rawArgs []byte
	if tx.InputArgumentArray != nil {
		rawArgs = tx.InputArgumentArray.Raw()
	}

	return CalcSha256(
		header,
		withLength(tx.SignerPublicKey),
		withLength([]byte(tx.ContractName)),
		withLength([]byte(tx.MethodName)),
		withLength(rawArgs),
	)
}

func withLength(field []byte) []byte {
	res := make([]byte, 4+len(field))
	membuffers.WriteUint32(res, uint32(len(field)))
	copy(res[4:], field)
	return res
}
