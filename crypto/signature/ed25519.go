// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package signature

import (
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/crypto/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

func SignEd25519(privateKey primitives.Ed25519PrivateKey, data []byte) (primitives.Ed25519Sig, error) {
	if len(privateKey) != keys.ED25519_PRIVATE_KEY_SIZE_BYTES {
		return nil, errors.New("cannot sign with edd25519, private key invalid")
	}
	return ed25519.Sign(ed25519.PrivateKey(privateKey), data), nil
}

func VerifyEd25519(publicKey primitives.Ed25519PublicKey, data []byte, sig primitives.Ed25519Sig) bool {
	if len(publicKey) != keys.ED25519_PUBLIC_KEY_SIZE_BYTES {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), data, sig)
}

func SignTransaction(tx *transaction.Transaction, privateKey primitives.Ed25519PrivateKey) (*transaction.SignedTransaction, error) {
	sig, err := SignEd25519(privateKey, digest.CalcTxHash(tx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}
	return &transaction.SignedTransaction{Transaction: tx, Signature: sig}, nil
}

func VerifyTransaction(signedTx *transaction.SignedTransaction) bool {
	if signedTx == nil || signedTx.Transaction == nil {
		return false
	}
	return VerifyEd25519(signedTx.Transaction.SignerPublicKey, digest.CalcTxHash(signedTx.Transaction), signedTx.Signature)
}
