// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package signature

import (
	"github.com/orbs-network/address-value-store/test/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/stretchr/testify/require"
	"testing"
)

var someDataToSign = []byte("this is what we want to sign")

func TestSignEd25519(t *testing.T) {
	kp := keys.Ed25519KeyPairForTests(1)

	sig, err := SignEd25519(kp.PrivateKey(), someDataToSign)
	require.NoError(t, err)
	require.True(t, VerifyEd25519(kp.PublicKey(), someDataToSign, sig), "verification failed")
	require.False(t, VerifyEd25519(keys.Ed25519KeyPairForTests(2).PublicKey(), someDataToSign, sig), "verification with another key succeeded")
}

func TestSignEd25519InvalidPrivateKey(t *testing.T) {
	_, err := SignEd25519([]byte{0}, someDataToSign)
	require.Error(t, err, "sign succeeded with invalid pk")
}

func TestVerifyEd25519InvalidPublicKey(t *testing.T) {
	kp := keys.Ed25519KeyPairForTests(1)
	sig, err := SignEd25519(kp.PrivateKey(), someDataToSign)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.False(t, VerifyEd25519([]byte{0}, someDataToSign, sig))
	})
}

func TestSignAndVerifyTransaction(t *testing.T) {
	kp := keys.Ed25519KeyPairForTests(3)
	tx := &transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          1000,
		SignerPublicKey:    kp.PublicKey(),
		ContractName:       "AddressValueStore",
		MethodName:         "store",
		InputArgumentArray: transaction.MustArgumentsFromNatives(make([]byte, 20), uint32(42)),
	}

	signed, err := SignTransaction(tx, kp.PrivateKey())
	require.NoError(t, err)
	require.True(t, VerifyTransaction(signed))

	tampered := *tx
	tampered.InputArgumentArray = transaction.MustArgumentsFromNatives(make([]byte, 20), uint32(43))
	require.False(t, VerifyTransaction(&transaction.SignedTransaction{Transaction: &tampered, Signature: signed.Signature}), "a changed argument must invalidate the signature")
}

func BenchmarkSignAndVerifyEd25519(b *testing.B) {
	kp := keys.Ed25519KeyPairForTests(1)
	for i := 0; i < b.N; i++ {
		if sig, err := SignEd25519(kp.PrivateKey(), someDataToSign); err != nil {
			b.Error(err)
		} else if !VerifyEd25519(kp.PublicKey(), someDataToSign, sig) {
			b.Error("verification failed")
		}
	}
}
