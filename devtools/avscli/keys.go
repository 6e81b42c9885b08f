// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"encoding/json"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/crypto/keys"
	"github.com/orbs-network/address-value-store/jsonapi"
	orbsClient "github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"os"
)

type KeyFile struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

func NewKeyFile(account *orbsClient.OrbsAccount) *KeyFile {
	return &KeyFile{
		PublicKey:  jsonapi.EncodeHex(account.PublicKey),
		PrivateKey: jsonapi.EncodeHex(account.PrivateKey),
		Address:    jsonapi.EncodeHex(account.AddressAsBytes()),
	}
}

func WriteKeyFile(path string, keyFile *KeyFile) error {
	raw, err := json.MarshalIndent(keyFile, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(err, "could not write key file %s", path)
	}
	return nil
}

// the address is recomputed from the public key, a stale address field in the file is ignored
func ReadKeyFile(path string) (*keys.Ed25519KeyPair, primitives.ClientAddress, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read key file %s", path)
	}

	keyFile := &KeyFile{}
	if err := json.Unmarshal(raw, keyFile); err != nil {
		return nil, nil, errors.Wrapf(err, "key file %s is not valid json", path)
	}

	publicKey, err := jsonapi.DecodeHex(keyFile.PublicKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not decode public key")
	}
	privateKey, err := jsonapi.DecodeHex(keyFile.PrivateKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not decode private key")
	}

	address, err := digest.CalcClientAddressOfEd25519PublicKey(publicKey)
	if err != nil {
		return nil, nil, err
	}

	return keys.NewEd25519KeyPair(publicKey, privateKey), address, nil
}
