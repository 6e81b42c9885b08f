// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"encoding/json"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/address-value-store/test/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

func signedStoreTransaction(t *testing.T) *transaction.SignedTransaction {
	keyPair := keys.Ed25519KeyPairForTests(1)
	signed, err := signature.SignTransaction(&transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          primitives.TimestampNano(1546300800000000000),
		SignerPublicKey:    keyPair.PublicKey(),
		ContractName:       "AddressValueStore",
		MethodName:         "store",
		InputArgumentArray: transaction.MustArgumentsFromNatives(make([]byte, 20), uint32(42)),
	}, keyPair.PrivateKey())
	require.NoError(t, err)
	return signed
}

func TestSendTransactionRequestKeepsSignatureValid(t *testing.T) {
	signed := signedStoreTransaction(t)

	req, err := NewSendTransactionRequest(signed)
	require.NoError(t, err)
	encoded, err := json.Marshal(req)
	require.NoError(t, err)

	decodedReq := &SendTransactionRequest{}
	require.NoError(t, json.Unmarshal(encoded, decodedReq))
	decoded, err := decodedReq.SignedTransaction()
	require.NoError(t, err)

	require.True(t, signature.VerifyTransaction(decoded), "signature should verify after a json round trip")
	require.Equal(t, signed.Transaction.ContractName, decoded.Transaction.ContractName)
	require.Equal(t, signed.Transaction.Timestamp, decoded.Transaction.Timestamp)
}

func TestSendTransactionRequestWithBadSignerKey(t *testing.T) {
	req, err := NewSendTransactionRequest(signedStoreTransaction(t))
	require.NoError(t, err)
	req.Transaction.SignerPublicKey = "0xnothex"

	_, err = req.SignedTransaction()
	require.Error(t, err)
}

func TestRunQueryRequestWithoutSigner(t *testing.T) {
	req := &RunQueryRequest{
		VirtualChainId: 42,
		ContractName:   "AddressValueStore",
		MethodName:     "get",
		Arguments:      []Argument{BytesArgument(make([]byte, 20))},
	}

	query, err := req.Query()
	require.NoError(t, err)
	require.Empty(t, query.SignerPublicKey)
	require.EqualValues(t, 42, query.VirtualChainId)

	natives, err := transaction.ArgumentsToNatives(query.InputArgumentArray)
	require.NoError(t, err)
	require.Equal(t, []interface{}{make([]byte, 20)}, natives)
}

func TestNewTransactionResponseWithReceipt(t *testing.T) {
	receipt := &transaction.Receipt{
		TxHash:              []byte{0x01, 0x02},
		ExecutionResult:     protocol.EXECUTION_RESULT_SUCCESS,
		OutputArgumentArray: transaction.MustArgumentsFromNatives(uint32(42)),
		BlockHeight:         3,
		BlockTimestamp:      99,
	}

	res, err := NewTransactionResponse(protocol.REQUEST_STATUS_COMPLETED, protocol.TRANSACTION_STATUS_COMMITTED, receipt, 3, 99)
	require.NoError(t, err)

	test.RequireCmpEqual(t, &TransactionResponse{
		RequestStatus:     "REQUEST_STATUS_COMPLETED",
		TransactionStatus: "TRANSACTION_STATUS_COMMITTED",
		TxHash:            "0x0102",
		ExecutionResult:   "EXECUTION_RESULT_SUCCESS",
		OutputArguments:   []Argument{Uint32Argument(42)},
		BlockHeight:       3,
		BlockTimestamp:    99,
	}, res)
}

func TestNewTransactionResponseWithoutReceipt(t *testing.T) {
	res, err := NewTransactionResponse(protocol.REQUEST_STATUS_NOT_FOUND, protocol.TRANSACTION_STATUS_NO_RECORD_FOUND, nil, 0, 0)
	require.NoError(t, err)
	require.Empty(t, res.TxHash)
	require.Empty(t, res.ExecutionResult)
	require.NotNil(t, res.OutputArguments)
}
