// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

type Transaction struct {
	VirtualChainId  uint32     `json:"virtualChainId"`
	Timestamp       uint64     `json:"timestamp"`
	SignerPublicKey string     `json:"signerPublicKey"`
	ContractName    string     `json:"contractName"`
	MethodName      string     `json:"methodName"`
	Arguments       []Argument `json:"arguments"`
}

type SendTransactionRequest struct {
	Transaction Transaction `json:"transaction"`
	Signature   string      `json:"signature"`
}

type RunQueryRequest struct {
	VirtualChainId  uint32     `json:"virtualChainId"`
	SignerPublicKey string     `json:"signerPublicKey,omitempty"`
	ContractName    string     `json:"contractName"`
	MethodName      string     `json:"methodName"`
	Arguments       []Argument `json:"arguments"`
}

type GetTransactionStatusRequest struct {
	VirtualChainId uint32 `json:"virtualChainId"`
	TxHash         string `json:"txHash"`
}

// answers both send-transaction and get-transaction-status
type TransactionResponse struct {
	RequestStatus     string     `json:"requestStatus"`
	TransactionStatus string     `json:"transactionStatus"`
	TxHash            string     `json:"txHash,omitempty"`
	ExecutionResult   string     `json:"executionResult,omitempty"`
	OutputArguments   []Argument `json:"outputArguments"`
	BlockHeight       uint64     `json:"blockHeight"`
	BlockTimestamp    uint64     `json:"blockTimestamp"`
	ErrorDetails      string     `json:"errorDetails,omitempty"`
}

type QueryResponse struct {
	RequestStatus   string     `json:"requestStatus"`
	ExecutionResult string     `json:"executionResult"`
	OutputArguments []Argument `json:"outputArguments"`
	BlockHeight     uint64     `json:"blockHeight"`
	BlockTimestamp  uint64     `json:"blockTimestamp"`
	ErrorDetails    string     `json:"errorDetails,omitempty"`
}

func NewSendTransactionRequest(signedTransaction *transaction.SignedTransaction) (*SendTransactionRequest, error) {
	tx := signedTransaction.Transaction
	args, err := ArgumentsToJson(tx.InputArgumentArray)
	if err != nil {
		return nil, err
	}
	return &SendTransactionRequest{
		Transaction: Transaction{
			VirtualChainId:  uint32(tx.VirtualChainId),
			Timestamp:       uint64(tx.Timestamp),
			SignerPublicKey: EncodeHex(tx.SignerPublicKey),
			ContractName:    string(tx.ContractName),
			MethodName:      string(tx.MethodName),
			Arguments:       args,
		},
		Signature: EncodeHex(signedTransaction.Signature),
	}, nil
}

func (r *SendTransactionRequest) SignedTransaction() (*transaction.SignedTransaction, error) {
	publicKey, err := DecodeHex(r.Transaction.SignerPublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signer public key")
	}
	sig, err := DecodeHex(r.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature")
	}
	args, err := ArgumentsFromJson(r.Transaction.Arguments)
	if err != nil {
		return nil, err
	}
	return &transaction.SignedTransaction{
		Transaction: &transaction.Transaction{
			VirtualChainId:     primitives.VirtualChainId(r.Transaction.VirtualChainId),
			Timestamp:          primitives.TimestampNano(r.Transaction.Timestamp),
			SignerPublicKey:    publicKey,
			ContractName:       primitives.ContractName(r.Transaction.ContractName),
			MethodName:         primitives.MethodName(r.Transaction.MethodName),
			InputArgumentArray: args,
		},
		Signature: sig,
	}, nil
}

func NewRunQueryRequest(query *transaction.Query) (*RunQueryRequest, error) {
	args, err := ArgumentsToJson(query.InputArgumentArray)
	if err != nil {
		return nil, err
	}
	req := &RunQueryRequest{
		VirtualChainId: uint32(query.VirtualChainId),
		ContractName:   string(query.ContractName),
		MethodName:     string(query.MethodName),
		Arguments:      args,
	}
	if len(query.SignerPublicKey) > 0 {
		req.SignerPublicKey = EncodeHex(query.SignerPublicKey)
	}
	return req, nil
}

func (r *RunQueryRequest) Query() (*transaction.Query, error) {
	var publicKey []byte
	if r.SignerPublicKey != "" {
		var err error
		if publicKey, err = DecodeHex(r.SignerPublicKey); err != nil {
			return nil, errors.Wrap(err, "invalid signer public key")
		}
	}
	args, err := ArgumentsFromJson(r.Arguments)
	if err != nil {
		return nil, err
	}
	return &transaction.Query{
		VirtualChainId:     primitives.VirtualChainId(r.VirtualChainId),
		SignerPublicKey:    publicKey,
		ContractName:       primitives.ContractName(r.ContractName),
		MethodName:         primitives.MethodName(r.MethodName),
		InputArgumentArray: args,
	}, nil
}

func (r *GetTransactionStatusRequest) Hash() (primitives.Sha256, error) {
	txHash, err := DecodeHex(r.TxHash)
	if err != nil {
		return nil, errors.Wrap(err, "invalid transaction hash")
	}
	return txHash, nil
}

func NewTransactionResponse(requestStatus protocol.RequestStatus, transactionStatus protocol.TransactionStatus, receipt *transaction.Receipt, blockHeight primitives.BlockHeight, blockTimestamp primitives.TimestampNano) (*TransactionResponse, error) {
	res := &TransactionResponse{
		RequestStatus:     requestStatus.String(),
		TransactionStatus: transactionStatus.String(),
		OutputArguments:   []Argument{},
		BlockHeight:       uint64(blockHeight),
		BlockTimestamp:    uint64(blockTimestamp),
	}
	if receipt != nil {
		args, err := ArgumentsToJson(receipt.OutputArgumentArray)
		if err != nil {
			return nil, err
		}
		res.TxHash = EncodeHex(receipt.TxHash)
		res.ExecutionResult = receipt.ExecutionResult.String()
		res.OutputArguments = args
	}
	return res, nil
}

func NewQueryResponse(requestStatus protocol.RequestStatus, result *transaction.QueryResult, blockHeight primitives.BlockHeight, blockTimestamp primitives.TimestampNano) (*QueryResponse, error) {
	res := &QueryResponse{
		RequestStatus:   requestStatus.String(),
		OutputArguments: []Argument{},
		BlockHeight:     uint64(blockHeight),
		BlockTimestamp:  uint64(blockTimestamp),
	}
	if result != nil {
		args, err := ArgumentsToJson(result.OutputArgumentArray)
		if err != nil {
			return nil, err
		}
		res.ExecutionResult = result.ExecutionResult.String()
		res.OutputArguments = args
	}
	return res, nil
}

type StatusResponse struct {
	Uptime         int64  `json:"uptime"`
	VirtualChainId uint32 `json:"virtualChainId"`
	BlockHeight    int64  `json:"blockHeight"`
	StateAdapter   string `json:"stateAdapter"`
	Version        struct {
		Semantic string `json:"semantic"`
		Commit   string `json:"commit"`
	} `json:"version"`
}
