// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

// Package transaction holds the messages a client exchanges with the node: signed transactions,
// read-only queries and the receipts produced by executing them.
package transaction

import (
	"fmt"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type Transaction struct {
	VirtualChainId     primitives.VirtualChainId
	Timestamp          primitives.TimestampNano
	SignerPublicKey    primitives.Ed25519PublicKey
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
}

func (t *Transaction) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{VirtualChainId:%d,Timestamp:%d,Signer:%s,ContractName:%s,MethodName:%s,InputArgumentArray:%s}",
		t.VirtualChainId, t.Timestamp, t.SignerPublicKey, t.ContractName, t.MethodName, t.InputArgumentArray.String())
}

type SignedTransaction struct {
	Transaction *Transaction
	Signature   primitives.Ed25519Sig
}

type Query struct {
	VirtualChainId     primitives.VirtualChainId
	SignerPublicKey    primitives.Ed25519PublicKey // optional, queries are never authenticated
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
}

func (q *Query) String() string {
	if q == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{VirtualChainId:%d,ContractName:%s,MethodName:%s,InputArgumentArray:%s}",
		q.VirtualChainId, q.ContractName, q.MethodName, q.InputArgumentArray.String())
}

type Receipt struct {
	TxHash              primitives.Sha256
	ExecutionResult     protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	BlockHeight         primitives.BlockHeight
	BlockTimestamp      primitives.TimestampNano
}

type QueryResult struct {
	ExecutionResult     protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	BlockHeight         primitives.BlockHeight
	BlockTimestamp      primitives.TimestampNano
}

func EmptyArguments() *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{}).Build()
}
