// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package transaction

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func EncodeRecord(tx *Transaction, receipt *Receipt) []byte {
	var outputArgs primitives.PackedArgumentArray
	if receipt.OutputArgumentArray != nil {
		outputArgs = receipt.OutputArgumentArray.Raw()
	}
	return (&TransactionRecordBuilder{
		BlockHeight:          receipt.BlockHeight,
		BlockTimestamp:       receipt.BlockTimestamp,
		TransactionTimestamp: tx.Timestamp,
		ExecutionResult:      receipt.ExecutionResult,
		OutputArgumentArray:  outputArgs,
	}).Build().Raw()
}

func DecodeRecord(txHash primitives.Sha256, raw []byte) (*Receipt, primitives.TimestampNano, error) {
	record := TransactionRecordReader(raw)
	if !record.IsValid() {
		return nil, 0, errors.Errorf("corrupt transaction record %s", txHash)
	}

	outputArgs := EmptyArguments()
	if packed := record.OutputArgumentArray(); len(packed) > 0 {
		outputArgs = protocol.ArgumentArrayReader(packed)
		if !outputArgs.IsValid() {
			return nil, 0, errors.Errorf("corrupt output arguments in transaction record %s", txHash)
		}
	}

	return &Receipt{
		TxHash:              txHash,
		ExecutionResult:     record.ExecutionResult(),
		OutputArgumentArray: outputArgs,
		BlockHeight:         record.BlockHeight(),
		BlockTimestamp:      record.BlockTimestamp(),
	}, record.TransactionTimestamp(), nil
}
