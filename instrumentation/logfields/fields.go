// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err))
}

func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}

func Transaction(txHash primitives.Sha256) *log.Field {
	return log.Stringable("txHash", txHash)
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return log.Uint64("block-height", uint64(value))
}

func VirtualChainId(value primitives.VirtualChainId) *log.Field {
	return log.Uint32("vcid", uint32(value))
}

func Contract(name primitives.ContractName) *log.Field {
	return log.String("contract", string(name))
}

func Method(name primitives.MethodName) *log.Field {
	return log.String("method", string(name))
}

func ClientAddress(address primitives.ClientAddress) *log.Field {
	return log.Stringable("signer", address)
}
