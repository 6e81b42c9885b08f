// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package processor

import (
	"context"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type ProcessCallInput struct {
	ContextId              primitives.ExecutionContextId
	ContractName           primitives.ContractName
	MethodName             primitives.MethodName
	InputArgumentArray     *protocol.ArgumentArray
	AccessScope            protocol.ExecutionAccessScope
	CallingPermissionScope protocol.ExecutionPermissionScope
}

type ProcessCallOutput struct {
	OutputArgumentArray *protocol.ArgumentArray
	CallResult          protocol.ExecutionResult
}

type Processor interface {
	ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error)
	RegisterContractSdkCallHandler(handler SdkCallHandler)
	DeployedContracts() []primitives.ContractName
}

// sdk calls made by running contracts back into the virtual machine

const (
	SDK_OPERATION_NAME_STATE   = "Sdk.State"
	SDK_OPERATION_NAME_ADDRESS = "Sdk.Address"
)

type SdkCallInput struct {
	ContextId       primitives.ExecutionContextId
	OperationName   string
	MethodName      string
	InputArguments  []*protocol.Argument
	PermissionScope protocol.ExecutionPermissionScope
}

type SdkCallOutput struct {
	OutputArguments []*protocol.Argument
}

type SdkCallHandler interface {
	HandleSdkCall(ctx context.Context, input *SdkCallInput) (*SdkCallOutput, error)
}
