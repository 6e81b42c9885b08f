// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

type addressSdk struct {
	s *service
}

func (sdk *addressSdk) GetSignerAddress(ctx types.Context) (types.Address, error) {
	output, err := sdk.s.sdkHandler.HandleSdkCall(ctx, &processor.SdkCallInput{
		ContextId:       ctx.ExecutionContextId(),
		OperationName:   processor.SDK_OPERATION_NAME_ADDRESS,
		MethodName:      "getSignerAddress",
		InputArguments:  []*protocol.Argument{},
		PermissionScope: ctx.PermissionScope(),
	})
	if err != nil {
		return nil, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeBytesValue() {
		return nil, errors.Errorf("getSignerAddress Sdk.Address returned corrupt output value")
	}
	return output.OutputArguments[0].BytesValue(), nil
}

func (sdk *addressSdk) RequireAuth(ctx types.Context, address types.Address) error {
	_, err := sdk.s.sdkHandler.HandleSdkCall(ctx, &processor.SdkCallInput{
		ContextId:     ctx.ExecutionContextId(),
		OperationName: processor.SDK_OPERATION_NAME_ADDRESS,
		MethodName:    "requireAuth",
		InputArguments: []*protocol.Argument{
			(&protocol.ArgumentBuilder{
				Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
				BytesValue: address,
			}).Build(),
		},
		PermissionScope: ctx.PermissionScope(),
	})
	return err
}
