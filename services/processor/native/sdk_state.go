// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

type stateSdk struct {
	s *service
}

func (sdk *stateSdk) ReadBytes(ctx types.Context, key []byte) ([]byte, bool, error) {
	output, err := sdk.s.sdkHandler.HandleSdkCall(ctx, &processor.SdkCallInput{
		ContextId:     ctx.ExecutionContextId(),
		OperationName: processor.SDK_OPERATION_NAME_STATE,
		MethodName:    "read",
		InputArguments: []*protocol.Argument{
			(&protocol.ArgumentBuilder{
				Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
				BytesValue: key,
			}).Build(),
		},
		PermissionScope: ctx.PermissionScope(),
	})
	if err != nil {
		return nil, false, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeBytesValue() {
		return nil, false, errors.Errorf("read Sdk.State returned corrupt output value")
	}
	value := output.OutputArguments[0].BytesValue()
	// an empty record is a deleted record
	return value, len(value) > 0, nil
}

func (sdk *stateSdk) WriteBytes(ctx types.Context, key []byte, value []byte) error {
	_, err := sdk.s.sdkHandler.HandleSdkCall(ctx, &processor.SdkCallInput{
		ContextId:     ctx.ExecutionContextId(),
		OperationName: processor.SDK_OPERATION_NAME_STATE,
		MethodName:    "write",
		InputArguments: []*protocol.Argument{
			(&protocol.ArgumentBuilder{
				Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
				BytesValue: key,
			}).Build(),
			(&protocol.ArgumentBuilder{
				Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
				BytesValue: value,
			}).Build(),
		},
		PermissionScope: ctx.PermissionScope(),
	})
	return err
}

func (sdk *stateSdk) ReadUint32(ctx types.Context, key []byte) (types.OptionalUint32, error) {
	bytes, found, err := sdk.ReadBytes(ctx, key)
	if err != nil || !found {
		return types.NoneUint32(), err
	}
	if len(bytes) != 4 {
		return types.NoneUint32(), errors.Errorf("state record is %d bytes and cannot hold a uint32", len(bytes))
	}
	return types.SomeUint32(membuffers.GetUint32(bytes)), nil
}

func (sdk *stateSdk) WriteUint32(ctx types.Context, key []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return sdk.WriteBytes(ctx, key, bytes)
}
