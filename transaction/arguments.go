// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package transaction

import (
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func ArgumentsFromNatives(args ...interface{}) (*protocol.ArgumentArray, error) {
	builders := make([]*protocol.ArgumentBuilder, 0, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case uint32:
			builders = append(builders, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: v})
		case uint64:
			builders = append(builders, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: v})
		case string:
			builders = append(builders, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: v})
		case []byte:
			builders = append(builders, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: v})
		default:
			return nil, errors.Errorf("argument %d of type %T is not supported", i, arg)
		}
	}
	return (&protocol.ArgumentArrayBuilder{Arguments: builders}).Build(), nil
}

// panics on unsupported types, for use with literal arguments
func MustArgumentsFromNatives(args ...interface{}) *protocol.ArgumentArray {
	res, err := ArgumentsFromNatives(args...)
	if err != nil {
		panic(err.Error())
	}
	return res
}

func ArgumentsToNatives(args *protocol.ArgumentArray) ([]interface{}, error) {
	res := []interface{}{}
	if args == nil {
		return res, nil
	}
	for i := args.ArgumentsIterator(); i.HasNext(); {
		arg := i.NextArguments()
		switch {
		case arg.IsTypeUint32Value():
			res = append(res, arg.Uint32Value())
		case arg.IsTypeUint64Value():
			res = append(res, arg.Uint64Value())
		case arg.IsTypeStringValue():
			res = append(res, arg.StringValue())
		case arg.IsTypeBytesValue():
			res = append(res, arg.BytesValue())
		default:
			return nil, errors.Errorf("argument %d has unsupported type %s", len(res), arg.StringType())
		}
	}
	return res, nil
}
