// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

// Package jsonapi is the JSON wire format spoken by the node's HTTP endpoints, with a client for it.
package jsonapi

import (
	"encoding/hex"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

const (
	ARGUMENT_TYPE_UINT32 = "uint32"
	ARGUMENT_TYPE_UINT64 = "uint64"
	ARGUMENT_TYPE_STRING = "string"
	ARGUMENT_TYPE_BYTES  = "bytes"
)

type Argument struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func Uint32Argument(v uint32) Argument {
	return Argument{Type: ARGUMENT_TYPE_UINT32, Value: strconv.FormatUint(uint64(v), 10)}
}

func Uint64Argument(v uint64) Argument {
	return Argument{Type: ARGUMENT_TYPE_UINT64, Value: strconv.FormatUint(v, 10)}
}

func StringArgument(v string) Argument {
	return Argument{Type: ARGUMENT_TYPE_STRING, Value: v}
}

func BytesArgument(v []byte) Argument {
	return Argument{Type: ARGUMENT_TYPE_BYTES, Value: EncodeHex(v)}
}

func EncodeHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// accepts both 0x-prefixed and bare hex
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
}

func ArgumentsFromJson(args []Argument) (*protocol.ArgumentArray, error) {
	builders := make([]*protocol.ArgumentBuilder, 0, len(args))
	for i, arg := range args {
		builder, err := argumentFromJson(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		builders = append(builders, builder)
	}
	return (&protocol.ArgumentArrayBuilder{Arguments: builders}).Build(), nil
}

func argumentFromJson(arg Argument) (*protocol.ArgumentBuilder, error) {
	switch arg.Type {
	case ARGUMENT_TYPE_UINT32:
		v, err := strconv.ParseUint(arg.Value, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid uint32 value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(v)}, nil
	case ARGUMENT_TYPE_UINT64:
		v, err := strconv.ParseUint(arg.Value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid uint64 value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: v}, nil
	case ARGUMENT_TYPE_STRING:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.Value}, nil
	case ARGUMENT_TYPE_BYTES:
		v, err := DecodeHex(arg.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hex value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: v}, nil
	}
	return nil, errors.Errorf("unknown argument type '%s'", arg.Type)
}

func ArgumentsToJson(args *protocol.ArgumentArray) ([]Argument, error) {
	res := []Argument{}
	if args == nil {
		return res, nil
	}
	for i := args.ArgumentsIterator(); i.HasNext(); {
		arg := i.NextArguments()
		switch {
		case arg.IsTypeUint32Value():
			res = append(res, Uint32Argument(arg.Uint32Value()))
		case arg.IsTypeUint64Value():
			res = append(res, Uint64Argument(arg.Uint64Value()))
		case arg.IsTypeStringValue():
			res = append(res, StringArgument(arg.StringValue()))
		case arg.IsTypeBytesValue():
			res = append(res, BytesArgument(arg.BytesValue()))
		default:
			return nil, errors.Errorf("argument %d has unsupported type %s", len(res), arg.StringType())
		}
	}
	return res, nil
}
