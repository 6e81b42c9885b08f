// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"reflect"
)

var (
	contextType  = reflect.TypeOf((*types.Context)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	addressType  = reflect.TypeOf(types.Address{})
	optionalType = reflect.TypeOf(types.OptionalUint32{})
)

func processMethodCall(ctx types.Context, receiver types.Contract, method types.MethodInfo, args *protocol.ArgumentArray, functionNameForErrors string) (contractOutputArgs *protocol.ArgumentArray, contractOutputErr error, err error) {

	defer func() {
		if r := recover(); r != nil {
			contractOutputErr = errors.Errorf("%s", r)
			contractOutputArgs = createMethodOutputArgsWithString(contractOutputErr.Error())
		}
	}()

	methodValue := reflect.ValueOf(method.Implementation)
	if err := verifyMethodSignature(methodValue, functionNameForErrors); err != nil {
		return nil, nil, err
	}

	// verify input args
	argValues, err := prepareMethodInputArgsForCall(methodValue.Type(), args, functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}

	// execute the call
	inValues := append([]reflect.Value{reflect.ValueOf(receiver), reflect.ValueOf(ctx)}, argValues...)
	outValues := methodValue.Call(inValues)

	// the last output is always the contract error
	if errValue := outValues[len(outValues)-1]; !errValue.IsNil() {
		contractOutputErr = errValue.Interface().(error)
		return createMethodOutputArgsWithString(contractOutputErr.Error()), contractOutputErr, nil
	}

	// create output args
	contractOutputArgs, err = createMethodOutputArgs(outValues[:len(outValues)-1], functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}

	// done
	return contractOutputArgs, nil, nil
}

// implementations are method expressions: receiver, context, then arguments; outputs end with an error
func verifyMethodSignature(methodValue reflect.Value, functionNameForErrors string) error {
	if methodValue.Kind() != reflect.Func {
		return errors.Errorf("method '%s' implementation is not a function", functionNameForErrors)
	}
	methodType := methodValue.Type()
	if methodType.NumIn() < 2 || methodType.In(1) != contextType {
		return errors.Errorf("method '%s' first argument is not the execution context", functionNameForErrors)
	}
	if methodType.NumOut() < 1 || methodType.Out(methodType.NumOut()-1) != errorType {
		return errors.Errorf("method '%s' does not return an error as its last output", functionNameForErrors)
	}
	return nil
}

func prepareMethodInputArgsForCall(methodType reflect.Type, args *protocol.ArgumentArray, functionNameForErrors string) ([]reflect.Value, error) {
	const firstArgIndex = 2
	expected := methodType.NumIn() - firstArgIndex
	res := []reflect.Value{}
	if args == nil {
		args = (&protocol.ArgumentArrayBuilder{}).Build()
	}

	var arg *protocol.Argument
	argsIterator := args.ArgumentsIterator()
	for i := 0; i < expected; i++ {
		paramType := methodType.In(i + firstArgIndex)

		// get the next arg from the transaction
		if argsIterator.HasNext() {
			arg = argsIterator.NextArguments()
		} else {
			return nil, errors.Errorf("method '%s' takes %d args but received %d", functionNameForErrors, expected, i)
		}

		// translate argument type
		if paramType == addressType {
			if !arg.IsTypeBytesValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be an address but it has %s", functionNameForErrors, i, arg.StringType())
			}
			if err := types.ValidateAddress(arg.BytesValue()); err != nil {
				return nil, errors.Wrapf(err, "method '%s' arg %d", functionNameForErrors, i)
			}
			res = append(res, reflect.ValueOf(types.Address(arg.BytesValue())))
			continue
		}

		switch paramType.Kind() {
		case reflect.Uint32:
			if !arg.IsTypeUint32Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint32 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint32Value()))
		case reflect.Uint64:
			if !arg.IsTypeUint64Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint64 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint64Value()))
		case reflect.String:
			if !arg.IsTypeStringValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be string but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.StringValue()))
		case reflect.Slice:
			if paramType.Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' arg %d slice type is not byte", functionNameForErrors, i)
			}
			if !arg.IsTypeBytesValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be bytes but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.BytesValue()))
		default:
			return nil, errors.Errorf("method '%s' expects arg %d to be a known type but it has %s", functionNameForErrors, i, arg.StringType())
		}
	}

	// make sure transaction doesn't have any more args left
	if argsIterator.HasNext() {
		return nil, errors.Errorf("method '%s' takes %d args but received more", functionNameForErrors, expected)
	}

	return res, nil
}

func createMethodOutputArgs(args []reflect.Value, functionNameForErrors string) (*protocol.ArgumentArray, error) {
	res := []*protocol.ArgumentBuilder{}
	for i, arg := range args {
		if arg.Type() == optionalType {
			// an absent value produces no output argument at all
			if value, present := arg.Interface().(types.OptionalUint32).Get(); present {
				res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: value})
			}
			continue
		}

		switch arg.Kind() {
		case reflect.Uint32:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(arg.Uint())})
		case reflect.Uint64:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: arg.Uint()})
		case reflect.String:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.String()})
		case reflect.Slice:
			switch arg.Type().Elem().Kind() {
			case reflect.Uint8:
				res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: arg.Bytes()})
			case reflect.String:
				for j := 0; j < arg.Len(); j++ {
					res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.Index(j).String()})
				}
			default:
				return nil, errors.Errorf("method '%s' output arg %d slice type is not byte or string", functionNameForErrors, i)
			}
		default:
			return nil, errors.Errorf("method '%s' output arg %d is of unsupported type", functionNameForErrors, i)
		}
	}
	return (&protocol.ArgumentArrayBuilder{
		Arguments: res,
	}).Build(), nil
}

func createMethodOutputArgsWithString(str string) *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: str},
		},
	}).Build()
}
