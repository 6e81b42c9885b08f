// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"bytes"
	"context"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/processor/native"
	"github.com/orbs-network/address-value-store/services/processor/native/repository"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"testing"
)

var EXAMPLE_CONTEXT_ID = primitives.ExecutionContextId{0x17, 0x01}

type sdkCallHandlerMock struct {
	mock.Mock
}

func (m *sdkCallHandlerMock) HandleSdkCall(ctx context.Context, input *processor.SdkCallInput) (*processor.SdkCallOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*processor.SdkCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

type harness struct {
	sync.Mutex
	service    processor.Processor
	sdkHandler *sdkCallHandlerMock
	state      map[string][]byte
	signer     []byte
	denyAuth   bool
}

func newHarness(tb testing.TB) *harness {
	contracts := map[primitives.ContractName]types.ContractInfo{
		testContract.Name: testContract,
	}
	for name, info := range repository.Contracts {
		contracts[name] = info
	}

	h := &harness{
		service:    native.NewNativeProcessor(contracts, log.DefaultTestingLogger(tb), metric.NewRegistry()),
		sdkHandler: &sdkCallHandlerMock{},
		state:      make(map[string][]byte),
	}
	h.service.RegisterContractSdkCallHandler(h.sdkHandler)
	return h
}

// backs the sdk mock with an in-memory state so calls can be both served and counted
func (h *harness) expectSdkCalls(times int) {
	h.sdkHandler.When("HandleSdkCall", mock.Any, mock.Any).Call(h.handleSdkCall).Times(times)
}

func (h *harness) handleSdkCall(ctx context.Context, input *processor.SdkCallInput) (*processor.SdkCallOutput, error) {
	h.Lock()
	defer h.Unlock()

	if !bytes.Equal(input.ContextId, EXAMPLE_CONTEXT_ID) {
		return nil, errors.Errorf("unexpected context id %x", []byte(input.ContextId))
	}

	switch input.OperationName + "." + input.MethodName {
	case processor.SDK_OPERATION_NAME_STATE + ".read":
		value := h.state[string(input.InputArguments[0].BytesValue())]
		return &processor.SdkCallOutput{OutputArguments: []*protocol.Argument{
			(&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value}).Build(),
		}}, nil
	case processor.SDK_OPERATION_NAME_STATE + ".write":
		h.state[string(input.InputArguments[0].BytesValue())] = input.InputArguments[1].BytesValue()
		return &processor.SdkCallOutput{}, nil
	case processor.SDK_OPERATION_NAME_ADDRESS + ".getSignerAddress":
		return &processor.SdkCallOutput{OutputArguments: []*protocol.Argument{
			(&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: h.signer}).Build(),
		}}, nil
	case processor.SDK_OPERATION_NAME_ADDRESS + ".requireAuth":
		if h.denyAuth {
			return nil, errors.New("signer is not authorized")
		}
		return &processor.SdkCallOutput{}, nil
	default:
		return nil, errors.Errorf("unknown sdk call %s.%s", input.OperationName, input.MethodName)
	}
}

func (h *harness) verifySdkCalls(tb testing.TB) {
	ok, err := h.sdkHandler.Verify()
	if !ok {
		tb.Fatalf("sdk handler called incorrectly: %v", err)
	}
}

func (h *harness) call(ctx context.Context, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*processor.ProcessCallOutput, error) {
	return h.callWithScopes(ctx, protocol.ACCESS_SCOPE_READ_WRITE, protocol.PERMISSION_SCOPE_SERVICE, contractName, methodName, args...)
}

func (h *harness) callWithScopes(ctx context.Context, access protocol.ExecutionAccessScope, permission protocol.ExecutionPermissionScope, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*processor.ProcessCallOutput, error) {
	return h.service.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              EXAMPLE_CONTEXT_ID,
		ContractName:           contractName,
		MethodName:             methodName,
		InputArgumentArray:     transaction.MustArgumentsFromNatives(args...),
		AccessScope:            access,
		CallingPermissionScope: permission,
	})
}

func outputsOf(tb testing.TB, output *processor.ProcessCallOutput) []interface{} {
	res, err := transaction.ArgumentsToNatives(output.OutputArgumentArray)
	if err != nil {
		tb.Fatal(err)
	}
	return res
}

// a contract exercising the edges of the calling convention

var testContract = types.ContractInfo{
	Name:       "TestContract",
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		"argTypes":      {Name: "argTypes", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).argTypes},
		"throw":         {Name: "throw", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).throw},
		"panic":         {Name: "panic", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).panic},
		"invalidNoErr":  {Name: "invalidNoErr", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).invalidNoErr},
		"invalidNoCtx":  {Name: "invalidNoCtx", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).invalidNoCtx},
		"optionalEmpty": {Name: "optionalEmpty", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*testReceiver).optionalEmpty},
	},
	InitSingleton: func(base *types.BaseContract) types.Contract {
		return &testReceiver{base}
	},
}

type testReceiver struct{ *types.BaseContract }

func (c *testReceiver) argTypes(ctx types.Context, a uint32, b uint64, s string, bytes []byte) (uint32, uint64, string, []byte, error) {
	return a + 1, b + 1, s + "1", append(bytes, 0x01), nil
}

func (c *testReceiver) throw(ctx types.Context) error {
	return errors.New("example error returned by contract")
}

func (c *testReceiver) panic(ctx types.Context) error {
	panic("example panic thrown by contract")
}

func (c *testReceiver) invalidNoErr(ctx types.Context) uint32 {
	return 1
}

func (c *testReceiver) invalidNoCtx(a uint32) error {
	return nil
}

func (c *testReceiver) optionalEmpty(ctx types.Context) (types.OptionalUint32, error) {
	return types.NoneUint32(), nil
}
