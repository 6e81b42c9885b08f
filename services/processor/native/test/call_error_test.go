// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestUnknownContract(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.call(ctx, "UnknownContract", "hello", "World")
		require.Error(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED, output.CallResult)
	})
}

func TestInputErrors(t *testing.T) {
	tests := []struct {
		name       string
		contract   primitives.ContractName
		method     primitives.MethodName
		access     protocol.ExecutionAccessScope
		permission protocol.ExecutionPermissionScope
		args       []interface{}
	}{
		{"unknown method", avs, "unknown", protocol.ACCESS_SCOPE_READ_WRITE, protocol.PERMISSION_SCOPE_SERVICE, nil},
		{"system method from service scope", avs, "_init", protocol.ACCESS_SCOPE_READ_WRITE, protocol.PERMISSION_SCOPE_SERVICE, nil},
		{"write method in read only call", avs, "store", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{make([]byte, 20), uint32(1)}},
		{"missing argument", avs, "hello", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, nil},
		{"extra argument", avs, "hello", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{"World", "again"}},
		{"wrong argument type", avs, "hello", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{uint32(1)}},
		{"value is not uint32", avs, "store", protocol.ACCESS_SCOPE_READ_WRITE, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{make([]byte, 20), uint64(1)}},
		{"short address", avs, "get", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{make([]byte, 19)}},
		{"address as string", avs, "get", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{"not-an-address"}},
		{"method without error output", testContract.Name, "invalidNoErr", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, nil},
		{"method without context", testContract.Name, "invalidNoCtx", protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, []interface{}{uint32(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.WithContext(func(ctx context.Context) {
				h := newHarness(t)

				output, err := h.callWithScopes(ctx, tt.access, tt.permission, tt.contract, tt.method, tt.args...)
				require.Error(t, err)
				require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
				require.Len(t, outputsOf(t, output), 1, "input errors carry their message as a single output")
			})
		})
	}
}

func TestSystemMethodFromSystemScope(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.callWithScopes(ctx, protocol.ACCESS_SCOPE_READ_WRITE, protocol.PERMISSION_SCOPE_SYSTEM, avs, "_init")
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
	})
}

func TestContractErrors(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.call(ctx, testContract.Name, "throw")
		require.EqualError(t, err, "example error returned by contract")
		require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.CallResult)
		require.Equal(t, []interface{}{"example error returned by contract"}, outputsOf(t, output))

		output, err = h.call(ctx, testContract.Name, "panic")
		require.EqualError(t, err, "example panic thrown by contract")
		require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.CallResult)
		require.Equal(t, []interface{}{"example panic thrown by contract"}, outputsOf(t, output))
	})
}

func TestDeployedContractsAreListed(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, []primitives.ContractName{avs, testContract.Name}, h.service.DeployedContracts())
}
