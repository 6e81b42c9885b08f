// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/address-value-store/services/processor/native/repository/AddressValueStore"
	"github.com/orbs-network/address-value-store/test"
	orbsClient "github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

const avs = addressvaluestore.CONTRACT_NAME

func someAddress(t *testing.T) []byte {
	account, err := orbsClient.CreateAccount()
	require.NoError(t, err)
	return account.AddressAsBytes()
}

func TestHello(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.call(ctx, avs, "hello", "World")
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Equal(t, []interface{}{"Hello", "World"}, outputsOf(t, output))
	})
}

func TestStoreThenGet(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)
		h.expectSdkCalls(3) // requireAuth, write, read
		user := someAddress(t)

		output, err := h.call(ctx, avs, "store", user, uint32(42))
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Empty(t, outputsOf(t, output), "store returns nothing")

		output, err = h.callWithScopes(ctx, protocol.ACCESS_SCOPE_READ_ONLY, protocol.PERMISSION_SCOPE_SERVICE, avs, "get", user)
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Equal(t, []interface{}{uint32(42)}, outputsOf(t, output))

		h.verifySdkCalls(t)
	})
}

func TestGet_AbsentValueHasNoOutputs(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)
		h.expectSdkCalls(1)

		output, err := h.call(ctx, avs, "get", someAddress(t))
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Empty(t, outputsOf(t, output), "absent value must not be encoded as zero")
	})
}

func TestGet_StoredZeroIsReturned(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)
		h.expectSdkCalls(3)
		user := someAddress(t)

		_, err := h.call(ctx, avs, "store", user, uint32(0))
		require.NoError(t, err)

		output, err := h.call(ctx, avs, "get", user)
		require.NoError(t, err)
		require.Equal(t, []interface{}{uint32(0)}, outputsOf(t, output))
	})
}

func TestStore_DeniedAuthorizationIsAContractError(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)
		h.denyAuth = true
		h.expectSdkCalls(1)

		output, err := h.call(ctx, avs, "store", someAddress(t), uint32(1))
		require.Error(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.CallResult)
		require.Empty(t, h.state, "nothing should be written")

		h.verifySdkCalls(t)
	})
}

func TestArgumentTypesRoundTrip(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.call(ctx, testContract.Name, "argTypes", uint32(11), uint64(12), "hello", []byte{0x01, 0x02})
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Equal(t, []interface{}{uint32(12), uint64(13), "hello1", []byte{0x01, 0x02, 0x01}}, outputsOf(t, output))
	})
}

func TestOptionalOutputWithoutValue(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newHarness(t)

		output, err := h.call(ctx, testContract.Name, "optionalEmpty")
		require.NoError(t, err)
		require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
		require.Empty(t, outputsOf(t, output))
	})
}
