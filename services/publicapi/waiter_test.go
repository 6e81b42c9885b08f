// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/address-value-store/test"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestPublicApiWaiter_AddTwice(t *testing.T) {
	t.Parallel()
	waiter := newWaiter()
	wc1 := waiter.add("key")
	wc2 := waiter.add("key")

	require.NotEqual(t, wc1, wc2, "both wait objects must be different")
	require.Len(t, waiter.m, 1, "must have one key-value pair in upper level")
	require.Len(t, waiter.m["key"], 2, "must have two channels in lower level")
}

func TestPublicApiWaiter_DeleteChan(t *testing.T) {
	t.Parallel()
	waiter := newWaiter()
	wc1 := waiter.add("key")
	wc2 := waiter.add("key")
	waiter.deleteByChannel(wc1)

	require.Len(t, waiter.m["key"], 1, "must have one channel left in lower level")
	_, exists := waiter.m["key"][wc2]
	require.True(t, exists, "second chan must still exist")

	waiter.deleteByChannel(wc2)
	require.Empty(t, waiter.m, "must be empty")
}

func TestPublicApiWaiter_WaitTimesOut(t *testing.T) {
	t.Parallel()
	test.WithContext(func(ctx context.Context) {
		waiter := newWaiter()
		wc := waiter.add("key")

		ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err := waiter.wait(ctx, wc)
		require.Error(t, err, "expected waiting to be aborted")
		require.Empty(t, waiter.m, "timed out channel must be removed")
	})
}

func TestPublicApiWaiter_CompleteAllChannels(t *testing.T) {
	t.Parallel()
	test.WithContext(func(ctx context.Context) {
		waiter := newWaiter()
		wc1 := waiter.add("key")
		wc2 := waiter.add("key")
		expected := &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_COMMITTED, blockHeight: 3}

		waiter.complete("key", expected)

		for _, wc := range []*waiterChannel{wc1, wc2} {
			out, err := waiter.wait(ctx, wc)
			require.NoError(t, err)
			require.Equal(t, expected, out)
			_, open := <-wc.c
			require.False(t, open, "channel should be closed")
		}
	})
}

func TestPublicApiWaiter_CompleteAfterOneWasCanceled(t *testing.T) {
	t.Parallel()
	test.WithContext(func(ctx context.Context) {
		waiter := newWaiter()
		wc1 := waiter.add("key")
		wc2 := waiter.add("key")

		canceledCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := waiter.wait(canceledCtx, wc1)
		require.Error(t, err)

		waiter.complete("key", &txOutput{transactionStatus: protocol.TRANSACTION_STATUS_COMMITTED})

		out, err := waiter.wait(ctx, wc2)
		require.NoError(t, err)
		require.Equal(t, protocol.TRANSACTION_STATUS_COMMITTED, out.transactionStatus)
	})
}
