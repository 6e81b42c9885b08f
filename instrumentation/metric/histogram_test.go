// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestHistogram_ExportsMillis(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())
	for i := 1; i <= 100; i++ {
		h.Record((time.Duration(i) * time.Millisecond).Nanoseconds())
	}

	e := h.export()
	require.EqualValues(t, 100, e.Samples)
	require.InDelta(t, 1, e.Min, 0.01)
	require.InDelta(t, 100, e.Max, 0.1)
	require.InDelta(t, 50, e.P50, 0.1)
	require.InDelta(t, 50.5, e.Avg, 0.1)
	require.Zero(t, e.Overflow)
}

func TestHistogram_CountsOverflow(t *testing.T) {
	h := newHistogram("latency", time.Millisecond.Nanoseconds())
	h.Record(time.Hour.Nanoseconds())

	e := h.export()
	require.EqualValues(t, 1, e.Overflow)
	require.Zero(t, e.Samples)
	require.Nil(t, e.LogRow(), "an empty histogram should not be reported")
}

func TestHistogram_RotateEventuallyForgetsSamples(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())
	h.RecordSince(time.Now().Add(-10 * time.Millisecond))
	require.EqualValues(t, 1, h.export().Samples)

	for i := 0; i < 5; i++ {
		h.Rotate()
	}
	require.Zero(t, h.export().Samples)
}
