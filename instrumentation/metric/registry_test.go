// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"encoding/json"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestInMemoryRegistry_ExportAll(t *testing.T) {
	registry := NewRegistry()
	gauge := registry.NewGauge("hello")
	gauge.Add(1)
	registry.NewText("version", "v1")

	exported := registry.ExportAll()
	require.EqualValues(t, 1, exported["hello"].(gaugeExport).Value)
	require.Equal(t, "v1", exported["version"].(textExport).Value)
}

func TestInMemoryRegistry_ExportAllMarshalsToJson(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("StateStorage.BlockHeight").Update(3)
	registry.NewLatency("PublicApi.RunQuery.Millis", time.Second)

	raw, err := json.Marshal(registry.ExportAll())
	require.NoError(t, err)

	var parsed map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.EqualValues(t, 3, parsed["StateStorage.BlockHeight"]["Value"])
	require.Contains(t, parsed, "PublicApi.RunQuery.Millis")
}

func TestInMemoryRegistry_String(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("b").Update(2)
	registry.NewGauge("a").Update(1)

	require.Equal(t, "metric a: 1\nmetric b: 2\n", registry.String())
}

func TestInMemoryRegistry_ReportEveryStopsWithContext(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("hello").Inc()

	ctx, cancel := context.WithCancel(context.Background())
	waiter := registry.ReportEvery(ctx, time.Millisecond, log.DefaultTestingLogger(t))
	time.Sleep(5 * time.Millisecond)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	waiter.WaitUntilShutdown(shutdownCtx)
}
