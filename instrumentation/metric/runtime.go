// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"github.com/orbs-network/address-value-store/synchronization"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"runtime"
	"time"
)

const RUNTIME_REPORT_INTERVAL = 5 * time.Second

type runtimeReporter struct {
	heapAlloc       *Gauge
	heapSys         *Gauge
	gcCpuPercentage *Gauge
	goroutines      *Gauge
}

func NewRuntimeReporter(ctx context.Context, metricFactory Factory, logger log.Logger) govnr.ShutdownWaiter {
	r := &runtimeReporter{
		heapAlloc:       metricFactory.NewGauge("Runtime.HeapAlloc.Bytes"),
		heapSys:         metricFactory.NewGauge("Runtime.HeapSys.Bytes"),
		gcCpuPercentage: metricFactory.NewGauge("Runtime.GCCPUPercentage"),
		goroutines:      metricFactory.NewGauge("Runtime.Goroutines.Count"),
	}
	r.report()

	return synchronization.NewPeriodicalTrigger(ctx, "runtime metric reporter", RUNTIME_REPORT_INTERVAL, logger, r.report, nil)
}

func (r *runtimeReporter) report() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.heapSys.Update(int64(mem.HeapSys))
	r.heapAlloc.Update(int64(mem.HeapAlloc))
	r.gcCpuPercentage.Update(int64(mem.GCCPUFraction * 100))
	r.goroutines.Update(int64(runtime.NumGoroutine()))
}
