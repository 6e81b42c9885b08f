// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"fmt"
	"github.com/orbs-network/address-value-store/synchronization"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"sort"
	"strings"
	"sync"
	"time"
)

type Factory interface {
	NewLatency(name string, maxDuration time.Duration) *Histogram
	NewGauge(name string) *Gauge
	NewRate(name string) *Rate
	NewText(name string, defaultValue ...string) *Text
}

type Registry interface {
	Factory
	String() string
	ExportAll() map[string]exportedMetric
	ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) govnr.ShutdownWaiter
}

type exportedMetric interface {
	LogRow() []*log.Field
}

type metric interface {
	fmt.Stringer
	Name() string
	Export() exportedMetric
}

type namedMetric struct {
	name string
}

func (m *namedMetric) Name() string {
	return m.name
}

func NewRegistry() Registry {
	return &inMemoryRegistry{}
}

type inMemoryRegistry struct {
	mu struct {
		sync.RWMutex
		metrics []metric
	}
}

func (r *inMemoryRegistry) register(m metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mu.metrics = append(r.mu.metrics, m)
}

func (r *inMemoryRegistry) NewRate(name string) *Rate {
	m := newRate(name)
	r.register(m)
	return m
}

func (r *inMemoryRegistry) NewGauge(name string) *Gauge {
	g := &Gauge{namedMetric: namedMetric{name: name}}
	r.register(g)
	return g
}

func (r *inMemoryRegistry) NewLatency(name string, maxDuration time.Duration) *Histogram {
	h := newHistogram(name, maxDuration.Nanoseconds())
	r.register(h)
	return h
}

func (r *inMemoryRegistry) NewText(name string, defaultValue ...string) *Text {
	t := newText(name, defaultValue...)
	r.register(t)
	return t
}

func (r *inMemoryRegistry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]string, 0, len(r.mu.metrics))
	for _, m := range r.mu.metrics {
		rows = append(rows, m.String())
	}
	sort.Strings(rows)

	return strings.Join(rows, "")
}

func (r *inMemoryRegistry) ExportAll() map[string]exportedMetric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]exportedMetric)
	for _, m := range r.mu.metrics {
		all[m.Name()] = m.Export()
	}

	return all
}

func (r *inMemoryRegistry) report(logger log.Logger) {
	for _, value := range r.ExportAll() {
		if logRow := value.LogRow(); logRow != nil {
			logger.Info("metric", logRow...)
		}
	}
}

func (r *inMemoryRegistry) rotateHistograms() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.mu.metrics {
		if h, ok := m.(*Histogram); ok {
			h.Rotate()
		}
	}
}

func (r *inMemoryRegistry) ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) govnr.ShutdownWaiter {
	return synchronization.NewPeriodicalTrigger(ctx, "metric registry reporter", interval, logger, func() {
		r.report(logger)
		r.rotateHistograms()
	}, func() {
		r.report(logger)
	})
}
