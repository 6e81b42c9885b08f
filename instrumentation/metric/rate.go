// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"fmt"
	"github.com/VividCortex/ewma"
	"github.com/orbs-network/scribe/log"
	"sync"
	"time"
)

var tickInterval = 1 * time.Second

type Rate struct {
	namedMetric

	m             sync.Mutex
	movingAverage ewma.MovingAverage
	runningSum    int64
	nextTick      time.Time
}

type rateExport struct {
	Name     string
	Rate     float64
	Interval time.Duration
}

func newRate(name string) *Rate {
	return newRateWithStart(name, time.Now())
}

func newRateWithStart(name string, start time.Time) *Rate {
	return &Rate{
		namedMetric:   namedMetric{name: name},
		movingAverage: ewma.NewMovingAverage(),
		nextTick:      start.Add(tickInterval),
	}
}

func (r *Rate) Export() exportedMetric {
	return r.export()
}

func (r *Rate) export() rateExport {
	r.m.Lock()
	defer r.m.Unlock()
	return rateExport{
		r.name,
		r.movingAverage.Value(),
		tickInterval,
	}
}

func (r *Rate) String() string {
	return fmt.Sprintf("metric %s: %f per %s\n", r.name, r.export().Rate, tickInterval)
}

func (r *Rate) Measure(eventCount int64) {
	r.m.Lock()
	defer r.m.Unlock()
	r.maybeRotateAsOfLocked(time.Now())
	r.runningSum += eventCount
}

func (r *Rate) maybeRotateAsOf(now time.Time) {
	r.m.Lock()
	defer r.m.Unlock()
	r.maybeRotateAsOfLocked(now)
}

func (r *Rate) maybeRotateAsOfLocked(now time.Time) {
	for r.nextTick.Before(now) {
		r.movingAverage.Add(float64(r.runningSum))
		r.runningSum = 0
		r.nextTick = r.nextTick.Add(tickInterval)
	}
}

func (r *Rate) Reset() {
	r.m.Lock()
	defer r.m.Unlock()

	r.movingAverage = ewma.NewMovingAverage()
	r.runningSum = 0
}

func (r rateExport) LogRow() []*log.Field {
	return []*log.Field{
		log.String("metric", r.Name),
		log.String("metric-type", "rate"),
		log.Float64("rate", r.Rate),
	}
}
