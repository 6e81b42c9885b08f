// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import (
	"context"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/govnr"
	"time"
)

type PeriodicalTrigger struct {
	govnr.TreeSupervisor
	name     string
	interval time.Duration
	handler  func()
	onStop   func()
	logger   logfields.Errorer
	cancel   context.CancelFunc
	closed   govnr.ContextEndedChan
}

// the handler runs on a supervised goroutine every interval until ctx is done; onStop, if given, runs once after the last tick
func NewPeriodicalTrigger(ctx context.Context, name string, interval time.Duration, logger logfields.Errorer, trigger func(), onStop func()) *PeriodicalTrigger {
	subCtx, cancel := context.WithCancel(ctx)
	t := &PeriodicalTrigger{
		name:     name,
		interval: interval,
		handler:  trigger,
		onStop:   onStop,
		logger:   logger,
		cancel:   cancel,
	}

	t.run(subCtx)
	return t
}

func (t *PeriodicalTrigger) run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	h := govnr.Forever(ctx, t.name, logfields.GovnrErrorer(t.logger), func() {
		for {
			select {
			case <-ticker.C:
				t.handler()
			case <-ctx.Done():
				ticker.Stop()
				if t.onStop != nil {
					t.onStop()
				}
				return
			}
		}
	})
	t.closed = h.Done()
	t.Supervise(h)
}

func (t *PeriodicalTrigger) Stop() {
	t.cancel()
	<-t.closed
}
