// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"github.com/beevik/ntp"
	"github.com/orbs-network/address-value-store/synchronization"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"time"
)

const NTP_QUERY_INTERVAL = 30 * time.Second

type ntpReporter struct {
	drift   *Gauge
	address string
}

func NewNtpReporter(ctx context.Context, metricFactory Factory, logger log.Logger, ntpServerAddress string) govnr.ShutdownWaiter {
	r := &ntpReporter{
		drift:   metricFactory.NewGauge("OS.Time.Drift.Millis"),
		address: ntpServerAddress,
	}

	return synchronization.NewPeriodicalTrigger(ctx, "NTP metric reporter", NTP_QUERY_INTERVAL, logger, func() {
		response, err := ntp.Query(r.address)
		if err != nil {
			logger.Info("could not query ntp server", log.String("ntp-server", r.address), log.Error(err))
			return
		}
		r.drift.Update(response.ClockOffset.Nanoseconds() / int64(time.Millisecond))
	}, nil)
}
