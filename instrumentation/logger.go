// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package instrumentation

import (
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/scribe/log"
	"io"
	"os"
)

func GetBootstrapCrashLogger() log.Logger {
	return log.GetLogger().WithOutput(log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()))
}

// path may be empty; silent drops stdout. Unless LOGGER_FULL_LOG is set, only errors and lines tagged with one of the
// given service tags are written.
func GetLogger(path string, silent bool, cfg config.NodeConfig, verboseServices ...*log.Field) (log.Logger, io.Closer) {
	outputs := make([]log.Output, 0, 2)

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(os.Stdout, log.NewJsonFormatter()))
	}

	var closer io.Closer = nopCloser{}
	if path != "" {
		logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}
		closer = logFile
		outputs = append(outputs, log.NewFormattingOutput(logFile, log.NewJsonFormatter()))
	}

	logger := log.GetLogger().WithOutput(outputs...)

	conditionalFilter := log.NewConditionalFilter(false, nil)
	if !cfg.LoggerFullLog() {
		var filter log.Filter = log.OnlyErrors()
		for _, tag := range verboseServices {
			filter = log.Or(filter, log.MatchField(tag))
		}
		conditionalFilter = log.NewConditionalFilter(true, filter)
	}

	return logger.WithFilters(conditionalFilter), closer
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
