// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/orbs-network/address-value-store/bootstrap"
	"github.com/orbs-network/address-value-store/bootstrap/httpserver"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation"
	"github.com/orbs-network/address-value-store/services/publicapi"
	"github.com/orbs-network/address-value-store/synchronization"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io"
	"os"
	"time"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

func main() {
	logger := instrumentation.GetBootstrapCrashLogger()
	var node *bootstrap.Node
	var logCloser io.Closer
	func() { // context of bootstrap crash logging
		defer func() {
			if r := recover(); r != nil {
				logger.Error("unexpected error during bootstrap", log.Error(errors.Errorf("unknown error: %v", r)))
				os.Exit(8)
			}
		}()
		httpAddress := flag.String("listen", "", "ip address and port for http server, overrides HTTP_ADDRESS")
		silentLog := flag.Bool("silent", false, "disable output to stdout")
		pathToLog := flag.String("log", "", "path/to/node.log")
		version := flag.Bool("version", false, "returns information about version")

		var configFiles config.FilesPaths
		flag.Var(&configFiles, "config", "path/to/config.json or config.yaml, may be repeated")

		flag.Parse()

		if *version {
			fmt.Println(config.GetVersion())
			os.Exit(0)
		}

		cfg, err := config.GetNodeConfigFromFiles(configFiles, *httpAddress)
		if err != nil {
			logger.Error("error reading configuration", log.Error(err))
			os.Exit(1)
		}
		if err := config.ValidateNodeConfig(cfg); err != nil {
			logger.Error("invalid configuration", log.Error(err))
			os.Exit(1)
		}

		logger, logCloser = instrumentation.GetLogger(*pathToLog, *silentLog, cfg, publicapi.LogTag, httpserver.LogTag)

		node, err = bootstrap.NewNode(cfg, logger)
		if err != nil {
			logger.Error("failed to start node", log.Error(err))
			os.Exit(1)
		}

		synchronization.NewShutdownListener(logger, node, SHUTDOWN_TIMEOUT).ListenToOSShutdownSignal()
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error in main goroutine", log.Error(errors.Errorf("unknown error: %v", r)))
			os.Exit(2)
		}
	}()
	node.WaitUntilShutdown(context.Background())
	logCloser.Close()
}
