// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetUint32(VIRTUAL_CHAIN_ID, 42)

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetBool(PROFILING, false)

	cfg.SetString(STATE_STORAGE_ADAPTER, STATE_STORAGE_ADAPTER_MEMORY)
	cfg.SetString(STATE_STORAGE_DATA_DIR, "/usr/local/var/avs")
	cfg.SetString(STATE_STORAGE_SNAPSHOT_PATH, "")

	cfg.SetDuration(PUBLIC_API_SEND_TRANSACTION_TIMEOUT, 5*time.Second)
	cfg.SetDuration(PUBLIC_API_RUN_QUERY_TIMEOUT, 1*time.Second)
	cfg.SetUint32(PUBLIC_API_REQUESTS_PER_SECOND, 1000)
	cfg.SetUint32(PUBLIC_API_REQUESTS_BURST, 100)
	cfg.SetUint32(PUBLIC_API_RECEIPTS_CACHE_SIZE, 100000)

	cfg.SetDuration(TRANSACTION_EXPIRATION_WINDOW, 30*time.Minute)
	cfg.SetDuration(TRANSACTION_FUTURE_TIMESTAMP_GRACE, 1*time.Minute)

	cfg.SetBool(VIRTUAL_MACHINE_REQUIRE_SIGNER_AUTH, false)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetString(NTP_ENDPOINT, "")
	cfg.SetBool(LOGGER_FULL_LOG, false)

	return cfg
}

// config for a production node
func ForProduction(dataDir string) mutableNodeConfig {
	cfg := defaultProductionConfig()

	if dataDir != "" {
		cfg.SetString(STATE_STORAGE_DATA_DIR, dataDir)
	}
	return cfg
}

// config for in-process acceptance tests: ephemeral port, in-memory state, full logs
func ForAcceptanceTests() mutableNodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetDuration(PUBLIC_API_SEND_TRANSACTION_TIMEOUT, 2*time.Second)
	cfg.SetDuration(PUBLIC_API_RUN_QUERY_TIMEOUT, 1*time.Second)
	cfg.SetUint32(PUBLIC_API_RECEIPTS_CACHE_SIZE, 1000)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 1*time.Second)
	cfg.SetBool(LOGGER_FULL_LOG, true)

	return cfg
}

