// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

const (
	VIRTUAL_CHAIN_ID = "VIRTUAL_CHAIN_ID"

	HTTP_ADDRESS = "HTTP_ADDRESS"
	PROFILING    = "PROFILING"

	STATE_STORAGE_ADAPTER       = "STATE_STORAGE_ADAPTER"
	STATE_STORAGE_DATA_DIR      = "STATE_STORAGE_DATA_DIR"
	STATE_STORAGE_SNAPSHOT_PATH = "STATE_STORAGE_SNAPSHOT_PATH"

	PUBLIC_API_SEND_TRANSACTION_TIMEOUT = "PUBLIC_API_SEND_TRANSACTION_TIMEOUT"
	PUBLIC_API_RUN_QUERY_TIMEOUT        = "PUBLIC_API_RUN_QUERY_TIMEOUT"
	PUBLIC_API_REQUESTS_PER_SECOND      = "PUBLIC_API_REQUESTS_PER_SECOND"
	PUBLIC_API_REQUESTS_BURST           = "PUBLIC_API_REQUESTS_BURST"
	PUBLIC_API_RECEIPTS_CACHE_SIZE      = "PUBLIC_API_RECEIPTS_CACHE_SIZE"

	TRANSACTION_EXPIRATION_WINDOW      = "TRANSACTION_EXPIRATION_WINDOW"
	TRANSACTION_FUTURE_TIMESTAMP_GRACE = "TRANSACTION_FUTURE_TIMESTAMP_GRACE"

	VIRTUAL_MACHINE_REQUIRE_SIGNER_AUTH = "VIRTUAL_MACHINE_REQUIRE_SIGNER_AUTH"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	NTP_ENDPOINT            = "NTP_ENDPOINT"
	LOGGER_FULL_LOG         = "LOGGER_FULL_LOG"
)

const (
	STATE_STORAGE_ADAPTER_MEMORY  = "memory"
	STATE_STORAGE_ADAPTER_LEVELDB = "leveldb"
	STATE_STORAGE_ADAPTER_SQLITE  = "sqlite"
)
