// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"time"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) Modify(newValues ...NodeConfigKeyValue) mutableNodeConfig {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
	return c
}

func (c *config) VirtualChainId() primitives.VirtualChainId {
	return primitives.VirtualChainId(c.kv[VIRTUAL_CHAIN_ID].Uint32Value)
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) Profiling() bool {
	return c.kv[PROFILING].BoolValue
}

func (c *config) StateStorageAdapter() string {
	return c.kv[STATE_STORAGE_ADAPTER].StringValue
}

func (c *config) StateStorageDataDir() string {
	return c.kv[STATE_STORAGE_DATA_DIR].StringValue
}

func (c *config) StateStorageSnapshotPath() string {
	return c.kv[STATE_STORAGE_SNAPSHOT_PATH].StringValue
}

func (c *config) PublicApiSendTransactionTimeout() time.Duration {
	return c.kv[PUBLIC_API_SEND_TRANSACTION_TIMEOUT].DurationValue
}

func (c *config) PublicApiRunQueryTimeout() time.Duration {
	return c.kv[PUBLIC_API_RUN_QUERY_TIMEOUT].DurationValue
}

func (c *config) PublicApiRequestsPerSecond() uint32 {
	return c.kv[PUBLIC_API_REQUESTS_PER_SECOND].Uint32Value
}

func (c *config) PublicApiRequestsBurst() uint32 {
	return c.kv[PUBLIC_API_REQUESTS_BURST].Uint32Value
}

func (c *config) PublicApiReceiptsCacheSize() uint32 {
	return c.kv[PUBLIC_API_RECEIPTS_CACHE_SIZE].Uint32Value
}

func (c *config) TransactionExpirationWindow() time.Duration {
	return c.kv[TRANSACTION_EXPIRATION_WINDOW].DurationValue
}

func (c *config) TransactionFutureTimestampGrace() time.Duration {
	return c.kv[TRANSACTION_FUTURE_TIMESTAMP_GRACE].DurationValue
}

func (c *config) VirtualMachineRequireSignerAuth() bool {
	return c.kv[VIRTUAL_MACHINE_REQUIRE_SIGNER_AUTH].BoolValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) NTPEndpoint() string {
	return c.kv[NTP_ENDPOINT].StringValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}
