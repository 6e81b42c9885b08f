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

type NodeConfig interface {
	// shared
	VirtualChainId() primitives.VirtualChainId

	// http server
	HttpAddress() string
	Profiling() bool

	// state storage
	StateStorageAdapter() string
	StateStorageDataDir() string
	StateStorageSnapshotPath() string

	// public api
	PublicApiSendTransactionTimeout() time.Duration
	PublicApiRunQueryTimeout() time.Duration
	PublicApiRequestsPerSecond() uint32
	PublicApiRequestsBurst() uint32
	PublicApiReceiptsCacheSize() uint32
	TransactionExpirationWindow() time.Duration
	TransactionFutureTimestampGrace() time.Duration

	// virtual machine
	VirtualMachineRequireSignerAuth() bool

	// instrumentation
	MetricsReportInterval() time.Duration
	NTPEndpoint() string
	LoggerFullLog() bool
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Modify(newValues ...NodeConfigKeyValue) mutableNodeConfig
}

type HttpServerConfig interface {
	HttpAddress() string
	Profiling() bool
	VirtualChainId() primitives.VirtualChainId
	StateStorageAdapter() string
}

type StateStorageConfig interface {
	StateStorageAdapter() string
	StateStorageDataDir() string
	StateStorageSnapshotPath() string
}

type PublicApiConfig interface {
	VirtualChainId() primitives.VirtualChainId
	PublicApiSendTransactionTimeout() time.Duration
	PublicApiRunQueryTimeout() time.Duration
	PublicApiRequestsPerSecond() uint32
	PublicApiRequestsBurst() uint32
	PublicApiReceiptsCacheSize() uint32
	TransactionExpirationWindow() time.Duration
	TransactionFutureTimestampGrace() time.Duration
}

type VirtualMachineConfig interface {
	VirtualMachineRequireSignerAuth() bool
	TransactionExpirationWindow() time.Duration
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}
