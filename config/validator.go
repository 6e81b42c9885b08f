// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/pkg/errors"
	"time"
)

func ValidateNodeConfig(cfg NodeConfig) error {
	switch cfg.StateStorageAdapter() {
	case STATE_STORAGE_ADAPTER_MEMORY:
	case STATE_STORAGE_ADAPTER_LEVELDB, STATE_STORAGE_ADAPTER_SQLITE:
		if cfg.StateStorageDataDir() == "" {
			return errors.Errorf("%s must be set when %s is %s", STATE_STORAGE_DATA_DIR, STATE_STORAGE_ADAPTER, cfg.StateStorageAdapter())
		}
	default:
		return errors.Errorf("unknown %s: %q", STATE_STORAGE_ADAPTER, cfg.StateStorageAdapter())
	}

	if err := requirePositive(PUBLIC_API_SEND_TRANSACTION_TIMEOUT, cfg.PublicApiSendTransactionTimeout()); err != nil {
		return err
	}
	if err := requirePositive(PUBLIC_API_RUN_QUERY_TIMEOUT, cfg.PublicApiRunQueryTimeout()); err != nil {
		return err
	}
	if err := requirePositive(TRANSACTION_EXPIRATION_WINDOW, cfg.TransactionExpirationWindow()); err != nil {
		return err
	}
	if err := requirePositive(METRICS_REPORT_INTERVAL, cfg.MetricsReportInterval()); err != nil {
		return err
	}

	if cfg.PublicApiRequestsPerSecond() == 0 || cfg.PublicApiRequestsBurst() == 0 {
		return errors.Errorf("%s and %s must be greater than zero", PUBLIC_API_REQUESTS_PER_SECOND, PUBLIC_API_REQUESTS_BURST)
	}
	if cfg.PublicApiReceiptsCacheSize() == 0 {
		return errors.Errorf("%s must be greater than zero", PUBLIC_API_RECEIPTS_CACHE_SIZE)
	}

	return nil
}

func requirePositive(key string, d time.Duration) error {
	if d <= 0 {
		return errors.Errorf("%s must be positive, got %s", key, d)
	}
	return nil
}
