// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestModifyFromJson(t *testing.T) {
	cfg := defaultProductionConfig()
	err := modifyFromJson(cfg, `{
		"virtual-chain-id": 1000,
		"state-storage-adapter": "leveldb",
		"PUBLIC_API_RUN_QUERY_TIMEOUT": "250ms",
		"virtual-machine-require-signer-auth": true
	}`)
	require.NoError(t, err)

	require.EqualValues(t, 1000, cfg.VirtualChainId())
	require.Equal(t, STATE_STORAGE_ADAPTER_LEVELDB, cfg.StateStorageAdapter())
	require.Equal(t, 250*time.Millisecond, cfg.PublicApiRunQueryTimeout())
	require.True(t, cfg.VirtualMachineRequireSignerAuth())
	require.Equal(t, 5*time.Second, cfg.PublicApiSendTransactionTimeout(), "untouched keys keep their preset value")
}

func TestModifyFromYaml(t *testing.T) {
	cfg := defaultProductionConfig()
	err := modifyFromYaml(cfg, `
state-storage-adapter: sqlite
state-storage-data-dir: /tmp/avs
public-api-requests-per-second: 50
transaction-expiration-window: 10m
profiling: true
`)
	require.NoError(t, err)

	require.Equal(t, STATE_STORAGE_ADAPTER_SQLITE, cfg.StateStorageAdapter())
	require.Equal(t, "/tmp/avs", cfg.StateStorageDataDir())
	require.EqualValues(t, 50, cfg.PublicApiRequestsPerSecond())
	require.Equal(t, 10*time.Minute, cfg.TransactionExpirationWindow())
	require.True(t, cfg.Profiling())
}

func TestModifyFromJson_RejectsNegativeNumbers(t *testing.T) {
	require.Error(t, modifyFromJson(defaultProductionConfig(), `{"virtual-chain-id": -1}`))
}

func TestModifyFromJson_RejectsInvalidJson(t *testing.T) {
	require.Error(t, modifyFromJson(defaultProductionConfig(), `{"virtual-chain-id": `))
}

func TestGetNodeConfigFromFiles_LaterFilesOverrideEarlierOnes(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.json")
	second := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(first, []byte(`{"virtual-chain-id": 7, "http-address": ":9000"}`), 0644))
	require.NoError(t, os.WriteFile(second, []byte("virtual-chain-id: 8\n"), 0644))

	cfg, err := GetNodeConfigFromFiles(FilesPaths{first, second}, "")
	require.NoError(t, err)

	require.EqualValues(t, 8, cfg.VirtualChainId())
	require.Equal(t, ":9000", cfg.HttpAddress())
}

func TestGetNodeConfigFromFiles_HttpAddressFlagWins(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "node.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"http-address": ":9000"}`), 0644))

	cfg, err := GetNodeConfigFromFiles(FilesPaths{file}, ":7000")
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.HttpAddress())
}

func TestGetNodeConfigFromFiles_MissingFile(t *testing.T) {
	_, err := GetNodeConfigFromFiles(FilesPaths{filepath.Join(t.TempDir(), "nope.json")}, "")
	require.Error(t, err)
}

func TestFilesPaths_CollectsRepeatedFlags(t *testing.T) {
	var paths FilesPaths
	require.NoError(t, paths.Set("a.json"))
	require.NoError(t, paths.Set("b.yaml"))

	require.Equal(t, FilesPaths{"a.json", "b.yaml"}, paths)
	require.Equal(t, "a.json,b.yaml", paths.String())
}
