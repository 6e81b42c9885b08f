// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/orbs-network/address-value-store/bootstrap"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/orbs-network/address-value-store/synchronization"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startNode(t *testing.T) string {
	node, err := bootstrap.NewNode(config.ForAcceptanceTests(), log.DefaultTestingLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		synchronization.ShutdownGracefully(node, 2*time.Second)
	})
	return fmt.Sprintf("http://127.0.0.1:%d", node.Port())
}

func runCli(endpoint string, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--endpoint", endpoint}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func keygen(t *testing.T) (string, *KeyFile) {
	path := filepath.Join(t.TempDir(), "keys.json")
	out, err := runCli("http://127.0.0.1:1", "keygen", "--out", path, "--format", "json")
	require.NoError(t, err)

	keyFile := &KeyFile{}
	require.NoError(t, json.Unmarshal([]byte(out), keyFile))
	return path, keyFile
}

func TestKeygen_WritesReadableKeyFile(t *testing.T) {
	path, printed := keygen(t)

	keyPair, address, err := ReadKeyFile(path)
	require.NoError(t, err)
	require.Equal(t, printed.Address, jsonapi.EncodeHex(address), "address should derive from the public key")
	require.Equal(t, printed.PublicKey, jsonapi.EncodeHex(keyPair.PublicKey()))
}

func TestReadKeyFile_Missing(t *testing.T) {
	_, _, err := ReadKeyFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	_, err := runCli("http://127.0.0.1:1", "hello", "World", "--format", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid format")
}

func TestGet_RejectsShortAddress(t *testing.T) {
	_, err := runCli("http://127.0.0.1:1", "get", "0x0102")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be 20 bytes")
}

func TestHello(t *testing.T) {
	endpoint := startNode(t)

	out, err := runCli(endpoint, "hello", "World")
	require.NoError(t, err)
	require.Equal(t, "Hello World\n", out)
}

func TestStoreThenGet_OwnAddress(t *testing.T) {
	endpoint := startNode(t)
	keysPath, keyFile := keygen(t)

	out, err := runCli(endpoint, "get", keyFile.Address)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "no value stored"), "unexpected output: %s", out)

	_, err = runCli(endpoint, "store", "17", "--keys", keysPath)
	require.NoError(t, err)

	out, err = runCli(endpoint, "get", keyFile.Address)
	require.NoError(t, err)
	require.Equal(t, "17\n", out)
}

func TestStoreForOtherAddressThenStatus(t *testing.T) {
	endpoint := startNode(t)
	keysPath, _ := keygen(t)
	other := jsonapi.EncodeHex(bytes.Repeat([]byte{0xab}, 20))

	out, err := runCli(endpoint, "store", other, "0", "--keys", keysPath, "--format", "json")
	require.NoError(t, err)
	res := &jsonapi.TransactionResponse{}
	require.NoError(t, json.Unmarshal([]byte(out), res))
	require.Equal(t, "TRANSACTION_STATUS_COMMITTED", res.TransactionStatus)

	out, err = runCli(endpoint, "status", res.TxHash)
	require.NoError(t, err)
	require.Contains(t, out, "TRANSACTION_STATUS_COMMITTED EXECUTION_RESULT_SUCCESS")

	out, err = runCli(endpoint, "get", other)
	require.NoError(t, err)
	require.Equal(t, "0\n", out, "a stored zero should be present")
}

func TestStore_RejectsNonNumericValue(t *testing.T) {
	keysPath, _ := keygen(t)

	_, err := runCli("http://127.0.0.1:1", "store", "seventeen", "--keys", keysPath)
	require.Error(t, err)
}
