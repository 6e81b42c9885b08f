// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package acceptance

import (
	"context"
	"fmt"
	"github.com/orbs-network/address-value-store/bootstrap"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/crypto/keys"
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/jsonapi"
	testKeys "github.com/orbs-network/address-value-store/test/keys"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"strconv"
	"testing"
	"time"
)

const CONTRACT_NAME = "AddressValueStore"

type NodeHarness struct {
	tb     testing.TB
	config config.NodeConfig
	node   *bootstrap.Node
	client *jsonapi.Client
}

type harnessBuilder struct {
	overrides []config.NodeConfigKeyValue
}

func newHarness() *harnessBuilder {
	return &harnessBuilder{}
}

func (b *harnessBuilder) With(key string, value config.NodeConfigValue) *harnessBuilder {
	b.overrides = append(b.overrides, config.NodeConfigKeyValue{Key: key, Value: value})
	return b
}

func (b *harnessBuilder) WithStateAdapter(adapterName string, dataDir string, snapshotPath string) *harnessBuilder {
	return b.
		With(config.STATE_STORAGE_ADAPTER, config.NodeConfigValue{StringValue: adapterName}).
		With(config.STATE_STORAGE_DATA_DIR, config.NodeConfigValue{StringValue: dataDir}).
		With(config.STATE_STORAGE_SNAPSHOT_PATH, config.NodeConfigValue{StringValue: snapshotPath})
}

func (b *harnessBuilder) Start(tb testing.TB, f func(tb testing.TB, ctx context.Context, network *NodeHarness)) {
	cfg := config.ForAcceptanceTests().Modify(b.overrides...)
	require.NoError(tb, config.ValidateNodeConfig(cfg))

	h := &NodeHarness{tb: tb, config: cfg}
	h.start()
	defer h.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	f(tb, ctx, h)
}

func (h *NodeHarness) start() {
	node, err := bootstrap.NewNode(h.config, log.DefaultTestingLogger(h.tb))
	require.NoError(h.tb, err, "node should start")
	h.node = node
	h.client = jsonapi.NewClient(fmt.Sprintf("http://127.0.0.1:%d", node.Port()), 5*time.Second)
}

func (h *NodeHarness) shutdown() {
	if h.node == nil {
		return
	}
	// keep-alive connections of the client would hold the http server shutdown until it times out
	h.client.CloseIdleConnections()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.node.GracefulShutdown(shutdownCtx)
	h.node.WaitUntilShutdown(shutdownCtx)
	h.node = nil
}

// stops the node and starts a new one on the same configuration and storage
func (h *NodeHarness) Restart() {
	h.shutdown()
	h.start()
}

func (h *NodeHarness) Client() *jsonapi.Client {
	return h.client
}

func (h *NodeHarness) Hello(ctx context.Context, name string) ([]string, error) {
	res, err := h.query(ctx, "hello", name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(res.OutputArguments))
	for _, arg := range res.OutputArguments {
		out = append(out, arg.Value)
	}
	return out, nil
}

func (h *NodeHarness) Get(ctx context.Context, address primitives.ClientAddress) (uint32, bool, error) {
	res, err := h.query(ctx, "get", []byte(address))
	if err != nil {
		return 0, false, err
	}
	switch len(res.OutputArguments) {
	case 0:
		return 0, false, nil
	case 1:
		value, err := strconv.ParseUint(res.OutputArguments[0].Value, 10, 32)
		return uint32(value), true, err
	}
	return 0, false, errors.Errorf("unexpected get output %v", res.OutputArguments)
}

func (h *NodeHarness) RequireGet(ctx context.Context, address primitives.ClientAddress) (uint32, bool) {
	value, found, err := h.Get(ctx, address)
	require.NoError(h.tb, err)
	return value, found
}

func (h *NodeHarness) Store(ctx context.Context, signer *keys.Ed25519KeyPair, address primitives.ClientAddress, value uint32) (*jsonapi.TransactionResponse, error) {
	return h.client.SendTransaction(ctx, SignedStore(h.tb, signer, address, value))
}

func (h *NodeHarness) RequireStore(ctx context.Context, signer *keys.Ed25519KeyPair, address primitives.ClientAddress, value uint32) *jsonapi.TransactionResponse {
	res, err := h.Store(ctx, signer, address, value)
	require.NoError(h.tb, err)
	require.Equal(h.tb, "TRANSACTION_STATUS_COMMITTED", res.TransactionStatus, "store should commit: %s", res.ErrorDetails)
	require.Equal(h.tb, "EXECUTION_RESULT_SUCCESS", res.ExecutionResult, "store should succeed: %s", res.ErrorDetails)
	return res
}

func (h *NodeHarness) query(ctx context.Context, method string, args ...interface{}) (*jsonapi.QueryResponse, error) {
	res, err := h.client.RunQuery(ctx, &transaction.Query{
		VirtualChainId:     h.config.VirtualChainId(),
		ContractName:       CONTRACT_NAME,
		MethodName:         primitives.MethodName(method),
		InputArgumentArray: transaction.MustArgumentsFromNatives(args...),
	})
	if err != nil {
		return nil, err
	}
	if res.ExecutionResult != "EXECUTION_RESULT_SUCCESS" {
		return nil, errors.Errorf("query %s failed: %s %s %s", method, res.RequestStatus, res.ExecutionResult, res.ErrorDetails)
	}
	return res, nil
}

func SignedStore(tb testing.TB, signer *keys.Ed25519KeyPair, address primitives.ClientAddress, value uint32) *transaction.SignedTransaction {
	signed, err := signature.SignTransaction(&transaction.Transaction{
		VirtualChainId:     42,
		Timestamp:          primitives.TimestampNano(time.Now().UnixNano()),
		SignerPublicKey:    signer.PublicKey(),
		ContractName:       CONTRACT_NAME,
		MethodName:         "store",
		InputArgumentArray: transaction.MustArgumentsFromNatives([]byte(address), value),
	}, signer.PrivateKey())
	require.NoError(tb, err)
	return signed
}

// a test user is a deterministic key pair and the address derived from it
func User(index int) (*keys.Ed25519KeyPair, primitives.ClientAddress) {
	keyPair := testKeys.Ed25519KeyPairForTests(index)
	address, err := digest.CalcClientAddressOfEd25519PublicKey(keyPair.PublicKey())
	if err != nil {
		panic(err.Error())
	}
	return keyPair, address
}
