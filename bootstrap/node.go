// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/address-value-store/bootstrap/httpserver"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
	"sync"
)

type Node struct {
	logger           log.Logger
	httpServer       httpserver.HttpServer
	logic            NodeLogic
	closePersistence closeFunc
	cancel           context.CancelFunc

	shutdownOnce sync.Once
	closed       chan struct{}
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) (*Node, error) {
	ctx, cancel := context.WithCancel(context.Background())

	nodeLogger := logger.WithTags(logfields.VirtualChainId(nodeConfig.VirtualChainId()))
	metricRegistry := metric.NewRegistry()

	statePersistence, closePersistence, err := NewStatePersistence(nodeConfig, nodeLogger, metricRegistry)
	if err != nil {
		cancel()
		return nil, err
	}

	nodeLogic, err := NewNodeLogic(ctx, statePersistence, nodeLogger, metricRegistry, nodeConfig)
	if err != nil {
		cancel()
		closeOrLog(nodeLogger, closePersistence)
		return nil, err
	}

	httpServer, err := httpserver.NewHttpServer(nodeConfig, nodeLogger, nodeLogic.PublicApi(), metricRegistry)
	if err != nil {
		cancel()
		closeOrLog(nodeLogger, closePersistence)
		return nil, err
	}

	return &Node{
		logger:           nodeLogger,
		httpServer:       httpServer,
		logic:            nodeLogic,
		closePersistence: closePersistence,
		cancel:           cancel,
		closed:           make(chan struct{}),
	}, nil
}

// ephemeral port support, HTTP_ADDRESS may end with :0
func (n *Node) Port() int {
	return n.httpServer.Port()
}

// stops accepting requests, stops background reporters, then releases state persistence
func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.shutdownOnce.Do(func() {
		n.logger.Info("shutting down")
		n.httpServer.GracefulShutdown(shutdownContext)
		n.cancel()
		n.logic.WaitUntilShutdown(shutdownContext)
		closeOrLog(n.logger, n.closePersistence)
		close(n.closed)
	})
}

func (n *Node) WaitUntilShutdown(shutdownContext context.Context) {
	select {
	case <-n.closed:
	case <-shutdownContext.Done():
	}
}

func closeOrLog(logger log.Logger, closer closeFunc) {
	if err := closer(); err != nil {
		logger.Error("failed to close state persistence", log.Error(err))
	}
}
