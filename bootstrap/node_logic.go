// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/address-value-store/config"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/processor/native"
	"github.com/orbs-network/address-value-store/services/processor/native/repository"
	"github.com/orbs-network/address-value-store/services/publicapi"
	"github.com/orbs-network/address-value-store/services/statestorage"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/address-value-store/services/virtualmachine"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type NodeLogic interface {
	govnr.ShutdownWaiter
	PublicApi() publicapi.PublicApi
}

type nodeLogic struct {
	govnr.TreeSupervisor
	publicApi publicapi.PublicApi
}

func NewNodeLogic(
	ctx context.Context,
	statePersistence adapter.StatePersistence,
	logger log.Logger,
	metricRegistry metric.Registry,
	nodeConfig config.NodeConfig,
) (NodeLogic, error) {

	stateStorageService, err := statestorage.NewStateStorage(statePersistence, logger, metricRegistry)
	if err != nil {
		return nil, err
	}

	processorService := native.NewNativeProcessor(repository.Contracts, logger, metricRegistry)
	virtualMachineService := virtualmachine.NewVirtualMachine(stateStorageService, processorService, nodeConfig, logger, metricRegistry)
	if err := virtualMachineService.InitializeContracts(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to initialize contracts")
	}
	publicApiService := publicapi.NewPublicApi(nodeConfig, virtualMachineService, logger, metricRegistry)

	version := config.GetVersion()
	metricRegistry.NewText("Version.Semantic", version.Semantic)
	metricRegistry.NewText("Version.Commit", version.Commit)
	metricRegistry.NewText("StateStorage.Adapter", nodeConfig.StateStorageAdapter())

	logic := &nodeLogic{
		publicApi: publicApiService,
	}

	logic.Supervise(metric.NewRuntimeReporter(ctx, metricRegistry, logger))
	logic.Supervise(metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger))
	if ntpEndpoint := nodeConfig.NTPEndpoint(); ntpEndpoint != "" {
		logic.Supervise(metric.NewNtpReporter(ctx, metricRegistry, logger, ntpEndpoint))
	}

	return logic, nil
}

func (n *nodeLogic) PublicApi() publicapi.PublicApi {
	return n.publicApi
}
