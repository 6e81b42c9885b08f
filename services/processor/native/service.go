// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"fmt"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/services/processor"
	"github.com/orbs-network/address-value-store/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sort"
	"time"
)

var LogTag = log.Service("processor-native")

type contractInstance struct {
	info     types.ContractInfo
	receiver types.Contract
}

type service struct {
	logger     log.Logger
	sdkHandler processor.SdkCallHandler

	contracts map[primitives.ContractName]*contractInstance

	metrics *metrics
}

type metrics struct {
	processCallTime   *metric.Histogram
	deployedContracts *metric.Gauge
	contractErrors    *metric.Rate
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime:   m.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second),
		deployedContracts: m.NewGauge("Processor.Native.DeployedContracts.Count"),
		contractErrors:    m.NewRate("Processor.Native.ContractErrors.PerSecond"),
	}
}

func NewNativeProcessor(contracts map[primitives.ContractName]types.ContractInfo, parentLogger log.Logger, metricFactory metric.Factory) processor.Processor {
	s := &service{
		logger:    parentLogger.WithTags(LogTag),
		contracts: make(map[primitives.ContractName]*contractInstance),
		metrics:   getMetrics(metricFactory),
	}

	base := types.NewBaseContract(&stateSdk{s}, &addressSdk{s})
	for name, info := range contracts {
		s.contracts[name] = &contractInstance{
			info:     info,
			receiver: info.InitSingleton(base),
		}
	}
	s.metrics.deployedContracts.Update(int64(len(s.contracts)))

	return s
}

// runs once on system initialization (called by the virtual machine constructor)
func (s *service) RegisterContractSdkCallHandler(handler processor.SdkCallHandler) {
	s.sdkHandler = handler
}

func (s *service) DeployedContracts() []primitives.ContractName {
	res := make([]primitives.ContractName, 0, len(s.contracts))
	for name := range s.contracts {
		res = append(res, name)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func (s *service) ProcessCall(ctx context.Context, input *processor.ProcessCallInput) (*processor.ProcessCallOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	// retrieve code
	instance, found := s.contracts[input.ContractName]
	if !found {
		err := errors.Errorf("contract '%s' is not deployed", input.ContractName)
		return &processor.ProcessCallOutput{
			OutputArgumentArray: createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED,
		}, err
	}

	// get the method and check permissions
	method, err := retrieveMethod(instance, input)
	if err != nil {
		return &processor.ProcessCallOutput{
			OutputArgumentArray: createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	// execute
	logger.Info("processor executing contract", log.Stringable("contract", input.ContractName), log.Stringable("method", input.MethodName))

	contractCtx := &executionContext{
		Context:         ctx,
		id:              input.ContextId,
		permissionScope: instance.info.Permission,
	}
	functionNameForErrors := fmt.Sprintf("%s.%s", input.ContractName, input.MethodName)
	outputArgs, contractErr, err := processMethodCall(contractCtx, instance.receiver, method, input.InputArgumentArray, functionNameForErrors)
	if outputArgs == nil {
		outputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}
	if err != nil {
		logger.Info("contract execution failed", log.Stringable("contract", input.ContractName), log.Stringable("method", input.MethodName), log.Error(err))

		return &processor.ProcessCallOutput{
			OutputArgumentArray: createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	// result
	callResult := protocol.EXECUTION_RESULT_SUCCESS
	if contractErr != nil {
		logger.Info("contract returned error", log.Stringable("contract", input.ContractName), log.Stringable("method", input.MethodName), log.Error(contractErr))

		s.metrics.contractErrors.Measure(1)
		callResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
	}
	return &processor.ProcessCallOutput{
		OutputArgumentArray: outputArgs,
		CallResult:          callResult,
	}, contractErr
}

func retrieveMethod(instance *contractInstance, input *processor.ProcessCallInput) (types.MethodInfo, error) {
	method, found := instance.info.Method(input.MethodName)
	if !found {
		return types.MethodInfo{}, errors.Errorf("method '%s' not found on contract '%s'", input.MethodName, input.ContractName)
	}

	if !method.External && input.CallingPermissionScope != protocol.PERMISSION_SCOPE_SYSTEM {
		return types.MethodInfo{}, errors.Errorf("only system contracts can run method '%s'", input.MethodName)
	}

	if method.Access == protocol.ACCESS_SCOPE_READ_WRITE && input.AccessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return types.MethodInfo{}, errors.Errorf("method '%s' writes state and cannot run in a read only call", input.MethodName)
	}

	return method, nil
}

type executionContext struct {
	context.Context
	id              primitives.ExecutionContextId
	permissionScope protocol.ExecutionPermissionScope
}

func (c *executionContext) ExecutionContextId() primitives.ExecutionContextId {
	return c.id
}

func (c *executionContext) PermissionScope() protocol.ExecutionPermissionScope {
	return c.permissionScope
}
