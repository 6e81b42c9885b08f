// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/address-value-store/instrumentation/logfields"
	"github.com/orbs-network/address-value-store/instrumentation/trace"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

func (s *service) RunQuery(parentCtx context.Context, input *RunQueryInput) (*RunQueryOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.RunQuery")
	start := time.Now()
	defer s.metrics.runQueryTime.RecordSince(start)

	if input == nil || input.Query == nil {
		err := errors.Errorf("client request is nil")
		s.logger.Info("run query received missing input", log.Error(err))
		return nil, err
	}

	query := input.Query
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Contract(query.ContractName), logfields.Method(query.MethodName))

	if _, err := validateVirtualChain(s.config, query.VirtualChainId); err != nil {
		logger.Info("run query received input failed", log.Error(err))
		return &RunQueryOutput{RequestStatus: protocol.REQUEST_STATUS_BAD_REQUEST}, err
	}

	if !s.limiter.Allow() {
		s.metrics.totalRequestsErrCongestion.Inc()
		logger.Info("run query rejected due to congestion")
		return &RunQueryOutput{RequestStatus: protocol.REQUEST_STATUS_CONGESTION}, errors.New("too many requests")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.PublicApiRunQueryTimeout())
	defer cancel()

	result, err := s.runQueryWithDeadline(ctx, query)
	if err != nil {
		logger.Info("run query failed", log.Error(err))
		return &RunQueryOutput{RequestStatus: protocol.REQUEST_STATUS_SYSTEM_ERROR}, err
	}

	return &RunQueryOutput{
		RequestStatus:  translateExecutionStatusToRequestStatus(result.ExecutionResult),
		QueryResult:    result,
		BlockHeight:    result.BlockHeight,
		BlockTimestamp: result.BlockTimestamp,
	}, nil
}

type queryResponse struct {
	result *transaction.QueryResult
	err    error
}

func (s *service) runQueryWithDeadline(ctx context.Context, query *transaction.Query) (*transaction.QueryResult, error) {
	responses := make(chan queryResponse, 1)
	govnr.Once(logfields.GovnrErrorer(s.logger), func() {
		result, err := s.virtualMachine.RunQuery(ctx, query)
		responses <- queryResponse{result, err}
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "timed out running query")
	case response := <-responses:
		return response.result, response.err
	}
}
