// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"github.com/orbs-network/address-value-store/crypto/digest"
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"strconv"
)

func NewHelloCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hello NAME",
		Short: "Ask the contract to greet NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runQuery(cmd, opts, "hello", args[0])
			if err != nil {
				return err
			}
			if len(res.OutputArguments) != 2 {
				return errors.Errorf("unexpected hello output %v", res.OutputArguments)
			}
			return printResult(cmd, opts.Format, res, "%s %s\n", res.OutputArguments[0].Value, res.OutputArguments[1].Value)
		},
	}
}

func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ADDRESS",
		Short: "Read the value stored for a hex encoded 20 byte address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			res, err := runQuery(cmd, opts, "get", []byte(address))
			if err != nil {
				return err
			}

			switch len(res.OutputArguments) {
			case 0:
				return printResult(cmd, opts.Format, res, "no value stored for %s\n", jsonapi.EncodeHex(address))
			case 1:
				value, err := strconv.ParseUint(res.OutputArguments[0].Value, 10, 32)
				if err != nil {
					return errors.Wrapf(err, "unexpected get output %v", res.OutputArguments)
				}
				return printResult(cmd, opts.Format, res, "%d\n", value)
			}
			return errors.Errorf("unexpected get output %v", res.OutputArguments)
		},
	}
}

func runQuery(cmd *cobra.Command, opts *RootOptions, method string, args ...interface{}) (*jsonapi.QueryResponse, error) {
	argumentArray, err := transaction.ArgumentsFromNatives(args...)
	if err != nil {
		return nil, err
	}

	res, err := opts.client().RunQuery(cmd.Context(), &transaction.Query{
		VirtualChainId:     opts.virtualChainId(),
		ContractName:       CONTRACT_NAME,
		MethodName:         primitives.MethodName(method),
		InputArgumentArray: argumentArray,
	})
	if err != nil {
		return nil, err
	}

	if res.RequestStatus != protocol.REQUEST_STATUS_COMPLETED.String() || res.ExecutionResult != protocol.EXECUTION_RESULT_SUCCESS.String() {
		return nil, errors.Errorf("query %s failed: %s %s %s", method, res.RequestStatus, res.ExecutionResult, res.ErrorDetails)
	}
	return res, nil
}

func parseAddress(s string) (primitives.ClientAddress, error) {
	address, err := jsonapi.DecodeHex(s)
	if err != nil {
		return nil, errors.Wrapf(err, "address %s is not hex", s)
	}
	if len(address) != digest.CLIENT_ADDRESS_SIZE_BYTES {
		return nil, errors.Errorf("address %s must be %d bytes, got %d", s, digest.CLIENT_ADDRESS_SIZE_BYTES, len(address))
	}
	return address, nil
}
