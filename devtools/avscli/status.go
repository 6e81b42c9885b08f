// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status TXHASH",
		Short: "Show the status of a previously sent transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txHash, err := jsonapi.DecodeHex(args[0])
			if err != nil {
				return errors.Wrapf(err, "tx hash %s is not hex", args[0])
			}

			res, err := opts.client().GetTransactionStatus(cmd.Context(), opts.virtualChainId(), txHash)
			if err != nil {
				return err
			}
			return printResult(cmd, opts.Format, res, "%s %s at block %d\n", res.TransactionStatus, res.ExecutionResult, res.BlockHeight)
		},
	}
}
