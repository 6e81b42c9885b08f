// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"github.com/orbs-network/address-value-store/crypto/signature"
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/orbs-network/address-value-store/transaction"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"strconv"
	"time"
)

type StoreOptions struct {
	*RootOptions
	Keys string
}

func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store [ADDRESS] VALUE",
		Short: "Store a uint32 value for an address, signed with the key file",
		Long: `Store a uint32 value for an address in a signed transaction.

Without ADDRESS the value is stored for the address of the key file owner.

Example:
  avs store 0x3fced656ac4c4ab4a6f3e5c7c5b3f1e0d2a9b8c7 17 --keys keys.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Keys, "keys", "keys.json", "path of the key file created by keygen")

	return cmd
}

func store(cmd *cobra.Command, opts *StoreOptions, args []string) error {
	keyPair, ownAddress, err := ReadKeyFile(opts.Keys)
	if err != nil {
		return err
	}

	address := ownAddress
	if len(args) == 2 {
		if address, err = parseAddress(args[0]); err != nil {
			return err
		}
	}

	value, err := strconv.ParseUint(args[len(args)-1], 10, 32)
	if err != nil {
		return errors.Wrapf(err, "value %s is not a uint32", args[len(args)-1])
	}

	signedTransaction, err := signature.SignTransaction(&transaction.Transaction{
		VirtualChainId:     opts.virtualChainId(),
		Timestamp:          primitives.TimestampNano(time.Now().UnixNano()),
		SignerPublicKey:    keyPair.PublicKey(),
		ContractName:       CONTRACT_NAME,
		MethodName:         "store",
		InputArgumentArray: transaction.MustArgumentsFromNatives([]byte(address), uint32(value)),
	}, keyPair.PrivateKey())
	if err != nil {
		return err
	}

	res, err := opts.client().SendTransaction(cmd.Context(), signedTransaction)
	if err != nil {
		return err
	}
	if res.TransactionStatus != protocol.TRANSACTION_STATUS_COMMITTED.String() &&
		res.TransactionStatus != protocol.TRANSACTION_STATUS_PENDING.String() {
		return errors.Errorf("store was not accepted: %s %s", res.TransactionStatus, res.ErrorDetails)
	}
	if res.ExecutionResult != "" && res.ExecutionResult != protocol.EXECUTION_RESULT_SUCCESS.String() {
		return errors.Errorf("store failed: %s %s", res.ExecutionResult, res.ErrorDetails)
	}

	return printResult(cmd, opts.Format, res, "%s %s at block %d\ntx %s\n", res.TransactionStatus, jsonapi.EncodeHex(address), res.BlockHeight, res.TxHash)
}
