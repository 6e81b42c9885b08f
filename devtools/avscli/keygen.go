// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	orbsClient "github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type KeygenOptions struct {
	*RootOptions
	Out string
}

func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeygenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new Ed25519 key pair and its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := orbsClient.CreateAccount()
			if err != nil {
				return errors.Wrap(err, "could not generate key pair")
			}
			keyFile := NewKeyFile(account)
			if err := WriteKeyFile(opts.Out, keyFile); err != nil {
				return err
			}
			return printResult(cmd, opts.Format, keyFile, "keys written to %s\naddress %s\n", opts.Out, keyFile.Address)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "keys.json", "path of the key file to write")

	return cmd
}
