// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

// Package avscli is the command line client of an address value store node.
package avscli

import (
	"github.com/orbs-network/address-value-store/jsonapi"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"time"
)

const CONTRACT_NAME = "AddressValueStore"

var ValidFormats = []string{"text", "json"}

type RootOptions struct {
	Endpoint       string
	Timeout        time.Duration
	VirtualChainId uint32
	Format         string
}

func (o *RootOptions) client() *jsonapi.Client {
	return jsonapi.NewClient(o.Endpoint, o.Timeout)
}

func (o *RootOptions) virtualChainId() primitives.VirtualChainId {
	return primitives.VirtualChainId(o.VirtualChainId)
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "avs",
		Short: "Talk to an address value store node",
		Long:  "Generate keys, store values for addresses and read them back from an address value store node.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return errors.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "http://localhost:8080", "node http endpoint")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "http request timeout")
	cmd.PersistentFlags().Uint32Var(&opts.VirtualChainId, "vchain", 42, "virtual chain id of the node")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewHelloCommand(opts))
	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
