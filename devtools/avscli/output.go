// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package avscli

import (
	"encoding/json"
	"fmt"
	"github.com/spf13/cobra"
)

func printResult(cmd *cobra.Command, format string, result interface{}, textFormat string, textArgs ...interface{}) error {
	if format == "json" {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), textFormat, textArgs...)
	return err
}
