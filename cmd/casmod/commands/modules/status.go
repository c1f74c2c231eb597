// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which cache engine modules are loaded and whether the management device exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := common.NewController(flagTimeout)
		if err != nil {
			return err
		}

		return common.PrintStatus(cmd, ctrl.Status(cmd.Context()), flagOutputFormat)
	},
}
