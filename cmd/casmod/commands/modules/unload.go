// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"github.com/automa-saga/logx"
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/spf13/cobra"
)

var unloadCmd = &cobra.Command{
	Use:   "unload",
	Short: "Remove every cache engine module with rmmod",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := common.NewController(flagTimeout)
		if err != nil {
			return err
		}

		logx.As().Info().Msg("Unloading cache engine modules")
		ctrl.UnloadAllModules(cmd.Context())

		return common.PrintStatus(cmd, ctrl.Status(cmd.Context()), flagOutputFormat)
	},
}
