// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"github.com/automa-saga/logx"
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Unload and load again every cache engine module",
	Long: "Unloads every cache engine module with modprobe -r and loads them again. " +
		"Failures are logged and do not stop the sequence; the resulting status is printed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := common.NewController(flagTimeout)
		if err != nil {
			return err
		}

		logx.As().Info().Msg("Reloading cache engine modules")
		ctrl.ReloadAllModules(cmd.Context())

		st := ctrl.Status(cmd.Context())
		logx.As().Info().
			Bool("ready", st.Ready()).
			Msg("Cache engine modules reloaded")
		return common.PrintStatus(cmd, st, flagOutputFormat)
	},
}
