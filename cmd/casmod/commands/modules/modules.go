// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"time"

	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/spf13/cobra"
)

var (
	flagOutputFormat string
	flagTimeout      time.Duration

	modulesCmd = &cobra.Command{
		Use:   "modules",
		Short: "Reload, unload or inspect the cache engine kernel modules",
		Long:  "Reload, unload or inspect the cache engine kernel modules on the configured target",
	}
)

func init() {
	common.FlagOutputFormat.SetVarP(modulesCmd, &flagOutputFormat, false)
	common.FlagTimeout.SetVarP(modulesCmd, &flagTimeout, false)

	modulesCmd.AddCommand(reloadCmd)
	modulesCmd.AddCommand(unloadCmd)
	modulesCmd.AddCommand(statusCmd)
}

func GetCmd() *cobra.Command {
	return modulesCmd
}
