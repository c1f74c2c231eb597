// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/open-cas/casmod/cmd/casmod/commands/device"
	"github.com/open-cas/casmod/cmd/casmod/commands/modules"
	"github.com/open-cas/casmod/cmd/casmod/commands/version"
	"github.com/open-cas/casmod/internal/config"
	"github.com/open-cas/casmod/internal/doctor"
	"github.com/spf13/cobra"
)

// examples:
// ./casmod modules reload
// ./casmod modules status -o json
// ./casmod device check --exported cas1-1
// ./casmod --config ./casmod.yaml modules unload

// rootCmd represents the base command when called without any subcommands
var (
	// Used for flags.
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:          "casmod",
		Short:        "Manage the cache engine kernel modules on a test target",
		Long:         "casmod - reload, unload and probe the cache engine kernel modules on the local host or a remote target",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				return version.PrintVersion(cmd, flagOutputFormat)
			}

			return cmd.Help()
		},
	}
)

func init() {
	common.FlagConfig.SetVarP(rootCmd, &flagConfig, false)

	// support '--version', '-v' to show version information
	common.FlagVersion.SetVarP(rootCmd, &flagVersion, false)
	common.FlagOutputFormat.SetVarP(rootCmd, &flagOutputFormat, false)

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(modules.GetCmd())
	rootCmd.AddCommand(device.GetCmd())
	rootCmd.AddCommand(version.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.Decorate(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	var err error
	err = config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	err = config.InitLogging(config.Get().Log)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
