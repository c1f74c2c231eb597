// SPDX-License-Identifier: Apache-2.0

package device

import (
	"time"

	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/spf13/cobra"
)

var (
	flagTimeout time.Duration

	deviceCmd = &cobra.Command{
		Use:   "device",
		Short: "Probe devices created by the cache engine",
	}
)

func init() {
	common.FlagTimeout.SetVarP(deviceCmd, &flagTimeout, false)

	deviceCmd.AddCommand(checkCmd)
}

func GetCmd() *cobra.Command {
	return deviceCmd
}
