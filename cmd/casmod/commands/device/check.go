// SPDX-License-Identifier: Apache-2.0

package device

import (
	"fmt"
	"path"

	"github.com/automa-saga/logx"
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/open-cas/casmod/internal/cas"
	"github.com/spf13/cobra"
)

var (
	flagExported string

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check that the management device (or an exported object) exists",
		Long: "Checks that " + cas.ManagementDevicePath + " exists as a character device on the target. " +
			"With --exported, checks the block device of the named exported object instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := common.NewController(flagTimeout)
			if err != nil {
				return err
			}

			if flagExported != "" {
				device := path.Join("/dev", flagExported)
				if !ctrl.IsExportedObjectPresent(cmd.Context(), flagExported) {
					return cas.ErrDeviceNotPresent.New("exported object %s is not present", device).
						WithProperty(cas.PropertyDevice, device)
				}
				logx.As().Info().Str("device", device).Msg("Exported object is present")
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s present\n", device)
				return nil
			}

			if !ctrl.IsManagementDevicePresent(cmd.Context()) {
				return cas.ErrDeviceNotPresent.New("management device %s is not present", cas.ManagementDevicePath).
					WithProperty(cas.PropertyDevice, cas.ManagementDevicePath)
			}
			logx.As().Info().Str("device", cas.ManagementDevicePath).Msg("Management device is present")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s present\n", cas.ManagementDevicePath)
			return nil
		},
	}
)

func init() {
	common.FlagExported.SetVar(checkCmd, &flagExported, false)
}
