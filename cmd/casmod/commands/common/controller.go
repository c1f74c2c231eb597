// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/automa-saga/logx"
	"github.com/open-cas/casmod/internal/cas"
	"github.com/open-cas/casmod/internal/config"
	"github.com/spf13/cobra"
)

// NewController builds the controller for the loaded configuration. A
// non-zero timeout replaces executor.timeout.
// use var to allow mocking in tests
var NewController = func(timeout time.Duration) (*cas.Controller, error) {
	cfg := config.Get()
	if timeout > 0 {
		cfg.Executor.Timeout = timeout
	}

	logx.As().Debug().
		Str("mode", cfg.Executor.Mode).
		Bool("sudo", cfg.Executor.Sudo).
		Dur("timeout", cfg.Executor.Timeout).
		Msg("Creating controller")

	return cas.NewControllerFromConfig(cfg, logx.As())
}

// PrintStatus writes st to the command output in the requested format.
func PrintStatus(cmd *cobra.Command, st cas.Status, format string) error {
	output, err := st.Format(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(output, "\n"))
	return err
}
