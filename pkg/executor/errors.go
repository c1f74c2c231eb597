// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"github.com/joomcode/errorx"
)

var (
	ErrNamespace = errorx.NewNamespace("executor")

	ErrExecution  = ErrNamespace.NewType("execution_failed")
	ErrConnection = ErrNamespace.NewType("connection_failed")
	ErrTimeout    = ErrNamespace.NewType("timeout", errorx.Timeout())

	PropertyCommand  = errorx.RegisterProperty("command")
	PropertyHost     = errorx.RegisterProperty("host")
	PropertyExecutor = errorx.RegisterProperty("executor")
)

func timeoutError(err error, name, command string) error {
	return ErrTimeout.Wrap(err, "command did not complete in time").
		WithProperty(PropertyCommand, command).
		WithProperty(PropertyExecutor, name)
}
