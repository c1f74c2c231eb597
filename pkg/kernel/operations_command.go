// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"context"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/pkg/executor"
)

// LoadCommand is the command line used to insert a module.
func LoadCommand(name string) string {
	return "modprobe " + name
}

// UnloadCommand is the command line used to remove a module with strategy.
func UnloadCommand(name string, strategy RemovalStrategy) string {
	if strategy == RemoveRmmod {
		return "rmmod " + name
	}
	return "modprobe -r " + name
}

// IsLoadedCommand exits 0 when the module is listed by lsmod and 1 when it is not.
func IsLoadedCommand(name string) string {
	return "lsmod | grep -qE '^" + name + "[[:space:]]'"
}

// commandOperations drives the userspace module tools through an executor.
type commandOperations struct {
	exec executor.Executor
}

func (c *commandOperations) load(ctx context.Context, name string) error {
	res, err := c.exec.Run(ctx, LoadCommand(name))
	if err != nil {
		return ErrLoadFailed.Wrap(err, "failed to run modprobe for %s", name).
			WithProperty(PropertyModule, name)
	}
	if !res.Succeeded() {
		return withResult(ErrLoadFailed.New("modprobe failed to load %s", name), res).
			WithProperty(PropertyModule, name)
	}
	return nil
}

func (c *commandOperations) unload(ctx context.Context, name string, strategy RemovalStrategy) error {
	res, err := c.exec.Run(ctx, UnloadCommand(name, strategy))
	if err != nil {
		return ErrUnloadFailed.Wrap(err, "failed to run %s for %s", strategy, name).
			WithProperty(PropertyModule, name).
			WithProperty(PropertyStrategy, strategy.String())
	}
	if !res.Succeeded() {
		return withResult(ErrUnloadFailed.New("%s failed to unload %s", strategy, name), res).
			WithProperty(PropertyModule, name).
			WithProperty(PropertyStrategy, strategy.String())
	}
	return nil
}

func (c *commandOperations) isLoaded(ctx context.Context, name string) (bool, error) {
	res, err := c.exec.Run(ctx, IsLoadedCommand(name))
	if err != nil {
		return false, ErrQueryFailed.Wrap(err, "failed to query state of %s", name).
			WithProperty(PropertyModule, name)
	}

	switch res.ExitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, withResult(ErrQueryFailed.New("failed to query state of %s", name), res).
			WithProperty(PropertyModule, name)
	}
}

func withResult(err *errorx.Error, res *executor.Result) *errorx.Error {
	return err.
		WithProperty(PropertyExitCode, res.ExitCode).
		WithProperty(PropertyOutput, strings.TrimSpace(res.Output))
}
