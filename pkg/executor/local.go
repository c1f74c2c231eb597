// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"github.com/joomcode/errorx"
	"golang.org/x/sys/unix"
)

// LocalExecutor runs commands on this host through `<shell> -c`.
//
// Each command runs in its own process group so that the whole group can be
// killed when the context is cancelled or the timeout expires.
type LocalExecutor struct {
	options
}

// NewLocal returns an executor that runs commands on this host.
func NewLocal(opts ...Option) *LocalExecutor {
	return &LocalExecutor{options: newOptions(opts)}
}

func (e *LocalExecutor) Name() string {
	return ModeLocal
}

func (e *LocalExecutor) Run(ctx context.Context, command string) (*Result, error) {
	if command == "" {
		return nil, errorx.IllegalArgument.New("command must not be empty")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.Command(e.shell, "-c", command)
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	start := time.Now()
	e.logger.Debug().
		Str(logFields.executor, e.Name()).
		Str(logFields.command, command).
		Msg("Executing command")

	if err := cmd.Start(); err != nil {
		return nil, ErrExecution.Wrap(err, "failed to start %s", e.shell).
			WithProperty(PropertyCommand, command)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		e.logger.Debug().
			Str(logFields.command, command).
			Int("pid", cmd.Process.Pid).
			Msg("Force terminating command")
		if kerr := unix.Kill(-cmd.Process.Pid, unix.SIGKILL); kerr != nil {
			e.logger.Warn().Err(kerr).Int("pid", cmd.Process.Pid).Msg("Error occurred while terminating the process group")
		}
		<-done
		return nil, timeoutError(ctx.Err(), e.Name(), command)
	}

	code, err := exitCode(err)
	if err != nil {
		return nil, ErrExecution.Wrap(err, "failed to execute command").
			WithProperty(PropertyCommand, command)
	}

	e.logger.Debug().
		Str(logFields.command, command).
		Int(logFields.exitCode, code).
		Dur(logFields.duration, time.Since(start)).
		Msg("Command finished")

	return &Result{ExitCode: code, Output: out.String()}, nil
}

// exitCode converts the error returned by exec.Cmd.Wait into a shell-style
// exit status. A process killed by a signal reports 128+signal.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1, err
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), nil
	}

	return exitErr.ExitCode(), nil
}
