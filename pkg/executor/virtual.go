// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joomcode/errorx"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualExecutor interprets commands with an embedded POSIX shell instead of
// spawning one. Builtins such as `test` are evaluated in-process; anything
// else is resolved through PATH and executed by the interpreter.
type VirtualExecutor struct {
	options
	dir string
}

// NewVirtual returns an executor backed by the mvdan.cc/sh interpreter.
func NewVirtual(opts ...Option) *VirtualExecutor {
	dir, _ := os.Getwd()
	return &VirtualExecutor{options: newOptions(opts), dir: dir}
}

func (e *VirtualExecutor) Name() string {
	return ModeVirtual
}

func (e *VirtualExecutor) Run(ctx context.Context, command string) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errorx.IllegalArgument.New("command must not be empty")
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse command").
			WithProperty(PropertyCommand, command)
	}

	var out bytes.Buffer
	runner, err := interp.New(
		interp.StdIO(nil, &out, &out),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.Dir(e.dir),
	)
	if err != nil {
		return nil, ErrExecution.Wrap(err, "failed to create shell interpreter")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	e.logger.Debug().
		Str(logFields.executor, e.Name()).
		Str(logFields.command, command).
		Msg("Interpreting command")

	code := 0
	err = runner.Run(ctx, prog)
	if ctx.Err() != nil {
		return nil, timeoutError(ctx.Err(), e.Name(), command)
	}
	if err != nil {
		var status interp.ExitStatus
		switch {
		case errors.As(err, &status):
			code = int(status)
		default:
			return nil, ErrExecution.Wrap(err, "failed to interpret command").
				WithProperty(PropertyCommand, command)
		}
	}

	e.logger.Debug().
		Str(logFields.command, command).
		Int(logFields.exitCode, code).
		Dur(logFields.duration, time.Since(start)).
		Msg("Command finished")

	return &Result{ExitCode: code, Output: out.String()}, nil
}
