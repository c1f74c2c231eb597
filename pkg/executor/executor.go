// SPDX-License-Identifier: Apache-2.0

// Package executor runs shell command lines on the system under test and
// reports their exit code and combined output.
//
// A non-zero exit code is a normal outcome, not an error. Errors are reserved
// for failures to run the command at all: a broken transport, an unparsable
// command line or an exceeded timeout.
package executor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	ModeLocal   = "local"
	ModeVirtual = "virtual"
	ModeSSH     = "ssh"

	DefaultShell   = "bash"
	DefaultTimeout = 60 * time.Second
)

// Executor runs a single shell command line and waits for it to finish.
type Executor interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string
	// Run executes command and returns its exit code and combined stdout/stderr.
	Run(ctx context.Context, command string) (*Result, error)
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int    `yaml:"exitCode" json:"exitCode"`
	Output   string `yaml:"output" json:"output"`
}

// Succeeded reports whether the command exited with status 0.
func (r *Result) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// nolog discards everything until a logger is set with WithLogger.
var nolog = zerolog.Nop()

type options struct {
	logger  *zerolog.Logger
	timeout time.Duration
	shell   string
}

// Option customizes an executor backend.
type Option func(*options)

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeout bounds every command. A zero or negative value disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithShell sets the shell binary used by the local backend.
func WithShell(shell string) Option {
	return func(o *options) {
		if shell != "" {
			o.shell = shell
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  &nolog,
		timeout: DefaultTimeout,
		shell:   DefaultShell,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}
