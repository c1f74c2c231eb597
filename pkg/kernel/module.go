// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"context"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/pkg/executor"
	"github.com/open-cas/casmod/pkg/sanity"
	"github.com/rs/zerolog"
)

var nolog = zerolog.Nop()

const (
	backendCommand = "command"
	backendNative  = "native"
)

type defaultModule struct {
	name    string
	backend string
	ops     moduleOperations
	logger  *zerolog.Logger
}

type moduleConfig struct {
	exec   executor.Executor
	native bool
	logger *zerolog.Logger
}

// Option configures a Module built by NewModule.
type Option func(*moduleConfig)

// WithExecutor runs the modprobe/rmmod/lsmod tools through exec.
func WithExecutor(exec executor.Executor) Option {
	return func(c *moduleConfig) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithNativeOperations uses kernel syscalls directly instead of the userspace tools.
func WithNativeOperations() Option {
	return func(c *moduleConfig) {
		c.native = true
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *moduleConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewModule returns a Module for the kernel module called name. Without options
// it shells out to the module tools on the local host.
func NewModule(name string, opts ...Option) (Module, error) {
	if err := sanity.ModuleName(name); err != nil {
		return nil, err
	}

	cfg := &moduleConfig{logger: &nolog}
	for _, opt := range opts {
		opt(cfg)
	}

	var ops moduleOperations
	backend := backendCommand
	if cfg.native {
		ops = newNativeOperations()
		backend = backendNative
	} else {
		if cfg.exec == nil {
			cfg.exec = executor.NewLocal(executor.WithLogger(cfg.logger))
		}
		ops = &commandOperations{exec: cfg.exec}
	}

	return &defaultModule{name: name, backend: backend, ops: ops, logger: cfg.logger}, nil
}

func (m *defaultModule) Name() string {
	return m.name
}

func (m *defaultModule) Load(ctx context.Context) error {
	m.logger.Debug().
		Str(logFields.module, m.name).
		Str(logFields.backend, m.backend).
		Msg("Loading kernel module")
	if err := m.ops.load(ctx, m.name); err != nil {
		return err
	}
	m.logger.Info().Str(logFields.module, m.name).Msg("Kernel module loaded")
	return nil
}

func (m *defaultModule) Unload(ctx context.Context, strategy RemovalStrategy) error {
	if !strategy.Valid() {
		return errorx.IllegalArgument.New("invalid removal strategy %d", int(strategy))
	}

	m.logger.Debug().
		Str(logFields.module, m.name).
		Str(logFields.backend, m.backend).
		Stringer(logFields.strategy, strategy).
		Msg("Unloading kernel module")
	if err := m.ops.unload(ctx, m.name, strategy); err != nil {
		return err
	}
	m.logger.Info().
		Str(logFields.module, m.name).
		Stringer(logFields.strategy, strategy).
		Msg("Kernel module unloaded")
	return nil
}

func (m *defaultModule) IsLoaded(ctx context.Context) (bool, error) {
	return m.ops.isLoaded(ctx, m.name)
}
