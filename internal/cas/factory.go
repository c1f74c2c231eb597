// SPDX-License-Identifier: Apache-2.0

package cas

import (
	"os"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/internal/config"
	"github.com/open-cas/casmod/pkg/executor"
	"github.com/open-cas/casmod/pkg/kernel"
	"github.com/rs/zerolog"
)

// NewExecutor builds the executor selected by cfg.Executor.Mode. Native mode
// probes devices with the embedded interpreter since it never spawns the
// module tools.
func NewExecutor(cfg config.Config, logger *zerolog.Logger) (executor.Executor, error) {
	opts := []executor.Option{
		executor.WithLogger(logger),
		executor.WithTimeout(cfg.Executor.Timeout),
	}

	var exec executor.Executor
	switch cfg.Executor.Mode {
	case config.ModeLocal:
		exec = executor.NewLocal(append(opts, executor.WithShell(cfg.Executor.Shell))...)
	case config.ModeVirtual, config.ModeNative:
		exec = executor.NewVirtual(opts...)
	case config.ModeSSH:
		sshExec, err := executor.NewSSH(executor.SSHConfig{
			Host:           cfg.SSH.Host,
			Port:           cfg.SSH.Port,
			User:           cfg.SSH.User,
			Password:       cfg.SSH.Password,
			KeyFile:        cfg.SSH.KeyFile,
			KnownHostsFile: cfg.SSH.KnownHostsFile,
			DialTimeout:    cfg.SSH.DialTimeout,
		}, opts...)
		if err != nil {
			return nil, errorx.Decorate(err, "failed to create ssh executor")
		}
		exec = sshExec
	default:
		return nil, errorx.IllegalArgument.New("unsupported executor mode %q", cfg.Executor.Mode)
	}

	if needsSudo(cfg) {
		exec = executor.WithSudo(exec)
	}

	return exec, nil
}

// use var to allow mocking in tests
var geteuid = os.Geteuid

func needsSudo(cfg config.Config) bool {
	if !cfg.Executor.Sudo {
		return false
	}
	switch cfg.Executor.Mode {
	case config.ModeSSH:
		user := cfg.SSH.User
		if user == "" {
			user = executor.DefaultSSHUser
		}
		return user != "root"
	case config.ModeNative:
		return false
	default:
		return geteuid() != 0
	}
}

// NewControllerFromConfig wires a Controller for the configured executor mode.
func NewControllerFromConfig(cfg config.Config, logger *zerolog.Logger) (*Controller, error) {
	exec, err := NewExecutor(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLogger(logger)}
	if cfg.Executor.Mode == config.ModeNative {
		modules := make([]kernel.Module, 0, len(Modules()))
		for _, name := range Modules() {
			m, err := kernel.NewModule(name.String(), kernel.WithNativeOperations(), kernel.WithLogger(logger))
			if err != nil {
				return nil, ErrSetup.Wrap(err, "failed to create module %s", name)
			}
			modules = append(modules, m)
		}
		opts = append(opts, WithModules(modules...))
	}

	return NewController(exec, opts...)
}
