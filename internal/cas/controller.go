// SPDX-License-Identifier: Apache-2.0

package cas

import (
	"context"
	"path"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/pkg/executor"
	"github.com/open-cas/casmod/pkg/kernel"
	"github.com/open-cas/casmod/pkg/sanity"
	"github.com/rs/zerolog"
)

var nolog = zerolog.Nop()

// Controller drives the cache engine kernel modules on the system under test.
//
// It keeps no state between calls: every query goes to the target system.
// Reload and unload never report failures; they are logged and callers
// inspect the outcome through IsManagementDevicePresent or Status.
type Controller struct {
	exec    executor.Executor
	modules []kernel.Module
	logger  *zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithModules replaces the default engine modules. They are loaded in the
// given order and unloaded in reverse.
func WithModules(modules ...kernel.Module) Option {
	return func(c *Controller) {
		c.modules = modules
	}
}

// NewController returns a Controller that runs its commands through exec.
func NewController(exec executor.Executor, opts ...Option) (*Controller, error) {
	if exec == nil {
		return nil, errorx.IllegalArgument.New("executor must not be nil")
	}

	c := &Controller{exec: exec, logger: &nolog}
	for _, opt := range opts {
		opt(c)
	}

	if c.modules == nil {
		for _, name := range Modules() {
			m, err := kernel.NewModule(name.String(), kernel.WithExecutor(exec), kernel.WithLogger(c.logger))
			if err != nil {
				return nil, ErrSetup.Wrap(err, "failed to create module %s", name)
			}
			c.modules = append(c.modules, m)
		}
	}

	return c, nil
}

// ReloadAllModules unloads every engine module with modprobe, most dependent
// first, then loads them all again. Each load is issued even when the
// preceding unload failed.
func (c *Controller) ReloadAllModules(ctx context.Context) {
	c.unloadAll(ctx, kernel.RemoveModprobe)
	for _, m := range c.modules {
		if err := m.Load(ctx); err != nil {
			c.logger.Warn().Err(err).Str(logFields.module, m.Name()).Msg("Failed to load module")
		}
	}
}

// UnloadAllModules removes every engine module with rmmod.
func (c *Controller) UnloadAllModules(ctx context.Context) {
	c.unloadAll(ctx, kernel.RemoveRmmod)
}

func (c *Controller) unloadAll(ctx context.Context, strategy kernel.RemovalStrategy) {
	for i := len(c.modules) - 1; i >= 0; i-- {
		m := c.modules[i]
		if err := m.Unload(ctx, strategy); err != nil {
			c.logger.Warn().
				Err(err).
				Str(logFields.module, m.Name()).
				Stringer(logFields.strategy, strategy).
				Msg("Failed to unload module")
		}
	}
}

// IsManagementDevicePresent reports whether the management character device
// exists on the target. Any failure to ask counts as absent.
func (c *Controller) IsManagementDevicePresent(ctx context.Context) bool {
	return c.probe(ctx, "test -c "+ManagementDevicePath, ManagementDevicePath)
}

// IsExportedObjectPresent reports whether the block device exported for a
// cache or core object called name exists under /dev.
func (c *Controller) IsExportedObjectPresent(ctx context.Context, name string) bool {
	if err := sanity.DeviceName(name); err != nil {
		c.logger.Debug().Err(err).Str(logFields.device, name).Msg("Rejected exported object name")
		return false
	}
	device := path.Join("/dev", name)
	return c.probe(ctx, "test -b "+device, device)
}

func (c *Controller) probe(ctx context.Context, command, device string) bool {
	res, err := c.exec.Run(ctx, command)
	if err != nil {
		c.logger.Debug().Err(err).Str(logFields.device, device).Msg("Device probe failed")
		return false
	}

	present := res.Succeeded()
	c.logger.Debug().
		Str(logFields.device, device).
		Bool(logFields.present, present).
		Str(logFields.executor, c.exec.Name()).
		Msg("Probed device")
	return present
}

// Status reports which engine modules are loaded and whether the management
// device exists. A module whose state cannot be read is reported as not loaded.
func (c *Controller) Status(ctx context.Context) Status {
	st := Status{Modules: make([]ModuleStatus, 0, len(c.modules))}
	for _, m := range c.modules {
		loaded, err := m.IsLoaded(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Str(logFields.module, m.Name()).Msg("Failed to query module state")
		}
		st.Modules = append(st.Modules, ModuleStatus{Name: m.Name(), Loaded: loaded && err == nil})
	}
	st.ManagementDevicePresent = c.IsManagementDevicePresent(ctx)
	return st
}
