// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"pault.ag/go/modprobe"
)

const (
	sysModuleDir    = "/sys/module"
	procModulesFile = "/proc/modules"
)

// nativeOperations talks to the kernel through init_module/delete_module and
// reads module state from procfs and sysfs.
type nativeOperations struct {
	sysModuleDir string
	procModules  string

	// use var to allow mocking in tests
	insert func(name, params string) error
	remove func(name string) error
}

func newNativeOperations() *nativeOperations {
	return &nativeOperations{
		sysModuleDir: sysModuleDir,
		procModules:  procModulesFile,
		insert:       modprobe.Load,
		remove:       modprobe.Remove,
	}
}

func (n *nativeOperations) load(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return ErrLoadFailed.Wrap(err, "load of %s cancelled", name).WithProperty(PropertyModule, name)
	}
	if err := n.insert(name, ""); err != nil {
		return ErrLoadFailed.Wrap(err, "failed to load %s", name).WithProperty(PropertyModule, name)
	}
	return nil
}

// unload removes name. With RemoveModprobe every module name depended on is
// removed afterwards as long as nothing else holds it.
func (n *nativeOperations) unload(ctx context.Context, name string, strategy RemovalStrategy) error {
	if err := ctx.Err(); err != nil {
		return ErrUnloadFailed.Wrap(err, "unload of %s cancelled", name).WithProperty(PropertyModule, name)
	}

	var deps []string
	if strategy == RemoveModprobe {
		deps = n.dependencies(name)
	}

	if err := n.remove(name); err != nil {
		return ErrUnloadFailed.Wrap(err, "failed to unload %s", name).
			WithProperty(PropertyModule, name).
			WithProperty(PropertyStrategy, strategy.String())
	}

	for _, dep := range deps {
		if n.inUse(dep) {
			continue
		}
		// a dependency that cannot be removed does not fail the unload
		_ = n.remove(dep)
	}

	return nil
}

func (n *nativeOperations) isLoaded(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrQueryFailed.Wrap(err, "query of %s cancelled", name).WithProperty(PropertyModule, name)
	}

	f, err := os.Open(n.procModules)
	if err != nil {
		return false, ErrQueryFailed.Wrap(err, "failed to read %s", n.procModules).
			WithProperty(PropertyModule, name)
	}
	defer func() { _ = f.Close() }()

	want := normalizeModuleName(name)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == want {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, ErrQueryFailed.Wrap(err, "failed to read %s", n.procModules).
			WithProperty(PropertyModule, name)
	}
	return false, nil
}

// dependencies lists the loaded modules that name holds, that is every
// /sys/module/<dep>/holders directory containing an entry for name.
func (n *nativeOperations) dependencies(name string) []string {
	matches, err := filepath.Glob(filepath.Join(n.sysModuleDir, "*", "holders", normalizeModuleName(name)))
	if err != nil {
		return nil
	}

	deps := make([]string, 0, len(matches))
	for _, m := range matches {
		deps = append(deps, filepath.Base(filepath.Dir(filepath.Dir(m))))
	}
	return deps
}

func (n *nativeOperations) inUse(name string) bool {
	holders, err := os.ReadDir(filepath.Join(n.sysModuleDir, name, "holders"))
	if err != nil && !os.IsNotExist(err) {
		return true
	}
	if len(holders) > 0 {
		return true
	}

	refcnt, err := os.ReadFile(filepath.Join(n.sysModuleDir, name, "refcnt"))
	if err != nil {
		return !os.IsNotExist(err)
	}
	return strings.TrimSpace(string(refcnt)) != "0"
}

// The kernel reports module names with underscores even when they were loaded
// by a dashed alias.
func normalizeModuleName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
