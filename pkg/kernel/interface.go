// SPDX-License-Identifier: Apache-2.0

package kernel

import "context"

// Module defines the interface for kernel module management operations
type Module interface {
	Name() string
	// Load inserts the module. It is issued even when the module is already
	// loaded; the underlying tool decides whether that is an error.
	Load(ctx context.Context) error
	// Unload removes the module with the given strategy.
	Unload(ctx context.Context, strategy RemovalStrategy) error
	IsLoaded(ctx context.Context) (bool, error)
}

// moduleOperations defines the low-level operations for kernel module management
// This interface can be easily mocked for testing
type moduleOperations interface {
	load(ctx context.Context, name string) error
	unload(ctx context.Context, name string, strategy RemovalStrategy) error
	isLoaded(ctx context.Context, name string) (bool, error)
}
