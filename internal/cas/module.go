// SPDX-License-Identifier: Apache-2.0

package cas

// Module names a kernel module that makes up the cache engine.
type Module string

const (
	// ModuleCache is the cache engine kernel module.
	ModuleCache Module = "cas_cache"
)

// ManagementDevicePath is the character device created by the cache module
// for control requests from userspace.
const ManagementDevicePath = "/dev/cas_ctrl"

// Modules returns every engine module in load order.
func Modules() []Module {
	return []Module{ModuleCache}
}

func (m Module) String() string {
	return string(m)
}
