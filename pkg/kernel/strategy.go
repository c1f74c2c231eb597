// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"strings"

	"github.com/joomcode/errorx"
)

// RemovalStrategy selects how a module is taken out of the kernel.
type RemovalStrategy int

const (
	// RemoveModprobe removes the module and any dependencies that become unused.
	RemoveModprobe RemovalStrategy = iota
	// RemoveRmmod removes only the named module.
	RemoveRmmod
)

func (s RemovalStrategy) String() string {
	switch s {
	case RemoveModprobe:
		return "modprobe"
	case RemoveRmmod:
		return "rmmod"
	default:
		return "unknown"
	}
}

func (s RemovalStrategy) Valid() bool {
	return s == RemoveModprobe || s == RemoveRmmod
}

// ParseRemovalStrategy accepts the names returned by String, case-insensitively.
func ParseRemovalStrategy(s string) (RemovalStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modprobe":
		return RemoveModprobe, nil
	case "rmmod":
		return RemoveRmmod, nil
	}
	return 0, errorx.IllegalArgument.New("unknown removal strategy %q, expected modprobe or rmmod", s)
}
