// SPDX-License-Identifier: Apache-2.0

package cas

var logFields = struct {
	module   string
	strategy string
	device   string
	executor string
	present  string
}{
	module:   "module",
	strategy: "strategy",
	device:   "device",
	executor: "executor",
	present:  "present",
}
