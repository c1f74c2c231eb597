// SPDX-License-Identifier: Apache-2.0

package kernel

var logFields = struct {
	module   string
	strategy string
	backend  string
}{
	module:   "module",
	strategy: "strategy",
	backend:  "backend",
}
