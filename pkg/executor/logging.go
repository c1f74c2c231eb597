// SPDX-License-Identifier: Apache-2.0

package executor

var logFields = struct {
	command  string
	executor string
	exitCode string
	host     string
	duration string
}{
	command:  "command",
	executor: "executor",
	exitCode: "exit_code",
	host:     "host",
	duration: "duration",
}
