// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"fmt"
	"os"
)

// Code is a process exit status.
type Code int

func (ec Code) String() string {
	return fmt.Sprintf("%d", ec)
}

func (ec Code) Int() int {
	return int(ec)
}

func (ec Code) TerminateProcess() {
	os.Exit(int(ec))
}

func (ec Code) Is(other int) bool {
	return int(ec) == other
}

// Valid reports whether the code fits in the 0-255 range a process can return.
func (ec Code) Valid() bool {
	return ec >= MinValidExitCode && ec <= MaxValidExitCode
}

const MinValidExitCode Code = 0
const MaxValidExitCode Code = 255

// POSIX standard exit code definitions.

const NormalTermination Code = 0
const GeneralError Code = 1
const UsageError Code = 64
const DataFormatError Code = 65
const MissingInputError Code = 66
const HostUnknown Code = 68
const ServiceUnavailable Code = 69
const InternalError Code = 70
const SystemError Code = 71
const TemporaryFailure Code = 75
const ProtocolError Code = 76
const PermissionDenied Code = 77
const ConfigurationError Code = 78

// Shell exit code definitions returned by the executed commands.

const CommandNotExecutable Code = 126
const CommandNotFound Code = 127

// Application specific exit code definitions.

const ModuleOperationFailed Code = 90
const DeviceNotPresent Code = 91
