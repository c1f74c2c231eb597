// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"github.com/joomcode/errorx"
)

var (
	ErrNamespace = errorx.NewNamespace("kernel")

	// ModuleErrorTrait is carried by every failed module operation.
	ModuleErrorTrait = errorx.RegisterTrait("module_error")

	ErrLoadFailed   = ErrNamespace.NewType("load_failed", ModuleErrorTrait)
	ErrUnloadFailed = ErrNamespace.NewType("unload_failed", ModuleErrorTrait)
	ErrQueryFailed  = ErrNamespace.NewType("query_failed", ModuleErrorTrait)

	PropertyModule   = errorx.RegisterProperty("module")
	PropertyStrategy = errorx.RegisterProperty("strategy")
	// exit code and tool output show up in the error text, so warn logs keep the reason
	PropertyExitCode = errorx.RegisterPrintableProperty("exit_code")
	PropertyOutput   = errorx.RegisterPrintableProperty("output")
)
