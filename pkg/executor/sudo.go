// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"

	"github.com/joomcode/errorx"
	"mvdan.cc/sh/v3/syntax"
)

// SudoPrefix is prepended to every command run through WithSudo. The -n flag
// makes sudo fail instead of prompting for a password.
const SudoPrefix = "sudo -n sh -c "

type sudoExecutor struct {
	inner Executor
}

// WithSudo wraps inner so that every command line runs as root through
// non-interactive sudo. The whole command line is quoted and handed to sh, so
// pipelines and redirections are elevated as a unit.
func WithSudo(inner Executor) Executor {
	return &sudoExecutor{inner: inner}
}

func (s *sudoExecutor) Name() string {
	return s.inner.Name() + "+sudo"
}

func (s *sudoExecutor) Run(ctx context.Context, command string) (*Result, error) {
	quoted, err := syntax.Quote(command, syntax.LangPOSIX)
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to quote command for sudo").
			WithProperty(PropertyCommand, command)
	}
	return s.inner.Run(ctx, SudoPrefix+quoted)
}
