// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-cas/casmod/pkg/executor"
)

// FakeExecutor records every command line it receives and answers with a
// canned result. It never touches the host.
type FakeExecutor struct {
	cmds []string

	// Responses maps an exact command line to the result it should produce.
	Responses map[string]*executor.Result
	// SideEffect, when set, decides the outcome of every command.
	SideEffect  func(command string) (*executor.Result, error)
	ReturnValue *executor.Result
	ReturnError error
}

func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		cmds:        []string{},
		Responses:   map[string]*executor.Result{},
		ReturnValue: &executor.Result{},
	}
}

func (f *FakeExecutor) Name() string {
	return "fake"
}

func (f *FakeExecutor) Run(_ context.Context, command string) (*executor.Result, error) {
	f.cmds = append(f.cmds, command)
	if f.SideEffect != nil {
		return f.SideEffect(command)
	}
	if res, ok := f.Responses[command]; ok {
		return res, nil
	}
	return f.ReturnValue, f.ReturnError
}

// Commands returns the command lines received so far, in order.
func (f *FakeExecutor) Commands() []string {
	return append([]string(nil), f.cmds...)
}

func (f *FakeExecutor) ClearCmds() {
	f.cmds = []string{}
}

// CmdsMatch matches the command list in order. HasPrefix is used to evaluate
// the match, so the initial part of a command is enough.
func (f *FakeExecutor) CmdsMatch(expected []string) error {
	if len(expected) != len(f.cmds) {
		return fmt.Errorf("number of calls mismatch, expected %d calls but got %d: %q", len(expected), len(f.cmds), f.cmds)
	}
	for i, expect := range expected {
		if !strings.HasPrefix(f.cmds[i], expect) {
			return fmt.Errorf("expected command: '%s.*' got: '%s'", expect, f.cmds[i])
		}
	}
	return nil
}

// IncludesCmds checks the given commands were executed in any order.
func (f *FakeExecutor) IncludesCmds(expected []string) error {
	for _, expect := range expected {
		found := false
		for _, got := range f.cmds {
			if strings.HasPrefix(got, expect) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("command '%s.*' not found", expect)
		}
	}
	return nil
}
