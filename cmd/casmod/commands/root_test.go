// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		flagVersion = false
		flagConfig = ""
	})

	err := Execute(context.Background())
	return out.String(), err
}

func TestExecute_VersionFlag(t *testing.T) {
	out, err := executeRoot(t, "--version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
	assert.Contains(t, out, "commit:")
}

func TestExecute_VersionCommandBadFormat(t *testing.T) {
	_, err := executeRoot(t, "version", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, errorx.IllegalFormat))
}

func TestExecute_NilContext(t *testing.T) {
	err := Execute(nil)
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["modules"])
	assert.True(t, names["device"])
	assert.True(t, names["version"])
}
