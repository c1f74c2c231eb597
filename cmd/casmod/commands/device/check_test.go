// SPDX-License-Identifier: Apache-2.0

package device

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/cmd/casmod/commands/common"
	"github.com/open-cas/casmod/internal/cas"
	"github.com/open-cas/casmod/internal/testutil"
	"github.com/open-cas/casmod/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCheck(t *testing.T, fake *testutil.FakeExecutor, args ...string) (string, error) {
	t.Helper()
	orig := common.NewController
	common.NewController = func(time.Duration) (*cas.Controller, error) {
		return cas.NewController(fake)
	}
	defer func() { common.NewController = orig }()
	flagExported = ""

	var out bytes.Buffer
	cmd := testutil.PrepareSubCmdForTest(GetCmd())
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"device", "check"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCmd_ManagementDevicePresent(t *testing.T) {
	fake := testutil.NewFakeExecutor()

	out, err := runCheck(t, fake)
	require.NoError(t, err)
	assert.Equal(t, "/dev/cas_ctrl present\n", out)
	require.NoError(t, fake.CmdsMatch([]string{"test -c /dev/cas_ctrl"}))
}

func TestCheckCmd_ManagementDeviceAbsent(t *testing.T) {
	fake := testutil.NewFakeExecutor()
	fake.ReturnValue = &executor.Result{ExitCode: 1}

	_, err := runCheck(t, fake)
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, cas.ErrDeviceNotPresent))
	assert.True(t, errorx.HasTrait(err, errorx.NotFound()))

	device, ok := errorx.ExtractProperty(err, cas.PropertyDevice)
	require.True(t, ok)
	assert.Equal(t, "/dev/cas_ctrl", device)
}

func TestCheckCmd_ExportedObject(t *testing.T) {
	fake := testutil.NewFakeExecutor()
	fake.Responses["test -b /dev/cas1-2"] = &executor.Result{ExitCode: 1}

	out, err := runCheck(t, fake, "--exported", "cas1-1")
	require.NoError(t, err)
	assert.Equal(t, "/dev/cas1-1 present\n", out)

	_, err = runCheck(t, fake, "-e", "cas1-2")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, cas.ErrDeviceNotPresent))

	require.NoError(t, fake.CmdsMatch([]string{"test -b /dev/cas1-1", "test -b /dev/cas1-2"}))
}

func TestCheckCmd_InvalidExportedName(t *testing.T) {
	fake := testutil.NewFakeExecutor()

	_, err := runCheck(t, fake, "--exported", "../sda")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, cas.ErrDeviceNotPresent))
	assert.Empty(t, fake.Commands())
}
