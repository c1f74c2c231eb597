// SPDX-License-Identifier: Apache-2.0

package cas

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Format(t *testing.T) {
	st := Status{
		Modules:                 []ModuleStatus{{Name: "cas_cache", Loaded: true}},
		ManagementDevicePresent: false,
	}

	out, err := st.Format(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"modules":[{"name":"cas_cache","loaded":true}],"managementDevicePresent":false}`, out)

	out, err = st.Format("YAML")
	require.NoError(t, err)
	assert.YAMLEq(t, "modules:\n  - name: cas_cache\n    loaded: true\nmanagementDevicePresent: false\n", out)

	_, err = st.Format("toml")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, errorx.IllegalFormat))
}

func TestStatus_Ready(t *testing.T) {
	assert.False(t, Status{}.Ready())
	assert.True(t, Status{ManagementDevicePresent: true}.Ready())
	assert.False(t, Status{
		Modules:                 []ModuleStatus{{Name: "cas_cache"}},
		ManagementDevicePresent: true,
	}.Ready())
}
