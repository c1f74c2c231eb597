// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nopLogger = zerolog.Nop()

func TestDefaultModule_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockOps := NewMockmoduleOperations(ctrl)
	module := &defaultModule{
		name:   "cas_cache",
		ops:    mockOps,
		logger: &nopLogger,
	}

	t.Run("should load module", func(t *testing.T) {
		mockOps.EXPECT().load(ctx, "cas_cache").Return(nil)

		err := module.Load(ctx)
		assert.NoError(t, err)
	})

	t.Run("should load module without checking whether it is already loaded", func(t *testing.T) {
		mockOps.EXPECT().isLoaded(gomock.Any(), gomock.Any()).Times(0)
		mockOps.EXPECT().load(ctx, "cas_cache").Return(nil)

		err := module.Load(ctx)
		assert.NoError(t, err)
	})

	t.Run("should return error when load fails", func(t *testing.T) {
		expectedErr := errors.New("failed to load module")
		mockOps.EXPECT().load(ctx, "cas_cache").Return(expectedErr)

		err := module.Load(ctx)
		assert.Error(t, err)
		assert.Equal(t, expectedErr, err)
	})
}

func TestDefaultModule_Unload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockOps := NewMockmoduleOperations(ctrl)
	module := &defaultModule{
		name:   "cas_cache",
		ops:    mockOps,
		logger: &nopLogger,
	}

	t.Run("should unload module with modprobe", func(t *testing.T) {
		mockOps.EXPECT().unload(ctx, "cas_cache", RemoveModprobe).Return(nil)

		err := module.Unload(ctx, RemoveModprobe)
		assert.NoError(t, err)
	})

	t.Run("should unload module with rmmod", func(t *testing.T) {
		mockOps.EXPECT().unload(ctx, "cas_cache", RemoveRmmod).Return(nil)

		err := module.Unload(ctx, RemoveRmmod)
		assert.NoError(t, err)
	})

	t.Run("should return error when unload fails", func(t *testing.T) {
		expectedErr := errors.New("module is in use")
		mockOps.EXPECT().unload(ctx, "cas_cache", RemoveRmmod).Return(expectedErr)

		err := module.Unload(ctx, RemoveRmmod)
		assert.Equal(t, expectedErr, err)
	})

	t.Run("should reject unknown strategy", func(t *testing.T) {
		err := module.Unload(ctx, RemovalStrategy(42))
		require.Error(t, err)
		assert.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
	})
}

func TestDefaultModule_IsLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockOps := NewMockmoduleOperations(ctrl)
	module := &defaultModule{
		name:   "cas_cache",
		ops:    mockOps,
		logger: &nopLogger,
	}

	mockOps.EXPECT().isLoaded(ctx, "cas_cache").Return(true, nil)
	loaded, err := module.IsLoaded(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)

	mockOps.EXPECT().isLoaded(ctx, "cas_cache").Return(false, nil)
	loaded, err = module.IsLoaded(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestNewModule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "cas_cache"},
		{name: "dashed", input: "cas-disk"},
		{name: "digits", input: "br_netfilter2"},
		{name: "empty", input: "", wantErr: true},
		{name: "special characters", input: "invalid-module!@#", wantErr: true},
		{name: "path", input: "../cas_cache", wantErr: true},
		{name: "shell injection", input: "cas_cache; reboot", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModule(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, m.Name())
		})
	}
}

func TestNewModule_NativeOperations(t *testing.T) {
	m, err := NewModule("cas_cache", WithNativeOperations())
	require.NoError(t, err)

	dm, ok := m.(*defaultModule)
	require.True(t, ok)
	_, ok = dm.ops.(*nativeOperations)
	assert.True(t, ok)
	assert.Equal(t, backendNative, dm.backend)

	m, err = NewModule("cas_cache")
	require.NoError(t, err)
	assert.Equal(t, backendCommand, m.(*defaultModule).backend)
}

func TestDefaultModule_LogsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	ctx := context.Background()
	mockOps := NewMockmoduleOperations(ctrl)
	module := &defaultModule{
		name:    "cas_cache",
		backend: backendNative,
		ops:     mockOps,
		logger:  &logger,
	}

	mockOps.EXPECT().unload(ctx, "cas_cache", RemoveRmmod).Return(nil)
	mockOps.EXPECT().load(ctx, "cas_cache").Return(nil)
	require.NoError(t, module.Unload(ctx, RemoveRmmod))
	require.NoError(t, module.Load(ctx))

	assert.Contains(t, buf.String(), `"message":"Unloading kernel module"`)
	assert.Contains(t, buf.String(), `"message":"Loading kernel module"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"backend":"native"`)))
}

func TestRemovalStrategy(t *testing.T) {
	assert.Equal(t, "modprobe", RemoveModprobe.String())
	assert.Equal(t, "rmmod", RemoveRmmod.String())
	assert.Equal(t, "unknown", RemovalStrategy(7).String())

	s, err := ParseRemovalStrategy("RMMOD")
	require.NoError(t, err)
	assert.Equal(t, RemoveRmmod, s)

	s, err = ParseRemovalStrategy(" modprobe ")
	require.NoError(t, err)
	assert.Equal(t, RemoveModprobe, s)

	_, err = ParseRemovalStrategy("insmod")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
}
