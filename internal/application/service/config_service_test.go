package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

func TestConfigService_LocalFoldersRoundTrip(t *testing.T) {
	host := &fakeHost{}
	svc := NewConfigService(&staticBridges{bridge: host}, &mockNativeAPI{}, &mockLogger{})

	folders := []entity.LocalFolderConfig{
		{ID: "DCIM/Camera", Name: "Camera", Enabled: true},
		{ID: "Pictures/Screenshots", Name: "Screenshots", Enabled: false},
	}

	err := svc.SetLocalFolders(context.Background(), folders)
	require.NoError(t, err)

	got, err := svc.GetLocalFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, folders, got)
}

func TestConfigService_SetLocalFolders(t *testing.T) {
	t.Run("nil list is stored as empty array", func(t *testing.T) {
		host := &fakeHost{}
		svc := NewConfigService(&staticBridges{bridge: host}, &mockNativeAPI{}, &mockLogger{})

		require.NoError(t, svc.SetLocalFolders(context.Background(), nil))
		assert.Equal(t, "[]", host.foldersJSON)
	})

	t.Run("bridge error is passed through", func(t *testing.T) {
		host := &fakeHost{setErr: errors.New("storage full")}
		svc := NewConfigService(&staticBridges{bridge: host}, &mockNativeAPI{}, &mockLogger{})

		err := svc.SetLocalFolders(context.Background(), []entity.LocalFolderConfig{{ID: "a"}})
		assert.EqualError(t, err, "storage full")
	})

	t.Run("no bridge is a no-op", func(t *testing.T) {
		svc := NewConfigService(&staticBridges{}, &mockNativeAPI{}, &mockLogger{})

		err := svc.SetLocalFolders(context.Background(), []entity.LocalFolderConfig{{ID: "a"}})
		assert.NoError(t, err)
	})
}

func TestConfigService_GetLocalFolders(t *testing.T) {
	tests := []struct {
		name    string
		bridge  port.NativeBridge
		want    []entity.LocalFolderConfig
		wantErr error
	}{
		{
			name:   "no bridge returns empty list",
			bridge: nil,
			want:   []entity.LocalFolderConfig{},
		},
		{
			name:   "bridge without folder support returns empty list",
			bridge: &scanOnlyHost{},
			want:   []entity.LocalFolderConfig{},
		},
		{
			name:   "empty payload returns empty list",
			bridge: &fakeHost{foldersJSON: ""},
			want:   []entity.LocalFolderConfig{},
		},
		{
			name:   "null payload returns empty list",
			bridge: &fakeHost{foldersJSON: "null"},
			want:   []entity.LocalFolderConfig{},
		},
		{
			name:   "stored payload is decoded",
			bridge: &fakeHost{foldersJSON: `[{"id":"1","name":"Camera","enabled":true}]`},
			want:   []entity.LocalFolderConfig{{ID: "1", Name: "Camera", Enabled: true}},
		},
		{
			name:    "malformed payload is an error",
			bridge:  &fakeHost{foldersJSON: `{not json`},
			wantErr: ErrInvalidBridgePayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewConfigService(&staticBridges{bridge: tt.bridge}, &mockNativeAPI{}, &mockLogger{})

			got, err := svc.GetLocalFolders(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigService_HasMediaPermission(t *testing.T) {
	t.Run("no bridge is false", func(t *testing.T) {
		svc := NewConfigService(&staticBridges{}, &mockNativeAPI{}, &mockLogger{})
		assert.False(t, svc.HasMediaPermission(context.Background()))
	})

	t.Run("bridge without capability is false", func(t *testing.T) {
		svc := NewConfigService(&staticBridges{bridge: &scanOnlyHost{}}, &mockNativeAPI{}, &mockLogger{})
		assert.False(t, svc.HasMediaPermission(context.Background()))
	})

	t.Run("bridge value is returned", func(t *testing.T) {
		svc := NewConfigService(&staticBridges{bridge: &fakeHost{hasPermission: true}}, &mockNativeAPI{}, &mockLogger{})
		assert.True(t, svc.HasMediaPermission(context.Background()))
	})
}

func TestConfigService_AllowMedia(t *testing.T) {
	t.Run("returns raw response uninterpreted", func(t *testing.T) {
		var gotAllow bool
		api := &mockNativeAPI{
			allowMediaFunc: func(ctx context.Context, allow bool) (*port.RawResponse, error) {
				gotAllow = allow
				return &port.RawResponse{StatusCode: 500, Body: []byte("nope")}, nil
			},
		}
		svc := NewConfigService(&staticBridges{}, api, &mockLogger{})

		resp, err := svc.AllowMedia(context.Background(), true)

		require.NoError(t, err)
		assert.True(t, gotAllow)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, []byte("nope"), resp.Body)
	})

	t.Run("transport error is wrapped", func(t *testing.T) {
		api := &mockNativeAPI{
			allowMediaFunc: func(ctx context.Context, allow bool) (*port.RawResponse, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := NewConfigService(&staticBridges{}, api, &mockLogger{})

		_, err := svc.AllowMedia(context.Background(), false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
