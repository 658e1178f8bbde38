package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ConfigService exposes the host's local configuration to the web layer
type ConfigService interface {
	SetLocalFolders(ctx context.Context, folders []entity.LocalFolderConfig) error
	GetLocalFolders(ctx context.Context) ([]entity.LocalFolderConfig, error)
	HasMediaPermission(ctx context.Context) bool
	AllowMedia(ctx context.Context, allow bool) (*port.RawResponse, error)
}

type configServiceImpl struct {
	bridges   port.BridgeProvider
	nativeAPI port.NativeAPI
	logger    Logger
}

// NewConfigService creates a new ConfigService
func NewConfigService(bridges port.BridgeProvider, nativeAPI port.NativeAPI, logger Logger) ConfigService {
	return &configServiceImpl{
		bridges:   bridges,
		nativeAPI: nativeAPI,
		logger:    logger,
	}
}

// SetLocalFolders forwards the folder list to the host.
// Without a host, or with a host that cannot store folders, this is a no-op.
func (s *configServiceImpl) SetLocalFolders(ctx context.Context, folders []entity.LocalFolderConfig) error {
	writer, ok := s.bridges.Bridge().(port.FolderConfigWriter)
	if !ok {
		s.logger.Info("Native bridge cannot store local folders, ignoring")
		return nil
	}

	if folders == nil {
		folders = []entity.LocalFolderConfig{}
	}

	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("marshal local folders: %w", err)
	}

	return writer.ConfigSetLocalFolders(string(data))
}

// GetLocalFolders reads the folder list from the host.
// Returns an empty list when no host is registered or it returns nothing.
func (s *configServiceImpl) GetLocalFolders(ctx context.Context) ([]entity.LocalFolderConfig, error) {
	folders := []entity.LocalFolderConfig{}

	reader, ok := s.bridges.Bridge().(port.FolderConfigReader)
	if !ok {
		return folders, nil
	}

	raw := reader.ConfigGetLocalFolders()
	if raw == "" {
		return folders, nil
	}

	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		s.logger.Error("Failed to decode local folders from bridge", "error", err)
		return nil, fmt.Errorf("%w: local folders: %v", ErrInvalidBridgePayload, err)
	}

	// "null" decodes to a nil slice
	if folders == nil {
		folders = []entity.LocalFolderConfig{}
	}

	return folders, nil
}

// HasMediaPermission reports whether the user allowed media access, false without a host
func (s *configServiceImpl) HasMediaPermission(ctx context.Context) bool {
	checker, ok := s.bridges.Bridge().(port.MediaPermissionChecker)
	if !ok {
		return false
	}
	return checker.ConfigHasMediaPermission()
}

// AllowMedia asks the native API to grant or revoke media access.
// The response is returned as-is; only transport failures are errors.
func (s *configServiceImpl) AllowMedia(ctx context.Context, allow bool) (*port.RawResponse, error) {
	s.logger.Info("Requesting media permission change", "allow", allow)

	resp, err := s.nativeAPI.AllowMedia(ctx, allow)
	if err != nil {
		s.logger.Error("Failed to request media permission", "error", err, "allow", allow)
		return nil, fmt.Errorf("allow media: %w", err)
	}

	return resp, nil
}
