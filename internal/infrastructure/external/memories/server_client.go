package memories

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// ServerConfig holds remote photo server settings
type ServerConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// ServerClient implements port.ServerAPI
type ServerClient struct {
	endpoint *endpoint
}

// NewServerClient creates a client for the remote photo server
func NewServerClient(cfg ServerConfig, logger *zap.Logger) *ServerClient {
	return &ServerClient{
		endpoint: &endpoint{
			baseURL:  cfg.BaseURL,
			username: cfg.Username,
			password: cfg.Password,
			client:   newHTTPClient(cfg.Timeout),
			logger:   logger,
		},
	}
}

// GetDay lists the server's media for one day
func (c *ServerClient) GetDay(ctx context.Context, dayID int64) ([]entity.ServerPhoto, error) {
	var photos []entity.ServerPhoto
	if err := c.endpoint.getJSON(ctx, dayPath(dayID), &photos); err != nil {
		return nil, fmt.Errorf("failed to get day %d: %w", dayID, err)
	}
	return photos, nil
}

// Verify interface compliance
var _ port.ServerAPI = (*ServerClient)(nil)
