package memories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// NativeClient implements port.NativeAPI against the host's loopback server
type NativeClient struct {
	endpoint *endpoint
	logger   *zap.Logger
}

// NewNativeClient creates a client for the native loopback API
func NewNativeClient(baseURL string, timeout time.Duration, logger *zap.Logger) *NativeClient {
	return &NativeClient{
		endpoint: &endpoint{
			baseURL: baseURL,
			client:  newHTTPClient(timeout),
			logger:  logger,
		},
		logger: logger,
	}
}

// AllowMedia grants or revokes media access. The response is not interpreted.
func (c *NativeClient) AllowMedia(ctx context.Context, allow bool) (*port.RawResponse, error) {
	resp, err := c.endpoint.do(ctx, http.MethodGet, allowMediaPath(allow))
	if err != nil {
		return nil, err
	}

	c.logger.Info("Media permission request answered",
		zap.Bool("allow", allow),
		zap.Int("status", resp.StatusCode))

	return resp, nil
}

// PendingRemoteCheck lists local items waiting for confirmation of server presence
func (c *NativeClient) PendingRemoteCheck(ctx context.Context) ([]entity.PendingRemoteCheck, error) {
	var pending []entity.PendingRemoteCheck
	if err := c.endpoint.getJSON(ctx, routePendingRemoteCheck, &pending); err != nil {
		return nil, fmt.Errorf("failed to list pending remote checks: %w", err)
	}
	return pending, nil
}

// Verify interface compliance
var _ port.NativeAPI = (*NativeClient)(nil)
