package port

import (
	"context"
	"fmt"
	"net/http"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// RawResponse is an HTTP response passed back without interpretation
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError is returned when an endpoint answers with a non-2xx status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// NativeAPI defines calls to the native host's loopback HTTP API
type NativeAPI interface {
	AllowMedia(ctx context.Context, allow bool) (*RawResponse, error)
	PendingRemoteCheck(ctx context.Context) ([]entity.PendingRemoteCheck, error)
}

// ServerAPI defines calls to the remote photo server
type ServerAPI interface {
	GetDay(ctx context.Context, dayID int64) ([]entity.ServerPhoto, error)
}
