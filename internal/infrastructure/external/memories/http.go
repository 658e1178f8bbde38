// Package memories provides HTTP clients for the native loopback API and the remote photo server.
package memories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/pkg/utils"
)

// maxBodySize caps how much of a response body is read into memory
const maxBodySize = 32 << 20

// newHTTPClient builds the client shared by both APIs
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 30 * time.Second,
		},
	}
}

// endpoint is a base URL plus optional basic auth credentials
type endpoint struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *zap.Logger
}

func (e *endpoint) url(path string) string {
	return utils.TrimBaseURL(e.baseURL) + path
}

// do issues a request and returns the raw response with the body read
func (e *endpoint) do(ctx context.Context, method, path string) (*port.RawResponse, error) {
	reqURL := e.url(path)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if e.username != "" {
		req.SetBasicAuth(e.username, e.password)
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	e.logger.Debug("HTTP call finished",
		zap.String("method", method),
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	return &port.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// getJSON issues a GET and decodes a 2xx body into out.
// Non-2xx answers are reported as *port.StatusError.
func (e *endpoint) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := e.do(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return &port.StatusError{URL: e.url(path), StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", e.url(path), err)
	}

	return nil
}
