// Package nativex talks to a native host that exposes its bridge over loopback HTTP.
package nativex

import (
	"bytes"
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

const routeBridgeCall = "/api/bridge/%s"

// Bridge method names as exposed by the host
const (
	MethodConfigSetLocalFolders    = "configSetLocalFolders"
	MethodConfigGetLocalFolders    = "configGetLocalFolders"
	MethodConfigHasMediaPermission = "configHasMediaPermission"
	MethodToast                    = "toast"
	MethodFreeSpaceScan            = "freeSpaceScan"
	MethodSetHasRemote             = "setHasRemote"
)

// CallRequest is the body posted for every bridge call
type CallRequest struct {
	Args []interface{} `json:"args"`
}

// CallResponse is the host's answer to a bridge call
type CallResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RPCBridge implements every bridge capability by forwarding calls to the host.
// Calls that have no error return in the bridge contract log failures instead.
type RPCBridge struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRPCBridge creates a bridge client for the host at baseURL
func NewRPCBridge(baseURL string, timeout time.Duration, logger *zap.Logger) *RPCBridge {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RPCBridge{
		baseURL:    utils.TrimBaseURL(baseURL),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ConfigSetLocalFolders stores the folder configuration on the host
func (b *RPCBridge) ConfigSetLocalFolders(configJSON string) error {
	_, err := b.call(MethodConfigSetLocalFolders, configJSON)
	return err
}

// ConfigGetLocalFolders returns the stored folder configuration, or "" on failure
func (b *RPCBridge) ConfigGetLocalFolders() string {
	result, err := b.call(MethodConfigGetLocalFolders)
	if err != nil {
		b.logger.Error("Bridge call failed", zap.String("method", MethodConfigGetLocalFolders), zap.Error(err))
		return ""
	}

	var configJSON string
	if err := json.Unmarshal(result, &configJSON); err != nil {
		b.logger.Error("Unexpected bridge result", zap.String("method", MethodConfigGetLocalFolders), zap.Error(err))
		return ""
	}
	return configJSON
}

// ConfigHasMediaPermission returns the host's answer, or false on failure
func (b *RPCBridge) ConfigHasMediaPermission() bool {
	result, err := b.call(MethodConfigHasMediaPermission)
	if err != nil {
		b.logger.Error("Bridge call failed", zap.String("method", MethodConfigHasMediaPermission), zap.Error(err))
		return false
	}

	var allowed bool
	if err := json.Unmarshal(result, &allowed); err != nil {
		b.logger.Error("Unexpected bridge result", zap.String("method", MethodConfigHasMediaPermission), zap.Error(err))
		return false
	}
	return allowed
}

// Toast shows a message on the host
func (b *RPCBridge) Toast(message string, long bool) {
	b.fireAndForget(MethodToast, message, long)
}

// FreeSpaceScan starts the host's own scan and deletion prompt
func (b *RPCBridge) FreeSpaceScan() {
	b.fireAndForget(MethodFreeSpaceScan)
}

// SetHasRemote flags items as present on the server
func (b *RPCBridge) SetHasRemote(auidsJSON, buidsJSON string, value bool) {
	b.fireAndForget(MethodSetHasRemote, auidsJSON, buidsJSON, value)
}

func (b *RPCBridge) fireAndForget(method string, args ...interface{}) {
	if _, err := b.call(method, args...); err != nil {
		b.logger.Error("Bridge call failed", zap.String("method", method), zap.Error(err))
	}
}

// call posts one bridge invocation and returns the raw result
func (b *RPCBridge) call(method string, args ...interface{}) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if args == nil {
		args = []interface{}{}
	}
	payload, err := json.Marshal(CallRequest{Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s arguments: %w", method, err)
	}

	url := b.baseURL + fmt.Sprintf(routeBridgeCall, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed with status %d: %s", method, resp.StatusCode, string(body))
	}

	var out CallResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
		}
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%s: %s", method, out.Error)
	}

	return out.Result, nil
}

// Verify interface compliance
var (
	_ port.FolderConfigWriter     = (*RPCBridge)(nil)
	_ port.FolderConfigReader     = (*RPCBridge)(nil)
	_ port.MediaPermissionChecker = (*RPCBridge)(nil)
	_ port.Toaster                = (*RPCBridge)(nil)
	_ port.FreeSpaceScanner       = (*RPCBridge)(nil)
	_ port.RemoteMarker           = (*RPCBridge)(nil)
)
