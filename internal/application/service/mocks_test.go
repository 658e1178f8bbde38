package service

import (
	"context"
	"encoding/json"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type staticBridges struct {
	bridge port.NativeBridge
}

func (s *staticBridges) Bridge() port.NativeBridge {
	return s.bridge
}

type setHasRemoteCall struct {
	AUIDs []string
	BUIDs []string
	Value bool
}

// fakeHost implements every bridge capability and stores folders as the native side would
type fakeHost struct {
	foldersJSON   string
	setErr        error
	hasPermission bool
	toasts        []string
	scanCalls     int
	remoteCalls   []setHasRemoteCall
}

func (h *fakeHost) ConfigSetLocalFolders(configJSON string) error {
	if h.setErr != nil {
		return h.setErr
	}
	h.foldersJSON = configJSON
	return nil
}

func (h *fakeHost) ConfigGetLocalFolders() string {
	return h.foldersJSON
}

func (h *fakeHost) ConfigHasMediaPermission() bool {
	return h.hasPermission
}

func (h *fakeHost) Toast(message string, long bool) {
	h.toasts = append(h.toasts, message)
}

func (h *fakeHost) FreeSpaceScan() {
	h.scanCalls++
}

func (h *fakeHost) SetHasRemote(auidsJSON, buidsJSON string, value bool) {
	var call setHasRemoteCall
	_ = json.Unmarshal([]byte(auidsJSON), &call.AUIDs)
	_ = json.Unmarshal([]byte(buidsJSON), &call.BUIDs)
	call.Value = value
	h.remoteCalls = append(h.remoteCalls, call)
}

// scanOnlyHost can scan but cannot toast or mark items
type scanOnlyHost struct {
	scanCalls int
}

func (h *scanOnlyHost) FreeSpaceScan() {
	h.scanCalls++
}

type mockNativeAPI struct {
	allowMediaFunc         func(ctx context.Context, allow bool) (*port.RawResponse, error)
	pendingRemoteCheckFunc func(ctx context.Context) ([]entity.PendingRemoteCheck, error)
}

func (m *mockNativeAPI) AllowMedia(ctx context.Context, allow bool) (*port.RawResponse, error) {
	if m.allowMediaFunc != nil {
		return m.allowMediaFunc(ctx, allow)
	}
	return &port.RawResponse{StatusCode: 200}, nil
}

func (m *mockNativeAPI) PendingRemoteCheck(ctx context.Context) ([]entity.PendingRemoteCheck, error) {
	if m.pendingRemoteCheckFunc != nil {
		return m.pendingRemoteCheckFunc(ctx)
	}
	return nil, nil
}

type mockServerAPI struct {
	getDayFunc func(ctx context.Context, dayID int64) ([]entity.ServerPhoto, error)
	calls      []int64
}

func (m *mockServerAPI) GetDay(ctx context.Context, dayID int64) ([]entity.ServerPhoto, error) {
	m.calls = append(m.calls, dayID)
	if m.getDayFunc != nil {
		return m.getDayFunc(ctx, dayID)
	}
	return []entity.ServerPhoto{}, nil
}

type mockReportRepo struct {
	createFunc func(ctx context.Context, report *entity.ScanReport) error
	saved      []*entity.ScanReport
}

func (m *mockReportRepo) Create(ctx context.Context, report *entity.ScanReport) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, report)
	}
	m.saved = append(m.saved, report)
	return nil
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*entity.ScanReport, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ScanReport, error) {
	if len(m.saved) > limit {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}
