package container

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

type scanHost struct {
	scans   int
	remotes [][2]string
}

func (h *scanHost) FreeSpaceScan() { h.scans++ }

func (h *scanHost) SetHasRemote(auids, buids string, value bool) {
	h.remotes = append(h.remotes, [2]string{auids, buids})
}

func newBackends(t *testing.T) (native, remote *httptest.Server) {
	t.Helper()

	native = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/image/pending-remote-check":
			json.NewEncoder(w).Encode([]entity.PendingRemoteCheck{
				{AUID: "a1", DayID: 1},
				{BUID: "b2", DayID: 1},
				{AUID: "a3", DayID: 2},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(native.Close)

	remote = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/days/1":
			json.NewEncoder(w).Encode([]entity.ServerPhoto{{FileID: 10, AUID: "a1", DayID: 1}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(remote.Close)

	return native, remote
}

func testConfig(t *testing.T, nativeURL, remoteURL string) *Config {
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "data", "nativex.db")
	cfg.Nativex.BaseURL = nativeURL
	cfg.Remote.BaseURL = remoteURL
	return cfg
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), nil)
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote.base_url is required")
}

func TestContainer_Lifecycle(t *testing.T) {
	native, remote := newBackends(t)

	c, err := NewContainer(testConfig(t, native.URL, remote.URL), zap.NewNop())
	require.NoError(t, err)
	assert.False(t, c.Ready())

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(ctx))

	health := c.Health(ctx)
	assert.True(t, health.Overall)
	assert.True(t, health.Components["database"].Healthy)
	assert.Equal(t, "no host attached", health.Components["bridge"].Message)

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(ctx))
}

func TestContainer_ScanEndToEnd(t *testing.T) {
	native, remote := newBackends(t)

	c, err := NewContainer(testConfig(t, native.URL, remote.URL), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Close()

	host := &scanHost{}
	c.Bridges().Register(host)

	report, err := c.Services().FreeSpace.Scan(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, host.scans)
	require.Len(t, host.remotes, 1)
	assert.Equal(t, [2]string{`["a1"]`, `[]`}, host.remotes[0])
	assert.Equal(t, entity.ScanStatusPartial, report.Status)
	assert.Equal(t, 1, report.DaysSkipped)

	saved, err := c.Services().FreeSpace.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, saved.ID)
	assert.Equal(t, 1, saved.MatchedA)

	reports, err := c.Services().FreeSpace.ListReports(ctx, c.HistoryLimit())
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestContainer_HistoryDisabled(t *testing.T) {
	native, remote := newBackends(t)
	cfg := testConfig(t, native.URL, remote.URL)
	cfg.Database.Path = ""

	c, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	health := c.Health(context.Background())
	assert.True(t, health.Overall)
	assert.Equal(t, "disabled", health.Components["database"].Message)

	reports, err := c.Services().FreeSpace.ListReports(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
