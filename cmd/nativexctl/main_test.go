package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
	"github.com/garyjia/memories-nativex/internal/infrastructure/external/nativex"
)

// fakeHost serves the native loopback API, the bridge endpoint and the
// server's day listing from one test server.
type fakeHost struct {
	mu      sync.Mutex
	folders string
	calls   []string
}

func (h *fakeHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch r.URL.Path {
	case "/api/config/allow_media/1", "/api/config/allow_media/0":
		w.Write([]byte("granted"))
		return
	case "/api/image/pending-remote-check":
		json.NewEncoder(w).Encode([]entity.PendingRemoteCheck{{AUID: "a1", DayID: 5}})
		return
	case "/api/days/5":
		json.NewEncoder(w).Encode([]entity.ServerPhoto{{FileID: 1, AUID: "a1", DayID: 5}})
		return
	}

	var method string
	if _, err := fmt.Sscanf(r.URL.Path, "/api/bridge/%s", &method); err != nil {
		http.NotFound(w, r)
		return
	}
	h.calls = append(h.calls, method)

	var req nativex.CallRequest
	json.NewDecoder(r.Body).Decode(&req)

	var result interface{}
	switch method {
	case nativex.MethodConfigSetLocalFolders:
		h.folders = req.Args[0].(string)
	case nativex.MethodConfigGetLocalFolders:
		result = h.folders
	case nativex.MethodConfigHasMediaPermission:
		result = true
	}

	raw, _ := json.Marshal(result)
	json.NewEncoder(w).Encode(nativex.CallResponse{Result: raw})
}

func (h *fakeHost) called(method string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.calls {
		if c == method {
			return true
		}
	}
	return false
}

func setup(t *testing.T) *fakeHost {
	t.Helper()

	host := &fakeHost{}
	srv := httptest.NewServer(host)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
database:
  path: %s
nativex:
  base_url: %s
  rpc_enabled: true
remote:
  base_url: %s
`, filepath.Join(dir, "nativex.db"), srv.URL, srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	configPath = path
	t.Cleanup(func() {
		configPath = ""
		reportsLimit = 0
		app = nil
	})
	return host
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestFailedCommandReleasesContainer(t *testing.T) {
	setup(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"reports", "no-such-report"})

	err := rootCmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Nil(t, app, "container is closed after a failing command")
	assert.Nil(t, logger)
}

func TestFoldersCommands(t *testing.T) {
	host := setup(t)

	execute(t, "folders", "set", `[{"id":"1","name":"DCIM","enabled":true}]`)
	assert.JSONEq(t, `[{"id":"1","name":"DCIM","enabled":true}]`, host.folders)

	out := execute(t, "folders", "get")
	assert.JSONEq(t, `[{"id":"1","name":"DCIM","enabled":true}]`, out)
}

func TestPermissionCommands(t *testing.T) {
	setup(t)

	out := execute(t, "permission", "get")
	assert.JSONEq(t, `{"allowed":true}`, out)

	out = execute(t, "permission", "allow", "false")
	assert.Contains(t, out, "native API answered 200")
	assert.Contains(t, out, "granted")
}

func TestScanAndReports(t *testing.T) {
	host := setup(t)

	out := execute(t, "scan")
	var report entity.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, entity.ScanStatusCompleted, report.Status)
	assert.Equal(t, 1, report.MatchedA)
	assert.True(t, host.called(nativex.MethodSetHasRemote))
	assert.True(t, host.called(nativex.MethodFreeSpaceScan))

	out = execute(t, "reports")
	var reports []entity.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)

	out = execute(t, "reports", report.ID)
	var single entity.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &single))
	assert.Equal(t, report.ID, single.ID)
	require.Len(t, single.Days, 1)
	assert.Equal(t, []string{"a1"}, single.Days[0].MatchesA)
}
