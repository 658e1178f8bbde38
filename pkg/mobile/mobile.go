// Package mobile is the in-process binding for native hosts built with
// gomobile. Every exported signature sticks to strings, bools, ints and
// errors so it survives the binding generator.
package mobile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/config"
	"github.com/garyjia/memories-nativex/internal/container"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
	"github.com/garyjia/memories-nativex/pkg/utils"
)

// ErrNotStarted is returned by operations called before Start
var ErrNotStarted = errors.New("nativex core not started")

// Host is implemented by the native app. The JSON arguments and results are
// the same strings the web layer exchanges with the bridge.
type Host interface {
	ConfigSetLocalFolders(configJSON string) error
	ConfigGetLocalFolders() string
	ConfigHasMediaPermission() bool
	Toast(message string, long bool)
	FreeSpaceScan()
	SetHasRemote(auidsJSON, buidsJSON string, value bool)
}

var (
	mu     sync.Mutex
	app    *container.Container
	host   Host
	logger *zap.Logger
)

// Start loads configuration from configPath (empty: environment only) and
// brings up the core. A host registered earlier is attached immediately.
func Start(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if app != nil {
		return fmt.Errorf("nativex core already started")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	l, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c, err := container.NewContainer(container.FromAppConfig(cfg), l)
	if err != nil {
		return err
	}
	if err := c.Start(context.Background()); err != nil {
		return err
	}

	if host != nil {
		c.Bridges().Register(host)
	}

	app = c
	logger = l
	return nil
}

// Stop shuts the core down. It is safe to call when not started.
func Stop() error {
	mu.Lock()
	defer mu.Unlock()

	if app == nil {
		return nil
	}

	err := app.Close()
	logger.Sync()
	app = nil
	return err
}

// Register attaches the native host; nil detaches it.
// It may be called before or after Start.
func Register(h Host) {
	mu.Lock()
	defer mu.Unlock()

	host = h
	if app == nil {
		return
	}
	if h == nil {
		app.Bridges().Register(nil)
		return
	}
	app.Bridges().Register(port.NativeBridge(h))
}

func services() (*container.ServiceBundle, error) {
	mu.Lock()
	defer mu.Unlock()

	if app == nil {
		return nil, ErrNotStarted
	}
	return app.Services(), nil
}

// SetLocalFolders stores a JSON array of {id,name,enabled} folders on the host
func SetLocalFolders(foldersJSON string) error {
	svc, err := services()
	if err != nil {
		return err
	}

	var folders []entity.LocalFolderConfig
	if err := json.Unmarshal([]byte(foldersJSON), &folders); err != nil {
		return fmt.Errorf("invalid folder list: %w", err)
	}
	return svc.Config.SetLocalFolders(context.Background(), folders)
}

// GetLocalFolders returns the host's folder configuration as a JSON array
func GetLocalFolders() (string, error) {
	svc, err := services()
	if err != nil {
		return "", err
	}

	folders, err := svc.Config.GetLocalFolders(context.Background())
	if err != nil {
		return "", err
	}
	return marshal(folders)
}

// HasMediaPermission reports the host's media permission; false before Start
func HasMediaPermission() bool {
	svc, err := services()
	if err != nil {
		return false
	}
	return svc.Config.HasMediaPermission(context.Background())
}

// AllowMedia asks the native API to change the media permission and returns
// the HTTP status it answered with.
func AllowMedia(allow bool) (int, error) {
	svc, err := services()
	if err != nil {
		return 0, err
	}

	resp, err := svc.Config.AllowMedia(context.Background(), allow)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

// FreeSpaceScan runs a reconciliation scan and returns its report as JSON
func FreeSpaceScan() (string, error) {
	svc, err := services()
	if err != nil {
		return "", err
	}

	report, err := svc.FreeSpace.Scan(context.Background())
	if err != nil {
		return "", err
	}
	return marshal(report)
}

// ListScanReports returns the most recent scan reports as a JSON array
func ListScanReports(limit int) (string, error) {
	svc, err := services()
	if err != nil {
		return "", err
	}

	reports, err := svc.FreeSpace.ListReports(context.Background(), limit)
	if err != nil {
		return "", err
	}
	return marshal(reports)
}

func marshal(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize: %w", err)
	}
	return string(data), nil
}
