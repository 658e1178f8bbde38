// Package container wires the bridge, HTTP clients, scan history store and
// application services together and owns their lifecycle.
package container

import (
	"fmt"
	"time"

	appconfig "github.com/garyjia/memories-nativex/internal/config"
	"github.com/garyjia/memories-nativex/pkg/utils"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration; an empty path disables scan history
	Database DatabaseConfig

	// Native host configuration
	Nativex NativexConfig

	// Remote photo server configuration
	Remote RemoteConfig

	// Free-space scan configuration
	Scan ScanConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration
}

// NativexConfig holds native host settings.
type NativexConfig struct {
	// BaseURL of the host's loopback API
	BaseURL string

	// RPCEnabled attaches the host bridge over loopback HTTP at start
	RPCEnabled bool

	// Timeout for loopback calls
	Timeout time.Duration
}

// RemoteConfig holds remote photo server settings.
type RemoteConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// ScanConfig holds free-space scan settings.
type ScanConfig struct {
	// ToastMessage shown by the host when a scan starts
	ToastMessage string

	// HistoryLimit is the default number of reports listed
	HistoryLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/nativex.db",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Nativex: NativexConfig{
			BaseURL: "http://127.0.0.1",
			Timeout: 10 * time.Second,
		},
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
		Scan: ScanConfig{
			ToastMessage: "Scanning...",
			HistoryLimit: 20,
		},
	}
}

// FromAppConfig maps the loaded application configuration onto a Config.
func FromAppConfig(cfg *appconfig.Config) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            cfg.Database.Path,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		},
		Nativex: NativexConfig{
			BaseURL:    cfg.Nativex.BaseURL,
			RPCEnabled: cfg.Nativex.RPCEnabled,
			Timeout:    cfg.Nativex.Timeout,
		},
		Remote: RemoteConfig{
			BaseURL:  cfg.Remote.BaseURL,
			Username: cfg.Remote.Username,
			Password: cfg.Remote.Password,
			Timeout:  cfg.Remote.Timeout,
		},
		Scan: ScanConfig{
			ToastMessage: cfg.Scan.ToastMessage,
			HistoryLimit: cfg.Scan.HistoryLimit,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if err := utils.ValidateBaseURL(c.Nativex.BaseURL); err != nil {
		return fmt.Errorf("nativex.base_url: %w", err)
	}

	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required")
	}
	if err := utils.ValidateBaseURL(c.Remote.BaseURL); err != nil {
		return fmt.Errorf("remote.base_url: %w", err)
	}

	return nil
}
