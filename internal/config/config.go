package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/garyjia/memories-nativex/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Nativex  NativexConfig  `mapstructure:"nativex"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds scan history database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"` // empty disables scan history
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// NativexConfig holds native host configuration
type NativexConfig struct {
	BaseURL    string        `mapstructure:"base_url"`    // loopback API served by the host app
	RPCEnabled bool          `mapstructure:"rpc_enabled"` // attach the host bridge over loopback HTTP
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RemoteConfig holds remote photo server configuration
type RemoteConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ScanConfig holds free-space scan configuration
type ScanConfig struct {
	ToastMessage string `mapstructure:"toast_message"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := gotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NATIVEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8087)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute) // a scan walks every pending day

	// Database defaults
	v.SetDefault("database.path", "data/nativex.db")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Native host defaults
	v.SetDefault("nativex.base_url", "http://127.0.0.1")
	v.SetDefault("nativex.rpc_enabled", false)
	v.SetDefault("nativex.timeout", 10*time.Second)

	// Remote server defaults
	v.SetDefault("remote.timeout", 30*time.Second)

	// Scan defaults
	v.SetDefault("scan.toast_message", "Scanning...")
	v.SetDefault("scan.history_limit", 20)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds credentials that are usually provided by the environment
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("remote.base_url", "MEMORIES_SERVER_URL")
	v.BindEnv("remote.username", "MEMORIES_USERNAME")
	v.BindEnv("remote.password", "MEMORIES_APP_PASSWORD")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validateURL("nativex.base_url", c.Nativex.BaseURL); err != nil {
		return err
	}

	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required")
	}
	if err := validateURL("remote.base_url", c.Remote.BaseURL); err != nil {
		return err
	}
	if c.Remote.Password != "" && c.Remote.Username == "" {
		return fmt.Errorf("remote.username is required when remote.password is set")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	return nil
}

func validateURL(key, raw string) error {
	if err := utils.ValidateBaseURL(raw); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
