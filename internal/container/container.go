package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/application/service"
	"github.com/garyjia/memories-nativex/internal/infrastructure/bridge"
	"github.com/garyjia/memories-nativex/pkg/database"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure - Data
	db         *database.DB
	reportRepo port.ScanReportRepository

	// Infrastructure - Native host and backends
	bridges *bridge.Holder
	clients *ClientsBundle

	// Application
	services *ServiceBundle

	// Lifecycle
	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Config    service.ConfigService
	FreeSpace service.FreeSpaceService
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Scan history database
// 2. Native bridge holder
// 3. Native API and server API clients
// 4. Application services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	// Step 1: Initialize database and repositories
	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized", zap.Bool("history_enabled", c.reportRepo != nil))

	// Step 2: Initialize bridge
	bridges, err := ProvideBridge(&c.config.Nativex, c.logger)
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize bridge: %w", err)
	}
	c.bridges = bridges

	// Step 3: Initialize external clients
	clients, err := ProvideClients(&c.config.Nativex, &c.config.Remote, c.logger)
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize external clients: %w", err)
	}
	c.clients = clients
	c.logger.Info("External clients initialized",
		zap.String("native_url", c.config.Nativex.BaseURL),
		zap.String("server_url", c.config.Remote.BaseURL))

	// Step 4: Initialize application services
	services, err := ProvideServices(&ServiceDeps{
		Scan:       &c.config.Scan,
		Bridges:    c.bridges,
		Clients:    c.clients,
		ReportRepo: c.reportRepo,
		Logger:     c.logger,
	})
	if err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services
	c.logger.Info("Application services initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	// Detach the host so late callers see an unavailable bridge
	if c.bridges != nil {
		c.bridges.Register(nil)
	}

	err := c.closeDatabase()

	c.closed.Store(true)
	c.ready.Store(false)

	if err != nil {
		return fmt.Errorf("container closed with errors: %w", err)
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Services returns the application services; nil before Start.
func (c *Container) Services() *ServiceBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services
}

// Bridges returns the bridge holder so an in-process host can register.
func (c *Container) Bridges() *bridge.Holder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bridges
}

// HistoryLimit is the default number of scan reports to list.
func (c *Container) HistoryLimit() int {
	return c.config.Scan.HistoryLimit
}

// Health returns health status of all components.
// A missing bridge is reported but does not make the container unhealthy.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	// Check database
	switch {
	case c.db == nil && c.config.Database.Path == "":
		status.Components["database"] = ComponentHealth{Healthy: true, Message: "disabled"}
	case c.db == nil:
		status.Components["database"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	default:
		if err := c.db.PingContext(ctx); err != nil {
			status.Components["database"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["database"] = ComponentHealth{Healthy: true}
		}
	}

	// Check bridge
	if c.bridges != nil && c.bridges.Available() {
		status.Components["bridge"] = ComponentHealth{
			Healthy: true,
			Message: fmt.Sprintf("capabilities: %v", bridge.Capabilities(c.bridges.Bridge())),
		}
	} else {
		status.Components["bridge"] = ComponentHealth{Healthy: true, Message: "no host attached"}
	}

	// Check services
	if c.services != nil {
		status.Components["services"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["services"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	return status
}

func (c *Container) initDatabase(ctx context.Context) error {
	bundle, err := ProvideDatabase(ctx, &c.config.Database, c.logger)
	if err != nil {
		return err
	}
	if bundle == nil {
		return nil
	}

	c.db = bundle.DB
	c.reportRepo = bundle.ReportRepo
	return nil
}

func (c *Container) closeDatabase() error {
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("Database closed")
	return nil
}
