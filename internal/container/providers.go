package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/application/service"
	"github.com/garyjia/memories-nativex/internal/infrastructure/bridge"
	"github.com/garyjia/memories-nativex/internal/infrastructure/external/memories"
	"github.com/garyjia/memories-nativex/internal/infrastructure/external/nativex"
	"github.com/garyjia/memories-nativex/internal/infrastructure/persistence/repository"
	"github.com/garyjia/memories-nativex/pkg/database"
	"github.com/garyjia/memories-nativex/pkg/utils"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB         *database.DB
	ReportRepo port.ScanReportRepository
}

// ClientsBundle holds the HTTP clients for both backends.
type ClientsBundle struct {
	NativeAPI port.NativeAPI
	ServerAPI port.ServerAPI
}

// ServiceDeps holds dependencies for creating services.
type ServiceDeps struct {
	Scan       *ScanConfig
	Bridges    port.BridgeProvider
	Clients    *ClientsBundle
	ReportRepo port.ScanReportRepository
	Logger     *zap.Logger
}

// ProvideDatabase opens the scan history database and applies the embedded
// migrations. An empty path returns a nil bundle: history is disabled.
func ProvideDatabase(ctx context.Context, cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Path == "" {
		logger.Info("No database path configured, scan history disabled")
		return nil, nil
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, logger).Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:         db,
		ReportRepo: repository.NewScanReportRepository(db, logger),
	}, nil
}

// ProvideBridge creates the bridge holder. With RPC enabled the host's
// loopback bridge is attached right away; otherwise the holder stays empty
// until an in-process host registers.
func ProvideBridge(cfg *NativexConfig, logger *zap.Logger) (*bridge.Holder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nativex config is required")
	}

	holder := bridge.NewHolder(logger)
	if cfg.RPCEnabled {
		holder.Register(nativex.NewRPCBridge(cfg.BaseURL, cfg.Timeout, logger))
	}
	return holder, nil
}

// ProvideClients creates the native API and server API clients.
func ProvideClients(nativeCfg *NativexConfig, remoteCfg *RemoteConfig, logger *zap.Logger) (*ClientsBundle, error) {
	if nativeCfg == nil || remoteCfg == nil {
		return nil, fmt.Errorf("nativex and remote config are required")
	}

	return &ClientsBundle{
		NativeAPI: memories.NewNativeClient(nativeCfg.BaseURL, nativeCfg.Timeout, logger),
		ServerAPI: memories.NewServerClient(memories.ServerConfig{
			BaseURL:  remoteCfg.BaseURL,
			Username: remoteCfg.Username,
			Password: remoteCfg.Password,
			Timeout:  remoteCfg.Timeout,
		}, logger),
	}, nil
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Clients == nil {
		return nil, fmt.Errorf("clients are required")
	}
	if deps.Bridges == nil {
		return nil, fmt.Errorf("bridge provider is required")
	}

	svcLogger := utils.NewServiceLogger(deps.Logger)

	var toast string
	if deps.Scan != nil {
		toast = utils.SanitizeString(deps.Scan.ToastMessage)
	}

	return &ServiceBundle{
		Config: service.NewConfigService(deps.Bridges, deps.Clients.NativeAPI, svcLogger),
		FreeSpace: service.NewFreeSpaceService(
			service.FreeSpaceConfig{ToastMessage: toast},
			deps.Bridges,
			deps.Clients.NativeAPI,
			deps.Clients.ServerAPI,
			deps.ReportRepo,
			svcLogger,
		),
	}, nil
}
