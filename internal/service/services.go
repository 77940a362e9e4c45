package service

import (
	"log/slog"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Entry  *EntryService
	Import *ImportService
	Stats  *StatsService
	Report *ReportService
	Store  *StoreService
	Config *ConfigService

	// ConfigWarning is set when the config file could not be used and
	// the defaults were loaded instead.
	ConfigWarning error
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := config.LoadOrDefault(configPath)
	if cfgErr != nil {
		slog.Warn("config file ignored", "path", configPath, "error", cfgErr)
	}

	storagePath, err := storage.ResolvePath(cfg.Storage)
	if err != nil {
		return nil, err
	}

	services := NewServicesWithPaths(storagePath, configPath, cfg)
	services.ConfigWarning = cfgErr
	return services, nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(storagePath, configPath string, cfg config.Config) *Services {
	loc := StoreLocation{Backend: cfg.Storage.Backend, Path: storagePath}

	return &Services{
		Entry:  NewEntryService(loc, cfg),
		Import: NewImportService(loc, cfg),
		Stats:  NewStatsService(loc, cfg),
		Report: NewReportService(loc, cfg),
		Store:  NewStoreService(loc, cfg),
		Config: NewConfigService(configPath, cfg),
	}
}
