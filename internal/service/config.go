package service

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xolan/chrono/internal/config"
)

// ErrConfigExists is returned by Init when the config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// ConfigService reads and writes the config file. It is safe for
// concurrent use; the TUI saves the theme from a background command.
type ConfigService struct {
	mu     sync.RWMutex
	path   string
	config config.Config
}

// NewConfigService creates a ConfigService holding cfg, the configuration
// already loaded from path.
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, config: cfg}
}

// Get returns a copy of the effective configuration.
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// GetPath returns the config file location.
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update validates cfg, writes it and makes it the effective configuration.
// Services built earlier keep the values they were created with.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := config.Save(s.path, cfg); err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// Reset overwrites the config file with the defaults.
func (s *ConfigService) Reset() error {
	return s.Update(config.DefaultConfig())
}

// Init writes the commented sample config. It never overwrites a file.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("%w at %s", ErrConfigExists, s.path)
	}
	if err := os.WriteFile(s.path, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload reads the config file again. When it cannot be used the defaults
// become effective and the problem is returned.
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.path)

	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}
