// Package config provides configuration management for the analyzer: a
// JSON file with defaults applied for anything left unset.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// configPathEnvVar overrides the config file location when set.
const configPathEnvVar = "PPTFONTS_CONFIG"

// Config holds all analyzer configuration.
type Config struct {
	// DefaultFormat is the report format used when --format is absent.
	DefaultFormat string `json:"default_format"`
	// ExtraFonts are treated as installed in addition to the fonts found
	// on the system, one family per entry.
	ExtraFonts []string `json:"extra_fonts"`
	// ThumbnailWidth is the pixel width of slide thumbnails in HTML
	// reports.
	ThumbnailWidth int `json:"thumbnail_width"`
	// HistoryPath is the SQLite database recording past analyses. Empty
	// means a file under the user config directory.
	HistoryPath string `json:"history_path"`
	// DisableHistory turns off analysis recording entirely.
	DisableHistory bool `json:"disable_history"`
}

// Manager manages loading and saving configuration.
type Manager struct {
	configPath string
	mu         sync.RWMutex
	config     *Config
}

// NewManager creates a Manager for the given config file path. An empty
// path resolves via PPTFONTS_CONFIG or the user config directory.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{configPath: configPath}, nil
}

// DefaultPath returns the config file location: $PPTFONTS_CONFIG when
// set, otherwise pptfonts/config.json under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(configPathEnvVar); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "pptfonts", "config.json"), nil
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultFormat:  "console",
		ThumbnailWidth: 320,
	}
}

// Load reads the config file from disk. A missing file is not an error:
// defaults are used and written back on the next Save.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.config = DefaultConfig()
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	m.config = &cfg
	return nil
}

// Save writes the current config to disk, creating parent directories as
// needed.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := m.config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns the loaded configuration. Load must have been called.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// Path returns the resolved config file path.
func (m *Manager) Path() string {
	return m.configPath
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = defaults.DefaultFormat
	}
	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = defaults.ThumbnailWidth
	}
}

// HistoryDBPath resolves the history database location: the configured
// path when set, otherwise pptfonts/history.db under the user config
// directory.
func (c *Config) HistoryDBPath() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "pptfonts", "history.db"), nil
}
