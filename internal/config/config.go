// Package config manages CMR configuration and the .cmr directory structure.
// It handles loading, saving, and initializing the repository configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	CMRDir       = ".cmr"
	ConfigFile   = "config"
	DatabaseFile = "cmr.db"
)

// Defaults applied by Load when the config file omits a value
const (
	DefaultHistoryWindow = 50
	DefaultFetchTimeout  = 5 * time.Second
	DefaultMaxParallel   = 4
)

// Config represents the CMR configuration
type Config struct {
	ForgeURL         string   `toml:"forge_url"`         // Base URL of the hosting platform API
	Repository       string   `toml:"repository"`        // owner/name slug
	Token            string   `toml:"token"`             // Bearer token for the forge API
	HistoryWindow    int      `toml:"history_window"`    // Commits of file history to consider
	FetchTimeoutSecs int      `toml:"fetch_timeout"`     // Per-call forge timeout in seconds
	MaxParallel      int      `toml:"max_parallel"`      // Concurrent files in batch resolution
	CriticalPatterns []string `toml:"critical_patterns"` // Extra critical-path patterns beyond the built-ins
	path             string   // path to .cmr directory
}

// FindCMRRoot finds the .cmr directory by walking up from current directory
func FindCMRRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		cmrPath := filepath.Join(dir, CMRDir)
		if info, err := os.Stat(cmrPath); err == nil && info.IsDir() {
			return cmrPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a cmr repository (or any parent up to root)")
		}
		dir = parent
	}
}

// Load loads the configuration from the .cmr directory
func Load() (*Config, error) {
	cmrPath, err := FindCMRRoot()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(cmrPath, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = cmrPath
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.FetchTimeoutSecs <= 0 {
		c.FetchTimeoutSecs = int(DefaultFetchTimeout / time.Second)
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = DefaultMaxParallel
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// CMRPath returns the path to the .cmr directory
func (c *Config) CMRPath() string {
	return c.path
}

// DatabasePath returns the path to the sqlite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}

// FetchTimeout returns the forge call timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// Initialize creates a new .cmr directory with initial configuration
func Initialize(forgeURL, repository string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cmrPath := filepath.Join(cwd, CMRDir)

	// Check if already initialized
	if _, err := os.Stat(cmrPath); err == nil {
		return nil, fmt.Errorf("cmr repository already exists")
	}

	if err := os.MkdirAll(cmrPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .cmr directory: %w", err)
	}

	cfg := &Config{
		ForgeURL:   forgeURL,
		Repository: repository,
		path:       cmrPath,
	}
	cfg.applyDefaults()

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(cmrPath)
		return nil, err
	}

	return cfg, nil
}
