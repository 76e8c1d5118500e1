// Package config provides configuration management for netledger.
//
// The config file describes where data lives and how the tool behaves. The
// inventory itself and the small settings object (such as the remembered
// Telegram chat) are stored by the repository, not here.
//
// Config file locations (priority order):
//  1. $NETLEDGER_CONFIG
//  2. ./netledger.yaml
//  3. $XDG_CONFIG_HOME/netledger/config.yaml
//  4. ~/.config/netledger/config.yaml
//  5. /etc/netledger/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"netledger/internal/logger"
)

// EnvTelegramToken overrides telegram.token
const EnvTelegramToken = "NETLEDGER_TELEGRAM_TOKEN"

// DefaultTelegramAPIURL is the Bot API base URL
const DefaultTelegramAPIURL = "https://api.telegram.org"

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Driver: DriverJSON,
			Path:   "./network_data.json",
		},
		Logging: logger.DefaultConfig(),
		Telegram: TelegramConfig{
			APIURL: DefaultTelegramAPIURL,
		},
		Export: ExportConfig{Dir: "."},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverJSON
	}
	if c.Storage.Path == "" {
		if c.Storage.Driver == DriverSQLite {
			c.Storage.Path = "./netledger.db"
		} else {
			c.Storage.Path = "./network_data.json"
		}
	}
	if c.Telegram.APIURL == "" {
		c.Telegram.APIURL = DefaultTelegramAPIURL
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
}

// applyEnv lets the environment supply secrets that should not live in the file
func (c *Config) applyEnv() {
	if token := os.Getenv(EnvTelegramToken); token != "" {
		c.Telegram.Token = token
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("invalid storage driver %q: must be %s or %s", c.Storage.Driver, DriverJSON, DriverSQLite)
	}
	return nil
}

// TelegramTimeout returns the HTTP timeout for deliveries
func (c *Config) TelegramTimeout() time.Duration {
	if c.Telegram.Timeout == nil {
		return 30 * time.Second
	}
	return c.Telegram.Timeout.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Storage: %s (%s)\n", c.Storage.Driver, c.Storage.Path)
	summary += fmt.Sprintf("Export dir: %s\n", c.Export.Dir)
	if c.Telegram.Token != "" {
		summary += "Telegram: configured"
	} else {
		summary += "Telegram: not configured"
	}
	return summary
}
