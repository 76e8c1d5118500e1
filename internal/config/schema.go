package config

import (
	"time"

	"netledger/internal/logger"
)

// Storage drivers
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  logger.Config  `yaml:"logging"`
	Telegram TelegramConfig `yaml:"telegram"`
	Export   ExportConfig   `yaml:"export"`
}

// StorageConfig selects where records and settings live
type StorageConfig struct {
	Driver string `yaml:"driver"` // json, sqlite
	// Path is the records file for json, or the database file for sqlite
	Path string `yaml:"path"`
	// SettingsPath is only used by the json driver
	SettingsPath string `yaml:"settings_path,omitempty"`
}

// TelegramConfig configures delivery of exported files
type TelegramConfig struct {
	Token   string    `yaml:"token,omitempty"`
	APIURL  string    `yaml:"api_url,omitempty"`
	Timeout *Duration `yaml:"timeout,omitempty"`
}

// ExportConfig controls where generated files are written
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Duration wraps time.Duration for YAML marshaling
type Duration time.Duration

// UnmarshalYAML parses duration strings like "30s"
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML outputs duration as string
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
