// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents the service configuration. Values come from environment
// variables (a .env file is loaded by main before parsing).
type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"3001"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Storage
	DatabaseURL string `env:"DATABASE_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Sheets SheetsConfig
}

// SheetsConfig configures the spreadsheet mirror. Leaving GOOGLE_CREDENTIALS
// and SPREADSHEET_ID unset disables it.
type SheetsConfig struct {
	Credentials   string        `env:"GOOGLE_CREDENTIALS"`
	SpreadsheetID string        `env:"SPREADSHEET_ID"`
	Range         string        `env:"SHEET_RANGE" envDefault:"Sheet1!A1"`
	TimeZone      string        `env:"SHEET_TIMEZONE" envDefault:"Asia/Karachi"`
	QueueSize     int           `env:"MIRROR_QUEUE_SIZE" envDefault:"64"`
	AppendTimeout time.Duration `env:"MIRROR_APPEND_TIMEOUT" envDefault:"15s"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Enabled reports whether the mirror has enough settings to run.
func (s SheetsConfig) Enabled() bool {
	return s.Credentials != "" && s.SpreadsheetID != ""
}

// Location resolves TimeZone, defaulting to UTC when empty.
func (s SheetsConfig) Location() (*time.Location, error) {
	if s.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config error: invalid SHEET_TIMEZONE %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}

	s := c.Sheets
	if (s.Credentials == "") != (s.SpreadsheetID == "") {
		return fmt.Errorf("config error: GOOGLE_CREDENTIALS and SPREADSHEET_ID must be set together")
	}
	if s.Enabled() {
		if s.Range == "" {
			return fmt.Errorf("config error: SHEET_RANGE cannot be empty")
		}
		if s.QueueSize < 1 {
			return fmt.Errorf("config error: MIRROR_QUEUE_SIZE must be at least 1, got %d", s.QueueSize)
		}
		if s.AppendTimeout <= 0 {
			return fmt.Errorf("config error: MIRROR_APPEND_TIMEOUT must be positive")
		}
		if _, err := s.Location(); err != nil {
			return err
		}
	}
	return nil
}
