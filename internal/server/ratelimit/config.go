package ratelimit

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact request path
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// envConfig mirrors the RATE_LIMIT_* environment variables.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
}

// LoadConfig loads rate limiting configuration from environment variables.
// Unparseable values fall back to defaults.
func LoadConfig() *Config {
	return loadConfig(env.Options{})
}

// LoadConfigFrom is LoadConfig over an explicit environment.
func LoadConfigFrom(environ map[string]string) *Config {
	return loadConfig(env.Options{Environment: environ})
}

func loadConfig(opts env.Options) *Config {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, opts); err != nil {
		ec = envConfig{}
		_ = env.ParseWithOptions(&ec, env.Options{Environment: map[string]string{}})
	}
	if !ec.Enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         ec.Enabled,
		DefaultLimit:    ec.DefaultLimit,
		DefaultWindow:   ec.DefaultWindow,
		CleanupInterval: ec.CleanupInterval,
		Whitelist:       toIPSet(ec.Whitelist),
		Blacklist:       toIPSet(ec.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Writes: one respondent rarely submits more than a few times.
		{Path: "/api/submit", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Dashboard reads aggregate the whole table.
		{Path: "/api/dashboard-stats", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},

		// Health checks are never throttled.
		{Path: "/health", Method: "GET", Limit: 0},

		// Everything else shares the default bucket.
	}
}

// toIPSet turns a list of addresses into a lookup set, skipping blanks.
func toIPSet(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
