// Package config reads the dashboard configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Backend   BackendConfig   `json:"backend"`
	Store     StoreConfig     `json:"store"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Tracing   TracingConfig   `json:"tracing"`
	Events    EventsConfig    `json:"events"`
}

// ServerConfig holds the local facade settings.
type ServerConfig struct {
	Address string `env:"RUN_ADDRESS" json:"address"`
}

// BackendConfig points at the campaign backend.
type BackendConfig struct {
	BaseURL string `env:"BACKEND_URL" json:"base_url"`
}

// StoreConfig selects the persistence backend for the resource caches.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite", "redis".
	Backend       string `env:"STORE_BACKEND" json:"backend"`
	SQLitePath    string `env:"STORE_SQLITE_PATH" json:"sqlite_path"`
	RedisAddr     string `env:"STORE_REDIS_ADDR" json:"redis_addr"`
	RedisPassword string `env:"STORE_REDIS_PASSWORD" json:"redis_password"`
	RedisDB       int    `env:"STORE_REDIS_DB" json:"redis_db"`
	CacheEnabled  bool   `env:"CACHE_ENABLED" json:"cache_enabled"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" json:"enabled"`
	Rate    int  `env:"RATE_LIMIT_RATE" json:"rate"`
	Window  int  `env:"RATE_LIMIT_WINDOW" json:"window"` // in seconds
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	Enabled     bool   `env:"TRACING_ENABLED" json:"enabled"`
	Endpoint    string `env:"TRACING_ENDPOINT" json:"endpoint"`
	Environment string `env:"TRACING_ENVIRONMENT" json:"environment"`
}

// EventsConfig toggles the in-process event hooks.
type EventsConfig struct {
	Enabled bool `env:"EVENT_HOOKS_ENABLED" json:"enabled"`
}

// Load builds the configuration: defaults, then an optional JSON file, then
// environment variables on top.
func Load(configFile string) (*Config, error) {
	cfg := &Config{
		Server:    ServerConfig{Address: "localhost:8090"},
		Store:     StoreConfig{Backend: "memory", SQLitePath: "./dashboard_cache.db", CacheEnabled: true},
		RateLimit: RateLimitConfig{Enabled: true, Rate: 100, Window: 60},
		Events:    EventsConfig{Enabled: true},
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment variables take precedence
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite store requires a path")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("redis store requires an address")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Rate <= 0 {
			return fmt.Errorf("rate limit rate must be positive")
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit window must be positive")
		}
	}
	return nil
}
