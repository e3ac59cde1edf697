// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only. The aggregator endpoint
    that users may change at runtime lives in the settings store, seeded from here.
  - DI-Friendly: Passed to core components (resolver, stores) via constructors.
  - Optional Storage: With neither DATABASE_URL nor REDIS_URL set, records live in
    process memory and reset on restart.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the vodstrm API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Aggregator endpoint used until a client overrides it via POST /api/config.
	VodAPI string `env:"VOD_API" envDefault:"https://cj.lziapi.com/api.php/provide/vod/at/json/"`

	// Endpoints queried by GET /api/vod/search. Empty means VOD_API alone.
	VodSources []string `env:"VOD_SOURCES" envSeparator:","`

	// Outbound timeouts
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	ResolveTimeout  time.Duration `env:"RESOLVE_TIMEOUT"  envDefault:"5s"`

	// Relational Database (PostgreSQL), optional record backend
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), optional record backend
	RedisURL string `env:"REDIS_URL"`

	// Cross-Origin Resource Sharing. Empty allows every origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if strings.TrimSpace(cfg.VodAPI) == "" {
		return nil, fmt.Errorf("config: VOD_API must not be empty")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RecordBackend names the record store selected by the environment:
// "postgres", "redis" or "memory".
func (c *Config) RecordBackend() string {
	switch {
	case c.DatabaseURL != "":
		return "postgres"
	case c.RedisURL != "":
		return "redis"
	default:
		return "memory"
	}
}

// OriginAllowed reports whether a browser origin may call the API.
func (c *Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 || c.IsDevelopment() {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
