// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SCHOOLSITE_DB_PATH" envDefault:"./data/schoolsite.db"`
	ServerHost string `env:"SCHOOLSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SCHOOLSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SCHOOLSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"SCHOOLSITE_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"SCHOOLSITE_UPLOADS_DIR" envDefault:"./uploads"`

	// RequestTimeout is the per-request deadline. Requests exceeding it
	// receive a 503; the transaction boundary guarantees no partial writes.
	RequestTimeout time.Duration `env:"SCHOOLSITE_REQUEST_TIMEOUT" envDefault:"30s"`

	// Cache configuration
	RedisURL     string `env:"SCHOOLSITE_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SCHOOLSITE_CACHE_PREFIX" envDefault:"school:"` // Redis key prefix
	CacheTTL     int    `env:"SCHOOLSITE_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SCHOOLSITE_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Rate limiting for unauthenticated requests
	PublicRateLimit float64 `env:"SCHOOLSITE_PUBLIC_RATE_LIMIT" envDefault:"10"`
	PublicRateBurst int     `env:"SCHOOLSITE_PUBLIC_RATE_BURST" envDefault:"20"`

	// Upload limits
	MaxUploadBytes int64 `env:"SCHOOLSITE_MAX_UPLOAD_BYTES" envDefault:"20971520"` // 20MB

	// Seeding configuration
	DoSeed bool `env:"SCHOOLSITE_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("SCHOOLSITE_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("SCHOOLSITE_MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	return cfg, nil
}
