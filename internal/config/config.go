package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/storefront-go/storefront/pkg/config"
)

// Store backend names accepted by CartStore.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Remote catalog API
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://dummyjson.com"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"15s"`

	// Product grid page size (fixed per session)
	PageSize int `env:"PAGE_SIZE" envDefault:"12"`

	// Cart persistence backend: memory or redis
	CartStore string `env:"CART_STORE" envDefault:"memory"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart snapshot TTL in hours (default: 7 days); redis backend only
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Simulated payment processor latency
	CheckoutDelay time.Duration `env:"CHECKOUT_DELAY" envDefault:"1500ms"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid page size: %d", c.PageSize)
	}
	if c.CartStore != StoreMemory && c.CartStore != StoreRedis {
		return fmt.Errorf("invalid cart store %q: must be %q or %q", c.CartStore, StoreMemory, StoreRedis)
	}
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}
	return nil
}
