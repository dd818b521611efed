package cache

import (
	"time"

	"trading_dashboard/internal/shared/env"
)

// Config holds configuration for the quote cache.
type Config struct {
	TTL     time.Duration // Freshness window before an entry is treated as stale
	MaxSize int           // Hard cap on resident entries
}

// LoadConfig loads quote cache configuration from environment variables.
func LoadConfig() Config {
	return Config{
		TTL:     env.Duration("QUOTE_CACHE_TTL", 30*time.Second),
		MaxSize: env.Int("QUOTE_CACHE_MAX_SIZE", DefaultMaxSize),
	}
}
