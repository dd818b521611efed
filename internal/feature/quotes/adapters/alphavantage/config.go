// Package alphavantage provides a client for the Alpha Vantage stock market API.
package alphavantage

import (
	"strings"
	"time"

	"trading_dashboard/internal/shared/env"
)

// RetryConfig holds the retry policy applied to provider errors.
type RetryConfig struct {
	MaxAttempts    int           // Total attempts including the first call (>= 1)
	InitialBackoff time.Duration // Backoff before the first retry
	MaxBackoff     time.Duration // Upper bound while doubling
}

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	BaseURL        string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	APIKey         string        // API key passed as a query parameter
	ConnectTimeout time.Duration // TCP connect timeout
	ReadTimeout    time.Duration // Read timeout for the response
	WriteTimeout   time.Duration // Write timeout for the request
	HealthSymbol   string        // Sentinel symbol used by the health prober
	HealthCacheTTL time.Duration // How long a health verdict stays cached
	RetryEnabled   bool          // Retries fire only in the production execution mode
	Retry          RetryConfig
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
// Retries are enabled only when APP_ENV is "production"; the flag is fixed
// at construction time and never re-evaluated per call.
func LoadConfig() Config {
	return Config{
		BaseURL:        strings.TrimSuffix(env.String("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co"), "/"),
		APIKey:         env.String("ALPHAVANTAGE_API_KEY", ""),
		ConnectTimeout: env.Duration("MARKETDATA_CONNECT_TIMEOUT", 2*time.Second),
		ReadTimeout:    env.Duration("MARKETDATA_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:   env.Duration("MARKETDATA_WRITE_TIMEOUT", 5*time.Second),
		HealthSymbol:   env.String("MARKETDATA_HEALTH_SYMBOL", "SPY"),
		HealthCacheTTL: env.Duration("MARKETDATA_HEALTH_CACHE_TTL", time.Minute),
		RetryEnabled:   strings.EqualFold(env.String("APP_ENV", ""), "production"),
		Retry: RetryConfig{
			MaxAttempts:    env.Int("MARKETDATA_RETRY_MAX_ATTEMPTS", 3),
			InitialBackoff: env.Duration("MARKETDATA_RETRY_INITIAL_BACKOFF", 500*time.Millisecond),
			MaxBackoff:     env.Duration("MARKETDATA_RETRY_MAX_BACKOFF", 5*time.Second),
		},
	}
}
