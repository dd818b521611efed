package ratelimit

import "trading_dashboard/internal/shared/env"

// Config holds configuration for the rate limiter.
// Bucket capacity and refill rate both equal the requests-per-minute budget
// of the endpoint class.
type Config struct {
	Enabled                bool
	RequestsPerMinute      int // Budget for general endpoints
	QuoteRequestsPerMinute int // Separate, lower budget protecting upstream quota
}

// LoadConfig loads rate limiter configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Enabled:                env.Bool("RATE_LIMIT_ENABLED", true),
		RequestsPerMinute:      env.Int("RATE_LIMIT_REQUESTS_PER_MINUTE", 100),
		QuoteRequestsPerMinute: env.Int("RATE_LIMIT_QUOTE_REQUESTS_PER_MINUTE", 30),
	}
}
