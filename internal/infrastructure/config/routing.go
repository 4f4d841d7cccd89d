package config

import "time"

// RoutingConfig holds upstream routing service (OSRM) configuration
type RoutingConfig struct {
	// OSRM base URL, e.g. http://router.project-osrm.org
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Bounded wait per upstream call
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit RoutingRateLimitConfig `mapstructure:"rate_limit"`
	Retry     RoutingRetryConfig     `mapstructure:"retry"`
	Cache     RoutingCacheConfig     `mapstructure:"cache"`
}

// RoutingRateLimitConfig bounds the outbound request rate
type RoutingRateLimitConfig struct {
	Requests float64 `mapstructure:"requests" validate:"gt=0"`
	Burst    int     `mapstructure:"burst" validate:"gt=0"`
}

// RoutingRetryConfig controls transport-error retries
type RoutingRetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=0"`
	BackoffBase time.Duration `mapstructure:"backoff_base" validate:"required"`
}

// RoutingCacheConfig controls the optional route-response cache
type RoutingCacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}
