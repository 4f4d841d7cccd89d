package config

import "time"

// GeocodeConfig holds reverse-geocoding collaborator configuration
type GeocodeConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	FallbackURL string        `mapstructure:"fallback_url" validate:"required,url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"required"`
}
