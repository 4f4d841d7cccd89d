package config

import "time"

// ServerConfig holds the HTTP shell configuration
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Origins allowed by CORS; the original frontend runs on another host
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// Expose /metrics
	Metrics bool `mapstructure:"metrics"`
}
