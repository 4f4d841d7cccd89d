package config

import "time"

// DatabaseConfig holds route-cache database configuration
type DatabaseConfig struct {
	// Database type: sqlite or postgres
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`

	// SQLite file path (or ":memory:")
	Path string `mapstructure:"path"`

	// PostgreSQL connection string; overrides the individual fields
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool settings (PostgreSQL only)
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
