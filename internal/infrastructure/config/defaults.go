package config

import "time"

// SetDefaults fills in zero-valued fields with sensible defaults so a bare
// environment still produces a runnable configuration.
func SetDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.Routing.BaseURL == "" {
		cfg.Routing.BaseURL = "http://router.project-osrm.org"
	}
	if cfg.Routing.Timeout == 0 {
		cfg.Routing.Timeout = 10 * time.Second
	}
	if cfg.Routing.RateLimit.Requests == 0 {
		cfg.Routing.RateLimit.Requests = 5
	}
	if cfg.Routing.RateLimit.Burst == 0 {
		cfg.Routing.RateLimit.Burst = 5
	}
	if cfg.Routing.Retry.MaxAttempts == 0 {
		cfg.Routing.Retry.MaxAttempts = 2
	}
	if cfg.Routing.Retry.BackoffBase == 0 {
		cfg.Routing.Retry.BackoffBase = time.Second
	}
	if cfg.Routing.Cache.TTL == 0 {
		cfg.Routing.Cache.TTL = 24 * time.Hour
	}

	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = "https://geocode.maps.co"
	}
	if cfg.Geocode.FallbackURL == "" {
		cfg.Geocode.FallbackURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocode.Timeout == 0 {
		cfg.Geocode.Timeout = 10 * time.Second
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "eldsim.db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 30 * time.Minute
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
