package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/openfleet/eldsim/internal/adapters/geocode"
	"github.com/openfleet/eldsim/internal/adapters/httpapi"
	"github.com/openfleet/eldsim/internal/adapters/logging"
	"github.com/openfleet/eldsim/internal/adapters/metrics"
	"github.com/openfleet/eldsim/internal/adapters/persistence"
	adapterRouting "github.com/openfleet/eldsim/internal/adapters/routing"
	"github.com/openfleet/eldsim/internal/application/trip"
	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
	"github.com/openfleet/eldsim/internal/infrastructure/config"
	"github.com/openfleet/eldsim/internal/infrastructure/database"
)

// NewServeCommand creates the HTTP server command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the trip scheduling HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.NewStdoutLogger(cfg.Logging.Level)
	clock := shared.NewRealClock()

	routingMetrics := metrics.NewRoutingMetricsCollector()
	routingMetrics.Register()
	simulationMetrics := metrics.NewSimulationMetricsCollector()
	simulationMetrics.Register()

	var provider domainRouting.RouteProvider = adapterRouting.NewOSRMClient(adapterRouting.ClientOptions{
		BaseURL:     cfg.Routing.BaseURL,
		Timeout:     cfg.Routing.Timeout,
		MaxRetries:  cfg.Routing.Retry.MaxAttempts,
		BackoffBase: cfg.Routing.Retry.BackoffBase,
		RateLimit:   rate.Limit(cfg.Routing.RateLimit.Requests),
		RateBurst:   cfg.Routing.RateLimit.Burst,
		Clock:       clock,
		Observer:    routingMetrics,
	})

	if cfg.Routing.Cache.Enabled {
		db, err := database.NewConnection(cfg.Database)
		if err != nil {
			return err
		}
		cache := persistence.NewGormRouteCacheRepository(db, clock, cfg.Routing.Cache.TTL)
		provider = adapterRouting.NewCachingRouteProvider(provider, cache, routingMetrics)
		logger.Log("INFO", "route cache enabled", map[string]interface{}{
			"database": cfg.Database.Type,
			"ttl":      cfg.Routing.Cache.TTL.String(),
		})
	}

	simulateHandler := trip.NewSimulateTripHandler(provider, clock, simulationMetrics)

	geocoder := geocode.NewClient(geocode.ClientOptions{
		BaseURL:     cfg.Geocode.BaseURL,
		FallbackURL: cfg.Geocode.FallbackURL,
		APIKey:      cfg.Geocode.APIKey,
		Timeout:     cfg.Geocode.Timeout,
	})

	handlers := httpapi.NewHandlers(simulateHandler, geocoder)
	server := httpapi.NewServer(cfg.Server, handlers, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Log("INFO", "shutting down", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	// Give the listener goroutine a moment to surface its exit value
	select {
	case err := <-errCh:
		return err
	case <-time.After(time.Second):
		return nil
	}
}
