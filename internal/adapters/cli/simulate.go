package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/openfleet/eldsim/internal/adapters/logging"
	adapterRouting "github.com/openfleet/eldsim/internal/adapters/routing"
	"github.com/openfleet/eldsim/internal/application/common"
	"github.com/openfleet/eldsim/internal/application/trip"
	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/schedule"
	"github.com/openfleet/eldsim/internal/domain/shared"
	"github.com/openfleet/eldsim/internal/infrastructure/config"
)

type simulateFlags struct {
	currentLat float64
	currentLon float64
	pickupLat  float64
	pickupLon  float64
	dropoffLat float64
	dropoffLon float64
	cycleHours float64
	baseDate   string
	offline    bool
}

// NewSimulateCommand creates the one-shot simulation command. It prints the
// full ELD schedule as JSON to stdout.
func NewSimulateCommand() *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a single trip and print the ELD schedule",
		Example: `  eldsim simulate \
    --current-lat 41.8781 --current-lon -87.6298 \
    --pickup-lat 39.7684 --pickup-lon -86.1581 \
    --dropoff-lat 36.1627 --dropoff-lon -86.7816 \
    --cycle-hours 12.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(flags)
		},
	}

	cmd.Flags().Float64Var(&flags.currentLat, "current-lat", 0, "current truck latitude")
	cmd.Flags().Float64Var(&flags.currentLon, "current-lon", 0, "current truck longitude")
	cmd.Flags().Float64Var(&flags.pickupLat, "pickup-lat", 0, "pickup latitude")
	cmd.Flags().Float64Var(&flags.pickupLon, "pickup-lon", 0, "pickup longitude")
	cmd.Flags().Float64Var(&flags.dropoffLat, "dropoff-lat", 0, "dropoff latitude")
	cmd.Flags().Float64Var(&flags.dropoffLon, "dropoff-lon", 0, "dropoff longitude")
	cmd.Flags().Float64Var(&flags.cycleHours, "cycle-hours", 0, "on-duty hours already used in the 8-day cycle")
	cmd.Flags().StringVar(&flags.baseDate, "base-date", "", "schedule start date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "estimate routes locally instead of calling OSRM")

	for _, name := range []string{"current-lat", "current-lon", "pickup-lat", "pickup-lon", "dropoff-lat", "dropoff-lon"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runSimulate(flags *simulateFlags) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.NewStdoutLogger("error")
	clock := shared.NewRealClock()

	var baseDate time.Time
	if flags.baseDate != "" {
		baseDate, err = time.Parse(schedule.DateLayout, flags.baseDate)
		if err != nil {
			return fmt.Errorf("invalid --base-date %q: expected YYYY-MM-DD", flags.baseDate)
		}
	}

	var provider domainRouting.RouteProvider
	if flags.offline {
		provider = adapterRouting.NewMockRouteProvider()
	} else {
		provider = adapterRouting.NewOSRMClient(adapterRouting.ClientOptions{
			BaseURL:     cfg.Routing.BaseURL,
			Timeout:     cfg.Routing.Timeout,
			MaxRetries:  cfg.Routing.Retry.MaxAttempts,
			BackoffBase: cfg.Routing.Retry.BackoffBase,
			RateLimit:   rate.Limit(cfg.Routing.RateLimit.Requests),
			RateBurst:   cfg.Routing.RateLimit.Burst,
			Clock:       clock,
		})
	}

	handler := trip.NewSimulateTripHandler(provider, clock, nil)

	input := trip.TripInput{
		Current: trip.LocationInput{Lat: flags.currentLat, Lon: flags.currentLon},
		Pickup:  trip.LocationInput{Lat: flags.pickupLat, Lon: flags.pickupLon},
		Dropoff: trip.LocationInput{Lat: flags.dropoffLat, Lon: flags.dropoffLon},

		AccumulatedWeeklyHours: flags.cycleHours,
	}

	ctx := common.WithLogger(context.Background(), logger)
	result, err := handler.Handle(ctx, trip.SimulateTripCommand{
		Input:    input,
		BaseDate: baseDate,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
