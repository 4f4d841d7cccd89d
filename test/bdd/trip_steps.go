package bdd

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/openfleet/eldsim/internal/application/trip"
	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// tripWorld carries scenario state between steps.
type tripWorld struct {
	input    trip.TripInput
	routes   []*domainRouting.Route
	schedule *trip.ELDSchedule
}

// scriptedRoutes returns the canned routes in drive-phase order.
type scriptedRoutes struct {
	routes []*domainRouting.Route
	calls  int
}

func (s *scriptedRoutes) GetRoute(ctx context.Context, from, to shared.Location) (*domainRouting.Route, error) {
	if s.calls >= len(s.routes) {
		return nil, domainRouting.NewUnreachableError("no scripted route for this leg")
	}
	route := s.routes[s.calls]
	s.calls++
	return route, nil
}

func (w *tripWorld) theTruckIsAt(lat, lon float64) error {
	w.input.Current = trip.LocationInput{Lat: lat, Lon: lon}
	return nil
}

func (w *tripWorld) cannedLeg(lat, lon, miles, hours float64) *domainRouting.Route {
	to := shared.NewLocation(lat, lon, "")
	from := w.input.Current.Location()
	if len(w.routes) > 0 {
		from = w.input.Pickup.Location()
	}
	return &domainRouting.Route{
		TotalMiles: miles,
		TotalHours: hours,
		Steps: []domainRouting.RouteStep{
			domainRouting.SynthesizeDirectStep(from, to, miles, hours),
		},
	}
}

func (w *tripWorld) thePickupIsAt(lat, lon, miles, hours float64) error {
	route := w.cannedLeg(lat, lon, miles, hours)
	w.input.Pickup = trip.LocationInput{Lat: lat, Lon: lon}
	w.routes = append(w.routes, route)
	return nil
}

func (w *tripWorld) theDropoffIsAt(lat, lon, miles, hours float64) error {
	route := w.cannedLeg(lat, lon, miles, hours)
	w.input.Dropoff = trip.LocationInput{Lat: lat, Lon: lon}
	w.routes = append(w.routes, route)
	return nil
}

func (w *tripWorld) theDriverHasUsedWeeklyHours(hours float64) error {
	w.input.AccumulatedWeeklyHours = hours
	return nil
}

func (w *tripWorld) theTripIsSimulatedOn(date string) error {
	baseDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}

	handler := trip.NewSimulateTripHandler(
		&scriptedRoutes{routes: w.routes},
		shared.NewMockClock(baseDate),
		nil,
	)

	w.schedule, err = handler.Handle(context.Background(), trip.SimulateTripCommand{
		Input:    w.input,
		BaseDate: baseDate,
	})
	return err
}

func (w *tripWorld) theScheduleSpansDays(days int) error {
	if w.schedule.TotalDays != days {
		return fmt.Errorf("expected %d days, got %d", days, w.schedule.TotalDays)
	}
	if len(w.schedule.DailySummaries) != days {
		return fmt.Errorf("expected %d daily summaries, got %d", days, len(w.schedule.DailySummaries))
	}
	return nil
}

func (w *tripWorld) theScheduleContainsSegment(status, note string) error {
	for _, day := range w.schedule.DailySummaries {
		for _, log := range day.Logs {
			if log.Status == status && log.Notes == note {
				return nil
			}
		}
	}
	return fmt.Errorf("no %q segment noted %q in the schedule", status, note)
}

func (w *tripWorld) theTotalMilesAre(miles float64) error {
	if diff := w.schedule.TotalMiles - miles; diff > 0.01 || diff < -0.01 {
		return fmt.Errorf("expected %.2f total miles, got %.2f", miles, w.schedule.TotalMiles)
	}
	return nil
}

func (w *tripWorld) theDailyDriveHoursNeverExceed(limit float64) error {
	for _, day := range w.schedule.DailySummaries {
		if day.DriveHours > limit+1e-9 {
			return fmt.Errorf("day %s drove %.2f hours, over the %.2f cap", day.Date, day.DriveHours, limit)
		}
	}
	return nil
}

// InitializeScenario registers the step definitions.
func InitializeScenario(sc *godog.ScenarioContext) {
	w := &tripWorld{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = tripWorld{}
		return ctx, nil
	})

	sc.Step(`^the truck is at (-?\d+\.?\d*), (-?\d+\.?\d*)$`, w.theTruckIsAt)
	sc.Step(`^the pickup is at (-?\d+\.?\d*), (-?\d+\.?\d*) reached by a (\d+\.?\d*) mile leg taking (\d+\.?\d*) hours$`, w.thePickupIsAt)
	sc.Step(`^the dropoff is at (-?\d+\.?\d*), (-?\d+\.?\d*) reached by a (\d+\.?\d*) mile leg taking (\d+\.?\d*) hours$`, w.theDropoffIsAt)
	sc.Step(`^the driver has already used (\d+\.?\d*) weekly on-duty hours$`, w.theDriverHasUsedWeeklyHours)
	sc.Step(`^the trip is simulated on (\d{4}-\d{2}-\d{2})$`, w.theTripIsSimulatedOn)
	sc.Step(`^the schedule spans (\d+) days?$`, w.theScheduleSpansDays)
	sc.Step(`^the schedule contains an? "([^"]*)" segment noted "([^"]*)"$`, w.theScheduleContainsSegment)
	sc.Step(`^the total miles are (\d+\.?\d*)$`, w.theTotalMilesAre)
	sc.Step(`^no day exceeds (\d+\.?\d*) hours of driving$`, w.theDailyDriveHoursNeverExceed)
}
