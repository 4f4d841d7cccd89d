package trip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

var (
	chicago      = LocationInput{Lat: 41.8781, Lon: -87.6298, Name: "Chicago, IL"}
	indianapolis = LocationInput{Lat: 39.7684, Lon: -86.1581, Name: "Indianapolis, IN"}
	nashville    = LocationInput{Lat: 36.1627, Lon: -86.7816, Name: "Nashville, TN"}

	baseDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

// stubRoutes returns canned routes in call order.
type stubRoutes struct {
	routes []*domainRouting.Route
	errs   []error
	calls  int
}

func (s *stubRoutes) GetRoute(ctx context.Context, from, to shared.Location) (*domainRouting.Route, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.routes[i], nil
}

func singleStepRoute(from, to LocationInput, miles, hours float64) *domainRouting.Route {
	step := domainRouting.RouteStep{
		Start: from.Location(),
		End:   to.Location(),
		Miles: miles,
		Hours: hours,
	}
	return &domainRouting.Route{TotalMiles: miles, TotalHours: hours, Steps: []domainRouting.RouteStep{step}}
}

func multiStepRoute(from, to LocationInput, legs [][2]float64) *domainRouting.Route {
	route := &domainRouting.Route{}
	prev := from.Location()
	for i, leg := range legs {
		end := to.Location()
		if i < len(legs)-1 {
			end = shared.Interpolate(from.Location(), to.Location(), float64(i+1)/float64(len(legs)))
		}
		route.Steps = append(route.Steps, domainRouting.RouteStep{
			Start: prev,
			End:   end,
			Miles: leg[0],
			Hours: leg[1],
		})
		route.TotalMiles += leg[0]
		route.TotalHours += leg[1]
		prev = end
	}
	return route
}

func findLog(t *testing.T, sched *ELDSchedule, note string) LogEntryDTO {
	t.Helper()
	for _, day := range sched.DailySummaries {
		for _, log := range day.Logs {
			if log.Notes == note {
				return log
			}
		}
	}
	t.Fatalf("no log entry with note %q", note)
	return LogEntryDTO{}
}

func hasLog(sched *ELDSchedule, note string) bool {
	for _, day := range sched.DailySummaries {
		for _, log := range day.Logs {
			if log.Notes == note {
				return true
			}
		}
	}
	return false
}

func simulate(t *testing.T, provider domainRouting.RouteProvider, input TripInput) *ELDSchedule {
	t.Helper()
	handler := NewSimulateTripHandler(provider, shared.NewMockClock(baseDate), nil)
	sched, err := handler.Handle(context.Background(), SimulateTripCommand{
		Input:    input,
		BaseDate: baseDate,
	})
	require.NoError(t, err)
	return sched
}

func TestShortTripFitsInOneDay(t *testing.T) {
	provider := &stubRoutes{routes: []*domainRouting.Route{
		singleStepRoute(chicago, indianapolis, 110, 2),
		singleStepRoute(indianapolis, nashville, 165, 3),
	}}

	sched := simulate(t, provider, TripInput{
		ID:      "trip-1",
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	assert.Equal(t, "trip-1", sched.TripID)
	assert.Equal(t, 1, sched.TotalDays)
	assert.Equal(t, "2025-06-01T06:30:00", sched.StartTime)
	assert.Equal(t, "2025-06-01T14:00:00", sched.EndTime)
	assert.InDelta(t, 275.0, sched.TotalMiles, 0.01)
	assert.InDelta(t, 5.0, sched.TotalDriveHours, 0.01)
	// 0.5 pre-trip + 5 driving + 1 pickup + 1 dropoff
	assert.InDelta(t, 7.5, sched.TotalOnDutyHours, 0.01)

	require.Len(t, sched.DailySummaries, 1)
	day := sched.DailySummaries[0]
	assert.Equal(t, "2025-06-01", day.Date)

	// OFF, pre-trip, drive, pickup, drive, dropoff, trailing off duty.
	require.Len(t, day.Logs, 7)
	assert.Equal(t, "OFF", day.Logs[0].Status)
	assert.Equal(t, "2025-06-01T00:00:00", day.Logs[0].StartTime)
	assert.Equal(t, "2025-06-01T06:30:00", day.Logs[0].EndTime)

	preTrip := day.Logs[1]
	assert.Equal(t, "ON", preTrip.Status)
	assert.Equal(t, "Pre-trip /TIV", preTrip.Notes)

	firstDrive := day.Logs[2]
	assert.Equal(t, "D", firstDrive.Status)
	assert.Equal(t, "Drive to Pickup", firstDrive.Notes)
	assert.InDelta(t, 110.0, firstDrive.Miles, 0.01)
	assert.Equal(t, "2025-06-01T07:00:00", firstDrive.StartTime)
	assert.Equal(t, "2025-06-01T09:00:00", firstDrive.EndTime)

	pickup := day.Logs[3]
	assert.Equal(t, "ON", pickup.Status)
	assert.Equal(t, "Pickup Activity", pickup.Notes)
	assert.InDelta(t, 1.0, pickup.Duration, 1e-9)

	tail := day.Logs[6]
	assert.Equal(t, "OFF", tail.Status)
	assert.Equal(t, "Post-trip TIV-5mins/Off duty", tail.Notes)
	assert.Equal(t, "2025-06-01T23:59:59", tail.EndTime)
}

func TestLongDriveInsertsThirtyMinuteBreak(t *testing.T) {
	// A single 10-hour leg: the 8-hour continuous-driving cap fires mid-step.
	provider := &stubRoutes{routes: []*domainRouting.Route{
		singleStepRoute(chicago, indianapolis, 550, 10),
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	brk := findLog(t, sched, "30-min break")
	assert.Equal(t, "OFF", brk.Status)
	assert.InDelta(t, 0.5, brk.Duration, 1e-9)
	assert.Equal(t, "2025-06-01T15:00:00", brk.StartTime)
	assert.Equal(t, "2025-06-01T15:30:00", brk.EndTime)

	// Exactly 8 hours were drivable before the break; the leg remainder is
	// not driven.
	drive := findLog(t, sched, "Drive to Pickup")
	assert.InDelta(t, 8.0, drive.Duration, 1e-9)
	assert.InDelta(t, 440.0, drive.Miles, 0.01)
}

func TestDailyDriveLimitRollsToNextDay(t *testing.T) {
	// 7h + 2h + 4h legs: the break fires an hour into the second leg, the
	// 11-hour daily cap three hours into the third.
	provider := &stubRoutes{routes: []*domainRouting.Route{
		multiStepRoute(chicago, indianapolis, [][2]float64{{350, 7}, {100, 2}, {200, 4}}),
		singleStepRoute(indianapolis, nashville, 50, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	assert.Equal(t, 2, sched.TotalDays)
	require.Len(t, sched.DailySummaries, 2)

	dayOne := sched.DailySummaries[0]
	assert.InDelta(t, 11.0, dayOne.DriveHours, 0.01)
	assert.InDelta(t, 550.0, dayOne.Miles, 0.01) // 350 + 50 + 150

	rest := findLog(t, sched, "Post-trip TIV/Overnight rest")
	assert.Equal(t, "SB", rest.Status)
	assert.Equal(t, "2025-06-01T18:30:00", rest.StartTime)

	continued := findLog(t, sched, "Post-trip TIV/Overnight rest (continued from previous day)")
	assert.Equal(t, "2025-06-02T06:30:00", continued.EndTime)

	// Day two reopens with a fresh pre-trip inspection before the pickup.
	dayTwo := sched.DailySummaries[1]
	var notes []string
	for _, log := range dayTwo.Logs {
		notes = append(notes, log.Notes)
	}
	assert.Contains(t, notes, "Pre-trip /TIV")
	assert.Contains(t, notes, "Pickup Activity")
	assert.InDelta(t, 1.0, dayTwo.DriveHours, 0.01)
}

func TestFuelStopAtThousandMiles(t *testing.T) {
	// Fast legs so the fuel interval runs out before the break clock does.
	provider := &stubRoutes{routes: []*domainRouting.Route{
		multiStepRoute(chicago, indianapolis, [][2]float64{{950, 7}, {300, 3}}),
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	fuel := findLog(t, sched, "Fuel stop")
	assert.Equal(t, "ON", fuel.Status)
	assert.InDelta(t, 0.5, fuel.Duration, 1e-9)
	// 950 miles in, the remaining 50 fuel miles take half an hour of the
	// second leg: 07:00 + 7h + 0.5h.
	assert.Equal(t, "2025-06-01T14:30:00", fuel.StartTime)
}

func TestWeeklyLimitInsertsRestart(t *testing.T) {
	provider := &stubRoutes{routes: []*domainRouting.Route{
		singleStepRoute(chicago, indianapolis, 150, 3),
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current:                chicago,
		Pickup:                 indianapolis,
		Dropoff:                nashville,
		AccumulatedWeeklyHours: 69,
	})

	// The restart begins one drivable hour into the trip, at 08:00, and runs
	// 34 hours across two midnights.
	assert.True(t, hasLog(sched, "34-hr restart period"))
	first := findLog(t, sched, "34-hr restart period")
	assert.Equal(t, "OFF", first.Status)
	assert.Equal(t, "2025-06-01T08:00:00", first.StartTime)

	// 34 hours from 08:00 lands at 18:00 the next day, so the restart is
	// split across exactly two calendar days.
	assert.True(t, hasLog(sched, "34-hr restart period (continued from previous day)"))
	assert.Len(t, sched.DailySummaries, 2)
	assert.Equal(t, 2, sched.TotalDays)
}

func TestBreakFiresWhenStepExactlyExhaustsCounter(t *testing.T) {
	// Nine 1-hour legs: the eighth ends precisely as the continuous-driving
	// counter saturates. The limit must fire at that boundary, not vanish.
	legs := make([][2]float64, 9)
	for i := range legs {
		legs[i] = [2]float64{55, 1}
	}
	provider := &stubRoutes{routes: []*domainRouting.Route{
		multiStepRoute(chicago, indianapolis, legs),
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	brk := findLog(t, sched, "30-min break")
	assert.Equal(t, "OFF", brk.Status)
	assert.Equal(t, "2025-06-01T15:00:00", brk.StartTime)
	assert.Equal(t, "2025-06-01T15:30:00", brk.EndTime)

	// The boundary step's distance is fully consumed and driving resumes
	// after the break: 9 pickup legs plus the 1-hour dropoff leg.
	assert.Equal(t, 1, sched.TotalDays)
	assert.InDelta(t, 10.0, sched.DailySummaries[0].DriveHours, 0.01)
	assert.InDelta(t, 550.0, sched.TotalMiles, 0.01)
}

func TestDailyLimitFiresAtExactStepBoundary(t *testing.T) {
	// 7h + 1h + 3h legs: the break saturates exactly at the end of the
	// second leg, the 11-hour daily cap exactly at the end of the third.
	provider := &stubRoutes{routes: []*domainRouting.Route{
		multiStepRoute(chicago, indianapolis, [][2]float64{{385, 7}, {55, 1}, {165, 3}}),
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	assert.Equal(t, 2, sched.TotalDays)
	require.Len(t, sched.DailySummaries, 2)

	dayOne := sched.DailySummaries[0]
	assert.InDelta(t, 11.0, dayOne.DriveHours, 1e-9)
	assert.InDelta(t, 605.0, dayOne.Miles, 0.01) // all three legs in full

	brk := findLog(t, sched, "30-min break")
	assert.Equal(t, "2025-06-01T15:00:00", brk.StartTime)

	rest := findLog(t, sched, "Post-trip TIV/Overnight rest")
	assert.Equal(t, "SB", rest.Status)
	assert.Equal(t, "2025-06-01T18:30:00", rest.StartTime)
}

func TestOversizedSingleStepTerminates(t *testing.T) {
	// One synthesized direct step longer than any duty day can hold. The
	// break limit must consume a partial instead of looping on day changes.
	direct := domainRouting.SynthesizeDirectStep(chicago.Location(), indianapolis.Location(), 1100, 20)
	provider := &stubRoutes{routes: []*domainRouting.Route{
		{TotalMiles: 1100, TotalHours: 20, Steps: []domainRouting.RouteStep{direct}},
		singleStepRoute(indianapolis, nashville, 55, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	assert.Equal(t, 1, sched.TotalDays)

	brk := findLog(t, sched, "30-min break")
	assert.Equal(t, "2025-06-01T15:00:00", brk.StartTime)

	drive := findLog(t, sched, "Drive to Pickup")
	assert.InDelta(t, 8.0, drive.Duration, 1e-9)
	assert.InDelta(t, 440.0, drive.Miles, 0.01)

	assert.True(t, hasLog(sched, "Dropoff Activity"))
}

func TestZeroDistancePickupHasNoDrivingSegment(t *testing.T) {
	// Truck already at the pickup: the synthesized direct step is negligible
	// and no DRIVING segment may appear for that phase.
	direct := domainRouting.SynthesizeDirectStep(chicago.Location(), chicago.Location(), 0, 0)
	provider := &stubRoutes{routes: []*domainRouting.Route{
		{TotalMiles: 0, TotalHours: 0, Steps: []domainRouting.RouteStep{direct}},
		singleStepRoute(chicago, nashville, 165, 3),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  chicago,
		Dropoff: nashville,
	})

	assert.False(t, hasLog(sched, "Drive to Pickup"))

	pickup := findLog(t, sched, "Pickup Activity")
	assert.Equal(t, "2025-06-01T07:00:00", pickup.StartTime)

	assert.True(t, hasLog(sched, "Drive to Dropoff"))
	assert.InDelta(t, 165.0, sched.TotalMiles, 0.01)
}

func TestRouteFailureLogsDiagnosticSegment(t *testing.T) {
	provider := &stubRoutes{
		routes: []*domainRouting.Route{
			nil,
			singleStepRoute(indianapolis, nashville, 165, 3),
		},
		errs: []error{domainRouting.NewUnreachableError("no route found between the given locations")},
	}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	diag := findLog(t, sched, "Error fetching route: no route found between the given locations")
	assert.Equal(t, "ON", diag.Status)
	assert.InDelta(t, 5.0/60.0, diag.Duration, 1e-6)

	// The second drive phase still runs.
	assert.True(t, hasLog(sched, "Drive to Dropoff"))
	assert.True(t, hasLog(sched, "Dropoff Activity"))
}

func TestInvalidInputRejected(t *testing.T) {
	handler := NewSimulateTripHandler(&stubRoutes{}, shared.NewMockClock(baseDate), nil)

	_, err := handler.Handle(context.Background(), SimulateTripCommand{
		Input: TripInput{
			Current:                chicago,
			Pickup:                 indianapolis,
			Dropoff:                nashville,
			AccumulatedWeeklyHours: 80,
		},
		BaseDate: baseDate,
	})

	require.Error(t, err)
	var invalid *shared.InvalidTripInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "AccumulatedWeeklyHours")
}

func TestZeroCoordinateComponentAccepted(t *testing.T) {
	// A latitude or longitude of exactly 0 is a real place, not a missing
	// field.
	err := ValidateTripInput(TripInput{
		Current: LocationInput{Lat: 0, Lon: -78.4678},  // on the equator
		Pickup:  LocationInput{Lat: 51.4779, Lon: 0},   // on the prime meridian
		Dropoff: LocationInput{Lat: -0.1807, Lon: -78.4678},
	})
	assert.NoError(t, err)
}

func TestOutOfRangeCoordinateRejected(t *testing.T) {
	err := ValidateTripInput(TripInput{
		Current: LocationInput{Lat: 91, Lon: -87.6298},
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	require.Error(t, err)
	var invalid *shared.InvalidTripInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "Lat")
}

func TestMissingCoordinatesRejected(t *testing.T) {
	handler := NewSimulateTripHandler(&stubRoutes{}, shared.NewMockClock(baseDate), nil)

	_, err := handler.Handle(context.Background(), SimulateTripCommand{
		Input:    TripInput{Current: chicago},
		BaseDate: baseDate,
	})

	require.Error(t, err)
	var invalid *shared.InvalidTripInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSimulationIsDeterministic(t *testing.T) {
	input := TripInput{
		ID:      "trip-repeat",
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	}
	newProvider := func() *stubRoutes {
		return &stubRoutes{routes: []*domainRouting.Route{
			multiStepRoute(chicago, indianapolis, [][2]float64{{350, 7}, {100, 2}, {200, 4}}),
			singleStepRoute(indianapolis, nashville, 50, 1),
		}}
	}

	first := simulate(t, newProvider(), input)
	second := simulate(t, newProvider(), input)

	assert.Equal(t, first, second)
}

func TestGeneratedTripIDWhenBlank(t *testing.T) {
	provider := &stubRoutes{routes: []*domainRouting.Route{
		singleStepRoute(chicago, indianapolis, 110, 2),
		singleStepRoute(indianapolis, nashville, 165, 3),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	assert.NotEmpty(t, sched.TripID)
}

func TestEveryDayIsFullyCovered(t *testing.T) {
	provider := &stubRoutes{routes: []*domainRouting.Route{
		multiStepRoute(chicago, indianapolis, [][2]float64{{350, 7}, {100, 2}, {200, 4}}),
		singleStepRoute(indianapolis, nashville, 50, 1),
	}}

	sched := simulate(t, provider, TripInput{
		Current: chicago,
		Pickup:  indianapolis,
		Dropoff: nashville,
	})

	for _, day := range sched.DailySummaries {
		var covered float64
		for i, log := range day.Logs {
			covered += log.Duration
			assert.Equal(t, day.Date, log.StartTime[:10], "segment starts on its day")
			if i > 0 {
				assert.Equal(t, day.Logs[i-1].EndTime, log.StartTime, "segments are contiguous")
			}
		}
		// Each day spans midnight to 23:59:59 minus the one-second split
		// boundaries.
		assert.InDelta(t, 24.0, covered, 0.01, "day %s", day.Date)

		assert.LessOrEqual(t, day.DriveHours, 11.0+1e-9)
	}
}
