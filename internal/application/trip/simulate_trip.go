package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openfleet/eldsim/internal/application/common"
	"github.com/openfleet/eldsim/internal/domain/hos"
	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/schedule"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// MetricsRecorder receives simulation outcomes. Implementations must accept
// calls from concurrent simulations.
type MetricsRecorder interface {
	ObserveSimulation(outcome string, totalDays int, elapsed time.Duration)
}

// SimulateTripHandler computes a compliant ELD schedule for a trip. The
// handler itself is stateless; each Handle call owns its simulation state
// end-to-end, so concurrent calls share nothing mutable.
type SimulateTripHandler struct {
	routes  domainRouting.RouteProvider
	clock   shared.Clock
	metrics MetricsRecorder
}

// NewSimulateTripHandler creates a handler. metrics may be nil.
func NewSimulateTripHandler(routes domainRouting.RouteProvider, clock shared.Clock, metrics MetricsRecorder) *SimulateTripHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SimulateTripHandler{routes: routes, clock: clock, metrics: metrics}
}

// Handle validates the trip and runs the simulation. Identical inputs with
// identical route responses and base date produce identical schedules.
func (h *SimulateTripHandler) Handle(ctx context.Context, cmd SimulateTripCommand) (*ELDSchedule, error) {
	started := h.clock.Now()

	if err := ValidateTripInput(cmd.Input); err != nil {
		h.observe("rejected", 0, started)
		return nil, err
	}

	baseDate := cmd.BaseDate
	if baseDate.IsZero() {
		baseDate = shared.Midnight(h.clock.Now())
	}

	tripID := cmd.Input.ID
	if tripID == "" {
		tripID = uuid.New().String()
	}

	sim := newSimulation(cmd.Input, baseDate)
	sim.run(ctx, h.routes)

	sched := sim.schedule(tripID)
	h.observe("completed", sched.TotalDays, started)

	common.LoggerFromContext(ctx).Log("INFO", "Trip simulation completed", map[string]interface{}{
		"trip_id":     tripID,
		"total_days":  sched.TotalDays,
		"total_miles": sched.TotalMiles,
	})
	return sched, nil
}

func (h *SimulateTripHandler) observe(outcome string, days int, started time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveSimulation(outcome, days, h.clock.Now().Sub(started))
	}
}

// phase is one of the four ordered trip phases.
type phase struct {
	name         string
	activityType string
	destination  shared.Location
	drive        bool
	dropoff      bool
}

// simulation is the mutable state of one trip run, owned by a single
// goroutine for its whole lifetime.
type simulation struct {
	book     *schedule.Logbook
	acc      *schedule.Accumulator
	counters hos.Counters

	input              TripInput
	now                time.Time
	currentDay         time.Time // midnight of the active calendar day
	dayCount           int
	truck              shared.Location
	destinationReached bool
	totalMiles         float64

	shiftStart time.Time
}

func newSimulation(input TripInput, baseDate time.Time) *simulation {
	book := schedule.NewLogbook()
	return &simulation{
		input:      input,
		book:       book,
		acc:        schedule.NewAccumulator(book),
		counters:   hos.Counters{WeeklyDrive: input.AccumulatedWeeklyHours},
		currentDay: baseDate,
		dayCount:   1,
		truck:      input.Current.Location(),
		shiftStart: hos.ShiftStart(baseDate),
	}
}

func (s *simulation) run(ctx context.Context, routes domainRouting.RouteProvider) {
	s.initShift()

	for _, p := range s.phases() {
		if p.drive {
			s.drivePhase(ctx, routes, p)
		} else {
			s.activityPhase(p)
		}
	}

	s.acc.Flush(s.now)
	if s.destinationReached {
		s.book.Append(schedule.NewLogSegment(
			schedule.StatusOffDuty, s.now, endOfDay(s.now), s.truck, 0,
			"Post-trip TIV-5mins/Off duty"))
	}
}

// phases builds the four ordered segments of every trip. Drive phases start
// wherever the truck currently is, so destinations alone are enough.
func (s *simulation) phases() []phase {
	return []phase{
		{name: "Drive to Pickup", activityType: "drive_to_pickup", destination: s.input.Pickup.Location(), drive: true},
		{name: "Pickup Activity"},
		{name: "Drive to Dropoff", activityType: "drive_to_dropoff", destination: s.input.Dropoff.Location(), drive: true},
		{name: "Dropoff Activity", dropoff: true},
	}
}

// initShift opens the first day: off duty from midnight, then the pre-trip
// inspection, leaving the clock at 07:00.
func (s *simulation) initShift() {
	midnight := s.currentDay
	preTripEnd := s.shiftStart.Add(hos.PreTripInspection)

	s.book.Append(schedule.NewLogSegment(
		schedule.StatusOffDuty, midnight, s.shiftStart, s.truck, 0,
		"Off duty - Before shift start"))
	s.book.Append(schedule.NewLogSegment(
		schedule.StatusOnDuty, s.shiftStart, preTripEnd, s.truck, 0,
		"Pre-trip /TIV"))

	s.now = preTripEnd
}

func (s *simulation) drivePhase(ctx context.Context, routes domainRouting.RouteProvider, p phase) {
	route, err := routes.GetRoute(ctx, s.truck, p.destination)
	if err != nil {
		s.routeFailure(err)
		return
	}

	steps := route.Steps
	for i := 0; i < len(steps); {
		step := steps[i]
		if step.Negligible() {
			i++
			continue
		}

		// A step that would cross midnight ends the day first; the step is
		// retried against the fresh day. A step too long for even a fresh
		// day falls through so a limit consumes a partial and progress is
		// made.
		stepEnd := s.now.Add(hours(step.Hours))
		if startOfDay(stepEnd).After(s.currentDay) && step.Hours <= hos.DriveWindowHours() {
			s.dayChange()
			continue
		}

		// A limit saturating exactly at the step boundary fires there, with
		// the step's distance fully consumed; otherwise its counter would
		// read zero remaining and never be selected again.
		limit, untilLimit := s.counters.NextLimit(step.Miles, step.Hours)
		if limit != hos.LimitNone && untilLimit <= step.Hours {
			s.driveUntilLimit(step, limit, untilLimit, p)
			i++
			continue
		}

		// The whole step fits.
		s.acc.RecordDriving(s.now, s.truck, step.Miles, p.activityType, p.name)
		s.totalMiles += step.Miles
		s.counters.AddDriving(step.Hours, step.Miles)
		s.now = s.now.Add(hours(step.Hours))
		s.truck = shared.NewLocation(step.End.Lat, step.End.Lon, "")
		i++
	}

	s.truck = p.destination
}

// driveUntilLimit consumes the drivable prefix of a step, moves the truck to
// the interpolated point where the limit fires, and applies the recovery
// action. The remainder of the step is forfeited.
func (s *simulation) driveUntilLimit(step domainRouting.RouteStep, limit hos.Limit, untilLimit float64, p phase) {
	fraction := untilLimit / step.Hours
	partialMiles := fraction * step.Miles

	s.acc.RecordDriving(s.now, s.truck, partialMiles, p.activityType, p.name)
	s.totalMiles += partialMiles
	s.counters.AddDriving(untilLimit, partialMiles)
	s.now = s.now.Add(hours(untilLimit))
	s.truck = shared.Interpolate(step.Start, step.End, fraction)

	s.acc.Flush(s.now)

	switch limit {
	case hos.LimitBreak:
		s.insertEvent(schedule.StatusOffDuty, hos.BreakDuration, "30-min break")
		s.counters.ResetAfterBreak()
		s.counters.DailyOnDuty += hos.BreakDuration.Hours()

	case hos.LimitFuel:
		s.insertEvent(schedule.StatusOnDuty, hos.FuelDuration, "Fuel stop")
		s.counters.ResetAfterFuel()
		s.counters.DailyOnDuty += hos.FuelDuration.Hours()

	case hos.LimitDaily:
		s.dayChange()

	case hos.LimitWeekly:
		s.insertEvent(schedule.StatusOffDuty, hos.WeeklyRestart, "34-hr restart period")
		s.counters.ResetAfterRestart()
		s.currentDay = startOfDay(s.now)
		s.dayCount++
	}
}

// insertEvent emits a fixed-duration segment at the truck's location and
// advances the clock past it.
func (s *simulation) insertEvent(status schedule.DutyStatus, d time.Duration, note string) {
	end := s.now.Add(d)
	s.book.Append(schedule.NewLogSegment(status, s.now, end, s.truck, 0, note))
	s.now = end
}

// dayChange closes the day with an overnight rest through the next shift
// start, runs the morning pre-trip, and resets the per-day counters.
func (s *simulation) dayChange() {
	s.acc.Flush(s.now)

	restStatus := schedule.StatusSleeper
	if s.destinationReached {
		restStatus = schedule.StatusOffDuty
	}

	nextShiftStart := hos.ShiftStart(s.now).AddDate(0, 0, 1)
	s.book.Append(schedule.NewLogSegment(
		restStatus, s.now, nextShiftStart, s.truck, 0,
		"Post-trip TIV/Overnight rest"))

	preTripEnd := nextShiftStart.Add(hos.PreTripInspection)
	s.book.Append(schedule.NewLogSegment(
		schedule.StatusOnDuty, nextShiftStart, preTripEnd, s.truck, 0,
		"Pre-trip /TIV"))

	s.counters.ResetDaily()
	s.currentDay = startOfDay(nextShiftStart)
	s.now = preTripEnd
	s.dayCount++
}

// activityPhase emits the fixed on-duty block for a pickup or dropoff.
func (s *simulation) activityPhase(p phase) {
	s.acc.Flush(s.now)
	s.insertEvent(schedule.StatusOnDuty, hos.PickupDropoffTime, p.name)
	s.counters.DailyOnDuty += hos.PickupDropoffTime.Hours()

	if p.dropoff {
		s.destinationReached = true
	}
}

// routeFailure records the diagnostic on-duty segment for a drive phase
// whose route could not be fetched and skips the phase.
func (s *simulation) routeFailure(err error) {
	s.acc.Flush(s.now)

	end := s.now.Add(5 * time.Minute)
	s.book.Append(schedule.NewLogSegment(
		schedule.StatusOnDuty, s.now, end, s.truck, 0,
		fmt.Sprintf("Error fetching route: %s", err.Error())))
	s.now = end
	s.counters.DailyOnDuty += 0.083
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
