package hos

import "math"

// Limit identifies which HOS resource runs out first during a driving step.
// The declaration order is the tie-break order when several limits would
// fire at the same instant.
type Limit int

const (
	LimitNone Limit = iota
	LimitBreak
	LimitFuel
	LimitDaily
	LimitWeekly
)

func (l Limit) String() string {
	switch l {
	case LimitBreak:
		return "break"
	case LimitFuel:
		return "fuel"
	case LimitDaily:
		return "daily"
	case LimitWeekly:
		return "weekly"
	default:
		return "none"
	}
}

// Counters holds the mutable HOS state of a single driver. All hour fields
// are decimal hours.
type Counters struct {
	DailyDrive      float64
	DailyOnDuty     float64
	WeeklyDrive     float64
	DriveSinceBreak float64
	MilesSinceFuel  float64
}

// AddDriving charges h hours and mi miles of driving against every counter.
func (c *Counters) AddDriving(h, mi float64) {
	c.DailyDrive += h
	c.DailyOnDuty += h
	c.WeeklyDrive += h
	c.DriveSinceBreak += h
	c.MilesSinceFuel += mi
}

// ResetAfterBreak clears the continuous-driving counter.
func (c *Counters) ResetAfterBreak() {
	c.DriveSinceBreak = 0
}

// ResetAfterFuel clears the fuel interval.
func (c *Counters) ResetAfterFuel() {
	c.MilesSinceFuel = 0
}

// ResetDaily clears the per-day counters at a day change. The
// continuous-driving counter deliberately survives the night; only a
// 30-minute off-duty break resets it.
func (c *Counters) ResetDaily() {
	c.DailyDrive = 0
	c.DailyOnDuty = 0
}

// ResetAfterRestart clears everything a 34-hour restart resets.
func (c *Counters) ResetAfterRestart() {
	c.WeeklyDrive = 0
	c.DailyDrive = 0
	c.DailyOnDuty = 0
	c.DriveSinceBreak = 0
}

// NextLimit returns the limit that fires first within a step of the given
// length, and the driving hours until it does. Counters already at or past
// a limit yield a non-positive remainder and are never selected; if nothing
// can fire the result is (LimitNone, +Inf).
//
// Candidates are evaluated in declaration order, so simultaneous exhaustion
// resolves as break < fuel < daily < weekly.
func (c *Counters) NextLimit(stepMiles, stepHours float64) (Limit, float64) {
	hoursToFuel := math.Inf(1)
	if stepMiles > 0 {
		hoursToFuel = (FuelStopDistance - c.MilesSinceFuel) / stepMiles * stepHours
	}

	candidates := []struct {
		limit     Limit
		remaining float64
	}{
		{LimitBreak, MaxDriveBeforeBreak - c.DriveSinceBreak},
		{LimitFuel, hoursToFuel},
		{LimitDaily, MaxDrivePerDay - c.DailyDrive},
		{LimitWeekly, MaxWeekly - c.WeeklyDrive},
	}

	best := LimitNone
	bestRemaining := math.Inf(1)
	for _, cand := range candidates {
		if cand.remaining <= 0 {
			continue
		}
		if cand.remaining < bestRemaining {
			best = cand.limit
			bestRemaining = cand.remaining
		}
	}
	return best, bestRemaining
}
