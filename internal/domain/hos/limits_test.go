package hos

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLimitBreakFiresFirstOnLongStep(t *testing.T) {
	c := Counters{}

	limit, until := c.NextLimit(600, 10)

	assert.Equal(t, LimitBreak, limit)
	assert.InDelta(t, 8.0, until, 1e-9)
}

func TestNextLimitFuelWinsWhenTankNearlyDue(t *testing.T) {
	c := Counters{MilesSinceFuel: 950}

	// 55 mph step: 50 remaining fuel miles are under an hour away, well
	// before the 8-hour break.
	limit, until := c.NextLimit(550, 10)

	assert.Equal(t, LimitFuel, limit)
	assert.InDelta(t, 50.0/550.0*10.0, until, 1e-9)
}

func TestNextLimitDailyBeforeBreakAfterBreakReset(t *testing.T) {
	c := Counters{DailyDrive: 9, DriveSinceBreak: 0}

	// 2 hours of daily driving left versus 8 before the next break.
	limit, until := c.NextLimit(300, 6)

	assert.Equal(t, LimitDaily, limit)
	assert.InDelta(t, 2.0, until, 1e-9)
}

func TestNextLimitWeekly(t *testing.T) {
	c := Counters{WeeklyDrive: 69, DriveSinceBreak: 6}

	limit, until := c.NextLimit(100, 3)

	assert.Equal(t, LimitWeekly, limit)
	assert.InDelta(t, 1.0, until, 1e-9)
}

func TestNextLimitTieBreakPrefersBreakOverDaily(t *testing.T) {
	// Both break and daily have exactly 3 hours of headroom. Break is
	// declared first, so it wins the tie.
	c := Counters{DailyDrive: 8, DriveSinceBreak: 5}

	limit, until := c.NextLimit(300, 6)

	assert.Equal(t, LimitBreak, limit)
	assert.InDelta(t, 3.0, until, 1e-9)
}

func TestNextLimitTieBreakPrefersFuelOverDaily(t *testing.T) {
	// Fuel and daily both fire after exactly 2 hours at 50 mph.
	c := Counters{DailyDrive: 9, MilesSinceFuel: 900, DriveSinceBreak: 0}

	limit, until := c.NextLimit(100, 2)

	assert.Equal(t, LimitFuel, limit)
	assert.InDelta(t, 2.0, until, 1e-9)
}

func TestNextLimitSkipsExhaustedCounters(t *testing.T) {
	// DriveSinceBreak already at the cap: its remainder is zero and it must
	// not be selected.
	c := Counters{DriveSinceBreak: 8}

	limit, until := c.NextLimit(300, 6)

	assert.Equal(t, LimitDaily, limit)
	assert.InDelta(t, 11.0, until, 1e-9)
}

func TestNextLimitNoneWhenEverythingExhausted(t *testing.T) {
	c := Counters{
		DailyDrive:      11,
		WeeklyDrive:     70,
		DriveSinceBreak: 8,
		MilesSinceFuel:  1000,
	}

	limit, until := c.NextLimit(100, 2)

	assert.Equal(t, LimitNone, limit)
	assert.True(t, math.IsInf(until, 1))
}

func TestNextLimitZeroMileStepIgnoresFuel(t *testing.T) {
	c := Counters{MilesSinceFuel: 999.9}

	limit, _ := c.NextLimit(0, 6)

	assert.Equal(t, LimitBreak, limit)
}

func TestNextLimitReportsExactBoundary(t *testing.T) {
	// One hour of headroom against a one-hour step: the remainder equals the
	// step length exactly and the caller fires the limit at the boundary.
	c := Counters{DriveSinceBreak: 7}

	limit, until := c.NextLimit(55, 1)

	assert.Equal(t, LimitBreak, limit)
	assert.InDelta(t, 1.0, until, 1e-9)
}

func TestDriveWindowHours(t *testing.T) {
	// 06:30 shift start plus the 30-minute pre-trip leaves 17 hours to
	// midnight.
	assert.InDelta(t, 17.0, DriveWindowHours(), 1e-9)
}

func TestAddDrivingChargesEveryCounter(t *testing.T) {
	c := Counters{}
	c.AddDriving(2.5, 130)

	assert.InDelta(t, 2.5, c.DailyDrive, 1e-9)
	assert.InDelta(t, 2.5, c.DailyOnDuty, 1e-9)
	assert.InDelta(t, 2.5, c.WeeklyDrive, 1e-9)
	assert.InDelta(t, 2.5, c.DriveSinceBreak, 1e-9)
	assert.InDelta(t, 130.0, c.MilesSinceFuel, 1e-9)
}

func TestResetDailyPreservesBreakAndWeeklyCounters(t *testing.T) {
	c := Counters{
		DailyDrive:      10,
		DailyOnDuty:     12,
		WeeklyDrive:     40,
		DriveSinceBreak: 3,
		MilesSinceFuel:  600,
	}

	c.ResetDaily()

	assert.Zero(t, c.DailyDrive)
	assert.Zero(t, c.DailyOnDuty)
	assert.InDelta(t, 40.0, c.WeeklyDrive, 1e-9)
	assert.InDelta(t, 3.0, c.DriveSinceBreak, 1e-9)
	assert.InDelta(t, 600.0, c.MilesSinceFuel, 1e-9)
}

func TestResetAfterRestartKeepsFuelInterval(t *testing.T) {
	c := Counters{
		DailyDrive:      5,
		DailyOnDuty:     6,
		WeeklyDrive:     70,
		DriveSinceBreak: 5,
		MilesSinceFuel:  400,
	}

	c.ResetAfterRestart()

	assert.Zero(t, c.WeeklyDrive)
	assert.Zero(t, c.DailyDrive)
	assert.Zero(t, c.DailyOnDuty)
	assert.Zero(t, c.DriveSinceBreak)
	assert.InDelta(t, 400.0, c.MilesSinceFuel, 1e-9)
}
