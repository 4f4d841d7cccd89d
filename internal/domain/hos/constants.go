// Package hos models U.S. federal Hours-of-Service limits for property
// carrying drivers: the counters a driver accumulates and the rule that
// decides which limit interrupts a stretch of driving first.
package hos

import "time"

// Rolling limits, in hours of driving (or miles for the fuel interval).
const (
	MaxDrivePerDay      = 11.0 // daily driving cap
	MaxOnDutyPerDay     = 14.0 // daily on-duty window, tracked but not an independent trigger
	MaxDriveBeforeBreak = 8.0  // continuous driving before a 30-minute break
	MaxWeekly           = 70.0 // 70-hour/8-day rule
	FuelStopDistance    = 1000.0
)

// Fixed durations of inserted events.
const (
	PickupDropoffTime = 60 * time.Minute
	PreTripInspection = 30 * time.Minute
	BreakDuration     = 30 * time.Minute
	FuelDuration      = 30 * time.Minute
	WeeklyRestart     = 34 * time.Hour
)

// The driver comes on duty at a fixed local time each day.
const (
	ShiftStartHour   = 6
	ShiftStartMinute = 30
)

// ShiftStart returns the shift start instant on the given day.
func ShiftStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		ShiftStartHour, ShiftStartMinute, 0, 0, day.Location())
}

// DriveWindowHours is the longest drivable stretch a fresh day offers, from
// the end of the morning pre-trip inspection to midnight.
func DriveWindowHours() float64 {
	return 24.0 - float64(ShiftStartHour) - float64(ShiftStartMinute)/60.0 - PreTripInspection.Hours()
}
