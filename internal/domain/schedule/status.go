// Package schedule holds the ELD log model: duty-status segments, the
// per-day logbook they are written into, and the roll-ups derived from it.
package schedule

// DutyStatus is one of the four ELD duty-status codes.
type DutyStatus string

const (
	StatusDriving DutyStatus = "D"   // driving
	StatusOnDuty  DutyStatus = "ON"  // on duty, not driving
	StatusOffDuty DutyStatus = "OFF" // off duty
	StatusSleeper DutyStatus = "SB"  // sleeper berth
)

// CountsAsOnDuty reports whether the status accrues on-duty time.
func (s DutyStatus) CountsAsOnDuty() bool {
	return s == StatusDriving || s == StatusOnDuty
}
