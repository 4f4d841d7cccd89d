package schedule

import (
	"fmt"
	"time"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

// DateLayout is the calendar-day bucket key format.
const DateLayout = "2006-01-02"

// TimestampLayout renders local timestamps with no zone suffix.
const TimestampLayout = "2006-01-02T15:04:05"

// LogSegment is a single contiguous duty-status entry.
//
// Invariants: DurationHours equals EndTime-StartTime in hours; Miles is zero
// unless Status is driving; StartTime and EndTime share a calendar date once
// the segment has passed through the Logbook.
type LogSegment struct {
	Status        DutyStatus
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64
	Location      shared.Location
	Miles         float64
	Note          string
}

// NewLogSegment builds a segment, deriving the duration from its bounds.
func NewLogSegment(status DutyStatus, start, end time.Time, location shared.Location, miles float64, note string) LogSegment {
	return LogSegment{
		Status:        status,
		StartTime:     start,
		EndTime:       end,
		DurationHours: end.Sub(start).Hours(),
		Location:      location,
		Miles:         miles,
		Note:          note,
	}
}

func (s LogSegment) String() string {
	return fmt.Sprintf("%s %s→%s (%.2fh, %.1fmi) %s",
		s.Status,
		s.StartTime.Format(TimestampLayout),
		s.EndTime.Format(TimestampLayout),
		s.DurationHours, s.Miles, s.Note)
}
