package schedule

import (
	"time"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

// Accumulator coalesces consecutive like-kind driving activity into a single
// log segment. It holds at most one open segment; any status change or
// explicit event insertion flushes it first.
type Accumulator struct {
	book *Logbook
	open *openSegment
}

type openSegment struct {
	status       DutyStatus
	start        time.Time
	location     shared.Location
	miles        float64
	activityType string
	note         string
}

// NewAccumulator creates an accumulator emitting into the given logbook.
func NewAccumulator(book *Logbook) *Accumulator {
	return &Accumulator{book: book}
}

// RecordDriving extends the open driving segment when its activity type
// matches; otherwise it flushes and opens a new driving segment starting at
// now from the given location.
func (a *Accumulator) RecordDriving(now time.Time, location shared.Location, miles float64, activityType, note string) {
	if a.open != nil && a.open.status == StatusDriving && a.open.activityType == activityType {
		a.open.miles += miles
		return
	}

	a.Flush(now)
	a.open = &openSegment{
		status:       StatusDriving,
		start:        now,
		location:     location,
		miles:        miles,
		activityType: activityType,
		note:         note,
	}
}

// Flush emits the open segment with now as its end time and clears the slot.
// A nil open slot is a no-op.
func (a *Accumulator) Flush(now time.Time) {
	if a.open == nil {
		return
	}
	a.book.Append(NewLogSegment(a.open.status, a.open.start, now, a.open.location, a.open.miles, a.open.note))
	a.open = nil
}

// HasOpen reports whether a segment is currently accumulating.
func (a *Accumulator) HasOpen() bool {
	return a.open != nil
}
