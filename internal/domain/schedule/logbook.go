package schedule

import "time"

const continuedSuffix = " (continued from previous day)"

// Logbook buckets log segments by the calendar date of their start time.
// Appends are the only mutation; existing entries are never rewritten.
type Logbook struct {
	days  map[string][]LogSegment
	order []string
}

// NewLogbook creates an empty logbook.
func NewLogbook() *Logbook {
	return &Logbook{days: make(map[string][]LogSegment)}
}

// Append writes a segment into the day bucket of its start date. A segment
// that crosses midnight is split at 23:59:59 / 00:00:00 boundaries, one
// piece per calendar day, with miles apportioned by duration; every piece
// after the first carries the continuation suffix on its note.
func (b *Logbook) Append(seg LogSegment) {
	total := seg.EndTime.Sub(seg.StartTime).Hours()

	start := seg.StartTime
	first := true
	for {
		dayEnd := endOfDay(start)
		if !seg.EndTime.After(dayEnd) {
			b.appendPart(seg, start, seg.EndTime, total, first)
			return
		}
		b.appendPart(seg, start, dayEnd, total, first)
		start = dayEnd.Add(time.Second) // 00:00:00 of the next day
		first = false
	}
}

func (b *Logbook) appendPart(seg LogSegment, start, end time.Time, totalHours float64, first bool) {
	miles := seg.Miles
	duration := end.Sub(start).Hours()
	if totalHours > 0 {
		miles = seg.Miles * (duration / totalHours)
	} else if !first {
		miles = 0
	}

	note := seg.Note
	if !first {
		note += continuedSuffix
	}

	b.append(NewLogSegment(seg.Status, start, end, seg.Location, miles, note))
}

func (b *Logbook) append(seg LogSegment) {
	key := seg.StartTime.Format(DateLayout)
	if _, ok := b.days[key]; !ok {
		b.order = append(b.order, key)
	}
	b.days[key] = append(b.days[key], seg)
}

// DailyLog is one day's ordered segments.
type DailyLog struct {
	Date     string
	Segments []LogSegment
}

// Days returns the per-day logs in the order the days were opened.
func (b *Logbook) Days() []DailyLog {
	out := make([]DailyLog, 0, len(b.order))
	for _, key := range b.order {
		segments := make([]LogSegment, len(b.days[key]))
		copy(segments, b.days[key])
		out = append(out, DailyLog{Date: key, Segments: segments})
	}
	return out
}

// DayCount returns how many calendar days hold at least one segment.
func (b *Logbook) DayCount() int {
	return len(b.order)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
