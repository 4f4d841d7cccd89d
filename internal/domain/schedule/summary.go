package schedule

// DailySummary folds one day's segments into totals.
type DailySummary struct {
	Date        string
	DriveHours  float64
	OnDutyHours float64
	Miles       float64
	Segments    []LogSegment
}

// TripSummary aggregates the per-day summaries. Values are unrounded;
// rounding happens at output time only.
type TripSummary struct {
	TotalMiles       float64
	TotalDriveHours  float64
	TotalOnDutyHours float64
	Days             []DailySummary
}

// Summarize folds the logbook into per-day and trip totals.
func Summarize(book *Logbook) TripSummary {
	var summary TripSummary
	for _, day := range book.Days() {
		ds := DailySummary{Date: day.Date, Segments: day.Segments}
		for _, seg := range day.Segments {
			if seg.Status == StatusDriving {
				ds.DriveHours += seg.DurationHours
			}
			if seg.Status.CountsAsOnDuty() {
				ds.OnDutyHours += seg.DurationHours
			}
			ds.Miles += seg.Miles
		}
		summary.TotalMiles += ds.Miles
		summary.TotalDriveHours += ds.DriveHours
		summary.TotalOnDutyHours += ds.OnDutyHours
		summary.Days = append(summary.Days, ds)
	}
	return summary
}
