package trip

import (
	"github.com/openfleet/eldsim/internal/domain/schedule"
	"github.com/openfleet/eldsim/internal/domain/shared"
	"github.com/openfleet/eldsim/pkg/utils"
)

// ELDSchedule is the simulate-trip response. Timestamps are local
// `YYYY-MM-DDTHH:MM:SS` strings with no zone suffix; summary figures are
// rounded to two decimals at this boundary only.
type ELDSchedule struct {
	TripID           string            `json:"trip_id"`
	StartTime        string            `json:"start_time"`
	EndTime          string            `json:"end_time"`
	TotalMiles       float64           `json:"total_miles"`
	TotalDriveHours  float64           `json:"total_drive_hours"`
	TotalOnDutyHours float64           `json:"total_on_duty_hours"`
	TotalDays        int               `json:"total_days"`
	DailySummaries   []DailySummaryDTO `json:"daily_summaries"`
}

// DailySummaryDTO is one calendar day of the schedule.
type DailySummaryDTO struct {
	Date        string        `json:"date"`
	DriveHours  float64       `json:"drive_hours"`
	OnDutyHours float64       `json:"on_duty_hours"`
	Miles       float64       `json:"miles"`
	Logs        []LogEntryDTO `json:"logs"`
}

// LogEntryDTO is a single duty-status segment.
type LogEntryDTO struct {
	Status    string      `json:"status"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Duration  float64     `json:"duration"`
	Location  LocationDTO `json:"location"`
	Miles     float64     `json:"miles"`
	Notes     string      `json:"notes"`
}

// LocationDTO is a named geographic point.
type LocationDTO struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

func locationDTO(l shared.Location) LocationDTO {
	return LocationDTO{Lat: l.Lat, Lon: l.Lon, Name: l.Name}
}

// schedule folds the finished simulation into the response shape.
func (s *simulation) schedule(tripID string) *ELDSchedule {
	summary := schedule.Summarize(s.book)

	out := &ELDSchedule{
		TripID:     tripID,
		StartTime:  s.shiftStart.Format(schedule.TimestampLayout),
		EndTime:    s.now.Format(schedule.TimestampLayout),
		TotalMiles: utils.Round2(s.totalMiles),
		TotalDays:  s.dayCount,
	}

	var totalDrive, totalOnDuty float64
	for _, day := range summary.Days {
		dto := DailySummaryDTO{
			Date:        day.Date,
			DriveHours:  utils.Round2(day.DriveHours),
			OnDutyHours: utils.Round2(day.OnDutyHours),
			Miles:       utils.Round2(day.Miles),
		}
		for _, seg := range day.Segments {
			dto.Logs = append(dto.Logs, LogEntryDTO{
				Status:    string(seg.Status),
				StartTime: seg.StartTime.Format(schedule.TimestampLayout),
				EndTime:   seg.EndTime.Format(schedule.TimestampLayout),
				Duration:  seg.DurationHours,
				Location:  locationDTO(seg.Location),
				Miles:     seg.Miles,
				Notes:     seg.Note,
			})
		}
		totalDrive += dto.DriveHours
		totalOnDuty += dto.OnDutyHours
		out.DailySummaries = append(out.DailySummaries, dto)
	}

	out.TotalDriveHours = utils.Round2(totalDrive)
	out.TotalOnDutyHours = utils.Round2(totalOnDuty)
	return out
}
