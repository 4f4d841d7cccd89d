package routing

import (
	"fmt"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

// Steps below these thresholds carry no useful driving time and are skipped
// by the simulator.
const (
	MinStepMiles = 0.1
	MinStepHours = 0.01
)

// RouteStep is one leg of a routed path. Step i+1's start equals step i's
// end; the final step's end equals the route destination.
type RouteStep struct {
	Start    shared.Location `json:"start"`
	End      shared.Location `json:"end"`
	Miles    float64         `json:"miles"`
	Hours    float64         `json:"hours"`
	RoadName string          `json:"road_name,omitempty"`
}

// Negligible reports whether the step is too short to drive.
func (s RouteStep) Negligible() bool {
	return s.Miles < MinStepMiles || s.Hours < MinStepHours
}

// Route is a canonical routed path in miles and hours.
type Route struct {
	TotalMiles float64     `json:"total_miles"`
	TotalHours float64     `json:"total_hours"`
	Steps      []RouteStep `json:"steps"`
}

// SynthesizeDirectStep returns the single fallback step covering the whole
// journey, used when the upstream yields a route without steps.
func SynthesizeDirectStep(from, to shared.Location, totalMiles, totalHours float64) RouteStep {
	return RouteStep{
		Start:    from,
		End:      to,
		Miles:    totalMiles,
		Hours:    totalHours,
		RoadName: "Direct Route",
	}
}

func (r *Route) String() string {
	return fmt.Sprintf("Route(%.1fmi, %.2fh, %d steps)", r.TotalMiles, r.TotalHours, len(r.Steps))
}
