package routing

import (
	"context"
	"math"

	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// MockRouteProvider produces straight-line routes without calling any
// upstream service. Useful for tests and offline development.
type MockRouteProvider struct {
	// AverageSpeedMPH converts distance to duration; defaults to 55.
	AverageSpeedMPH float64
	// Err, when set, is returned by every call.
	Err error
}

// NewMockRouteProvider creates a mock provider with default speed.
func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{AverageSpeedMPH: 55}
}

// GetRoute returns a single-step direct route using an equirectangular
// distance approximation, good enough for simulated trips.
func (p *MockRouteProvider) GetRoute(ctx context.Context, from, to shared.Location) (*domainRouting.Route, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	speed := p.AverageSpeedMPH
	if speed <= 0 {
		speed = 55
	}

	miles := approximateMiles(from, to)
	hours := miles / speed

	return &domainRouting.Route{
		TotalMiles: miles,
		TotalHours: hours,
		Steps: []domainRouting.RouteStep{
			domainRouting.SynthesizeDirectStep(from, to, miles, hours),
		},
	}, nil
}

// approximateMiles estimates great-circle distance with an equirectangular
// projection; adequate for the continental distances this tool simulates.
func approximateMiles(a, b shared.Location) float64 {
	const earthRadiusMiles = 3958.8

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := latB - latA
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	x := dLon * math.Cos((latA+latB)/2)
	return earthRadiusMiles * math.Sqrt(dLat*dLat+x*x)
}
