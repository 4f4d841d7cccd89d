package shared

import "fmt"

// Location represents an immutable geographic point with an advisory name.
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// NewLocation creates a location, synthesizing a name when none is given.
func NewLocation(lat, lon float64, name string) Location {
	if name == "" {
		name = SynthesizeName(lat, lon)
	}
	return Location{Lat: lat, Lon: lon, Name: name}
}

// SynthesizeName builds the standard coordinate-based display name.
func SynthesizeName(lat, lon float64) string {
	return fmt.Sprintf("Location at %.4f, %.4f", lat, lon)
}

// Interpolate returns the point at fractional progress p along the straight
// line from a to b. p is clamped to [0, 1]. The name is always re-synthesized
// from the interpolated coordinates.
func Interpolate(a, b Location, p float64) Location {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	lat := a.Lat + p*(b.Lat-a.Lat)
	lon := a.Lon + p*(b.Lon-a.Lon)
	return Location{Lat: lat, Lon: lon, Name: SynthesizeName(lat, lon)}
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.4f, %.4f)", l.Lat, l.Lon)
}
