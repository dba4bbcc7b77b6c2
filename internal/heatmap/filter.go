package heatmap

import "github.com/Faultbox/geoheat/pkg/math"

// Filter selects which points are shown. Nil ranges do not constrain.
type Filter struct {
	Magnitude *math.Range
	Longitude *math.Range // logical x
	Latitude  *math.Range // logical y
}

// MagnitudeFilter shows points with magnitudes in [min, max].
func MagnitudeFilter(min, max float32) Filter {
	r := math.NewRange(min, max)
	return Filter{Magnitude: &r}
}

// Accepts reports whether p passes every set range.
func (f Filter) Accepts(p Point) bool {
	return within(f.Magnitude, p.Magnitude()) &&
		within(f.Longitude, p.X) &&
		within(f.Latitude, p.Y)
}

// IsZero reports whether the filter accepts everything.
func (f Filter) IsZero() bool {
	return f.Magnitude == nil && f.Longitude == nil && f.Latitude == nil
}

func within(r *math.Range, v float32) bool {
	return r == nil || r.Contains(v)
}
