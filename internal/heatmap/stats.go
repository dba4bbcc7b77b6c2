package heatmap

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/geoheat/pkg/math"
)

// Stats summarises the magnitudes of a dataset.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64

	// Bound is the colour scale: [max(0, Min), Max].
	Bound math.Range
}

// ComputeStats summarises points. An empty slice yields the zero Stats.
func ComputeStats(points []Point) Stats {
	if len(points) == 0 {
		return Stats{}
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Magnitude())
	}

	s := Stats{
		Count: len(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		s.StdDev = 0
	}

	sort.Float64s(values)
	s.Median = stat.Quantile(0.5, stat.Empirical, values, nil)

	low := s.Min
	if low < 0 {
		low = 0
	}
	high := s.Max
	if high < low {
		high = low
	}
	s.Bound = math.Range{Min: float32(low), Max: float32(high)}
	return s
}

// Normalize maps a magnitude into [0, 1] on the colour scale. A dataset whose
// magnitudes are all equal maps every point to 1.
func (s Stats) Normalize(magnitude float32) float32 {
	if s.Bound.IsDegenerate() {
		return 1
	}
	unit := math.Range{Min: 0, Max: 1}
	return unit.Clamp(math.Remap(s.Bound, unit, magnitude))
}

// Histogram counts magnitudes into n equal-width bins over [Min, Max].
func Histogram(points []Point, n int) (edges []float64, counts []float64) {
	if len(points) == 0 || n <= 0 {
		return nil, nil
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Magnitude())
	}
	sort.Float64s(values)

	lo, hi := values[0], values[len(values)-1]
	if lo == hi {
		hi = lo + 1
	}
	edges = make([]float64, n+1)
	floats.Span(edges, lo, hi)
	// stat.Histogram requires the last edge to exceed the largest value.
	edges[n] = nextUp(edges[n])

	counts = stat.Histogram(nil, edges, values, nil)
	return edges, counts
}

func nextUp(v float64) float64 {
	if v == 0 {
		return 1e-12
	}
	if v > 0 {
		return v * (1 + 1e-12)
	}
	return v * (1 - 1e-12)
}
