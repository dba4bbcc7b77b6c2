package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/geoheat/pkg/math"
)

func magnitudes(values ...float32) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Z: v}
	}
	return points
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(magnitudes(-2, 1, 3, 6))

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, -2.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.InDelta(t, 2, s.Mean, 1e-9)
	assert.InDelta(t, 3.36650, s.StdDev, 1e-4)
	assert.Equal(t, math.Range{Min: 0, Max: 6}, s.Bound, "negative minimum is floored at zero")
}

func TestComputeStatsMedian(t *testing.T) {
	s := ComputeStats(magnitudes(3, 1, 2))
	assert.Equal(t, 2.0, s.Median)
}

func TestComputeStatsSingle(t *testing.T) {
	s := ComputeStats(magnitudes(4))
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, math.Range{Min: 4, Max: 4}, s.Bound)
}

func TestComputeStatsAllNegative(t *testing.T) {
	s := ComputeStats(magnitudes(-5, -1))
	assert.Equal(t, math.Range{Min: 0, Max: 0}, s.Bound)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestNormalize(t *testing.T) {
	s := ComputeStats(magnitudes(0, 10))

	assert.InDelta(t, 0.5, s.Normalize(5), 1e-6)
	assert.Equal(t, float32(0), s.Normalize(-3))
	assert.Equal(t, float32(1), s.Normalize(25))

	flat := ComputeStats(magnitudes(2, 2))
	assert.Equal(t, float32(1), flat.Normalize(2))
}

func TestHistogram(t *testing.T) {
	edges, counts := Histogram(magnitudes(0, 1, 2, 3, 4), 2)

	assert.Len(t, edges, 3)
	assert.Equal(t, []float64{2, 3}, counts)

	edges, counts = Histogram(nil, 4)
	assert.Nil(t, edges)
	assert.Nil(t, counts)
}
