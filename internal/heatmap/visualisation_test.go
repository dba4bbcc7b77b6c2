package heatmap

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/engine/picking"
	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/pkg/math"
)

func sample() []Point {
	return []Point{
		{X: 0, Y: 0, Z: 5},
		{X: 90, Y: 0, Z: 10},
		{X: -90, Y: 0, Z: 1},
	}
}

func TestNewVisualisationFlat(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	nodes := v.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, 3, v.Visible())

	assertVec3 := func(want, got math.Vec3) {
		t.Helper()
		assert.InDelta(t, want.X, got.X, 1e-4)
		assert.InDelta(t, want.Y, got.Y, 1e-4)
		assert.InDelta(t, want.Z, got.Z, 1e-4)
	}
	assertVec3(math.Vec3{Y: 10}, nodes[0].Position())
	assertVec3(math.Vec3{X: 64, Y: 10}, nodes[1].Position())
	assertVec3(math.Up, nodes[0].Up())
	assert.Equal(t, float32(5), nodes[0].Height())

	assert.Equal(t, "#b51212", nodes[1].Color.Hex(), "largest magnitude gets the high colour")
	assert.Equal(t, 10.0, v.Stats().Max)
}

func TestNewVisualisationRound(t *testing.T) {
	v, err := NewVisualisation(DefaultRoundSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	for _, n := range v.Nodes() {
		assert.InDelta(t, 100, n.Position().Length(), 1e-3)

		// Bars grow away from the centre.
		outward := n.Position().Normalize()
		assert.InDelta(t, 1, n.Up().Dot(outward), 1e-3)
	}
}

func TestNewVisualisationErrors(t *testing.T) {
	_, err := NewVisualisation(RoundSurface(-1), sample(), DefaultOptions())
	assert.ErrorIs(t, err, projection.ErrInvalidConfig)

	bad := append(sample(), Point{X: math32.NaN()})
	_, err = NewVisualisation(DefaultFlatSurface(), bad, DefaultOptions())
	assert.ErrorIs(t, err, projection.ErrNonFinite)
}

func TestBarBounds(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	box := v.Nodes()[0].Bounds()
	assert.InDelta(t, -0.25, box.Min.X, 1e-5)
	assert.InDelta(t, 0.25, box.Max.X, 1e-5)
	assert.InDelta(t, 10, box.Min.Y, 1e-5)
	assert.InDelta(t, 15, box.Max.Y, 1e-5)
}

func TestSetFilter(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, v.SetFilter(MagnitudeFilter(4, 20)))
	assert.False(t, v.Nodes()[2].Visible)

	assert.Equal(t, 3, v.SetFilter(Filter{}))

	east := math.Range{Min: 0, Max: 180}
	assert.Equal(t, 2, v.SetFilter(Filter{Longitude: &east}))
}

func TestFilterSurvivesReload(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)
	v.SetFilter(MagnitudeFilter(4, 20))

	require.NoError(t, v.SetPoints([]Point{{Z: 1}, {Z: 8}}))
	assert.Equal(t, 1, v.Visible())
}

func TestPick(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	down := picking.Ray{Origin: math.Vec3{Y: 100}, Direction: math.Vec3{Y: -1}}
	node, ok := v.Pick(down)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0, Z: 5}, node.Point)

	v.SetFilter(MagnitudeFilter(6, 20))
	_, ok = v.Pick(down)
	assert.False(t, ok, "hidden bars are not pickable")
}

func TestBarVertices(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, v.BarVertices(), 3*36*VertexStride)

	v.SetFilter(MagnitudeFilter(4, 20))
	verts := v.BarVertices()
	require.Len(t, verts, 2*36*VertexStride)

	// Top face of the first visible bar is unshaded.
	rgba := RGBA(v.Nodes()[0].Color, 1)
	assert.Equal(t, rgba[:], verts[3:7])
}

func TestSetMode(t *testing.T) {
	v, err := NewVisualisation(DefaultFlatSurface(), sample(), DefaultOptions())
	require.NoError(t, err)

	v.SetMode(ModeBasic)
	assert.Equal(t, Basic(1), v.Nodes()[1].Color)
}

func TestLineVertices(t *testing.T) {
	verts := LineVertices(DefaultFlatSurface().Outline(), DefaultGradient().Low, 0.5)
	assert.Len(t, verts, 24*VertexStride)
	assert.Equal(t, float32(0.5), verts[6])
}
