package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/config"
	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/pkg/math"
)

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
}

func TestSurfaceFromConfig(t *testing.T) {
	cfg := config.Default().Surface

	s, err := Surface(cfg)
	require.NoError(t, err)
	assert.Equal(t, heatmap.DefaultFlatSurface(), s)

	cfg.Kind = "round"
	s, err = Surface(cfg)
	require.NoError(t, err)
	assert.Equal(t, projection.Spherical, s.Kind)
	assert.Equal(t, float32(100), s.Radius)

	cfg.Kind = "cube"
	_, err = Surface(cfg)
	assert.ErrorIs(t, err, projection.ErrInvalidConfig)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Points
	cfg.Mode = "basic"
	cfg.Size = 2

	opts, err := Options(cfg)
	require.NoError(t, err)
	assert.Equal(t, heatmap.ModeBasic, opts.Mode)
	assert.Equal(t, float32(2), opts.Footprint)
	assert.Equal(t, heatmap.DefaultGradient(), opts.Gradient)

	cfg.Gradient.High = "not a colour"
	_, err = Options(cfg)
	assert.Error(t, err)
}

func TestFilterFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		min, max float32
		accepts  []float32
		rejects  []float32
	}{
		{"unbounded", 0, 0, []float32{-5, 0, 1e9}, nil},
		{"floor only", 10, 0, []float32{10, 1e30}, []float32{9.9}},
		{"closed", 1, 5, []float32{1, 5}, []float32{0.5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter(config.PointsConfig{MinMagnitude: tt.min, MaxMagnitude: tt.max})
			for _, z := range tt.accepts {
				assert.True(t, f.Accepts(heatmap.Point{Z: z}), "%g", z)
			}
			for _, z := range tt.rejects {
				assert.False(t, f.Accepts(heatmap.Point{Z: z}), "%g", z)
			}
		})
	}
}

func TestLimitsFromConfig(t *testing.T) {
	l := Limits(config.Default().Camera)
	assert.Equal(t, float32(10), l.MinHeight)
	assert.InDelta(t, math32.Pi/2, l.MaxPolar, 1e-6)
	assert.InDelta(t, 0.5*math32.Pi/180, l.MinPolar, 1e-6)
	assert.NoError(t, l.Validate())
}

func TestLoaderFormat(t *testing.T) {
	cfg := config.Default().Data
	assert.Equal(t, heatmap.DefaultKeys, Loader(cfg).Keys)

	cfg.Format = "population"
	cfg.Limit = 3
	l := Loader(cfg)
	assert.Equal(t, heatmap.PopulationKeys, l.Keys)
	assert.Equal(t, 3, l.Limit)
}

func TestLoadPointsGenerated(t *testing.T) {
	cfg := config.Default().Data
	cfg.Generate = 50

	a, err := LoadPoints(cfg, 0)
	require.NoError(t, err)
	b, err := LoadPoints(cfg, 0)
	require.NoError(t, err)
	require.Len(t, a, 50)
	assert.Equal(t, a, b, "same seed, same points")

	for _, p := range a {
		assert.True(t, heatmap.Longitude.Contains(p.X), p.String())
		assert.True(t, heatmap.Latitude.Contains(p.Y), p.String())
		assert.True(t, p.Z >= 0 && p.Z <= 100, p.String())
	}

	cfg.Seed = 2
	c, err := LoadPoints(cfg, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestLoadPointsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "population.json")
	data := `[
		// capital cities
		{"longitude": 2.35, "latitude": 48.85, "population": 2.1},
		{"longitude": 139.69, "latitude": 35.68, "population": 13.9},
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := config.Default().Data
	cfg.Path = path
	cfg.Format = "population"

	points, err := LoadPoints(cfg, 0)
	require.NoError(t, err)
	assert.Equal(t, []heatmap.Point{
		{X: 2.35, Y: 48.85, Z: 2.1},
		{X: 139.69, Y: 35.68, Z: 13.9},
	}, points)
}

func newScene(t *testing.T, cfg *config.Config, points []heatmap.Point) *Scene {
	t.Helper()
	s, err := NewScene(cfg, points, &viewport.Fixed{W: 800, H: 600})
	require.NoError(t, err)
	return s
}

func TestNewSceneStartsOverSurface(t *testing.T) {
	s := newScene(t, config.Default(), []heatmap.Point{{Z: 5}, {X: 90, Z: 10}})

	assertVec3(t, math.Vec3{Y: 100, Z: 200}, s.Camera().Position())
	assertVec3(t, math.Vec3{}, s.Controller().Origin())
	assert.Equal(t, 2, s.Visualisation().Visible())

	cfg := config.Default()
	cfg.Surface.Kind = "round"
	s = newScene(t, cfg, nil)
	assertVec3(t, math.Vec3{Y: 100, Z: 300}, s.Camera().Position())
}

func TestNewSceneConfiguredPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{0, 50, 80}

	s := newScene(t, cfg, nil)
	assertVec3(t, math.Vec3{Y: 50, Z: 80}, s.Camera().Position())
}

func TestNewSceneInvalid(t *testing.T) {
	vp := &viewport.Fixed{W: 800, H: 600}

	cfg := config.Default()
	cfg.Points.Mode = "neon"
	_, err := NewScene(cfg, nil, vp)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Camera.MinPolarDeg = 0
	_, err = NewScene(cfg, nil, vp)
	assert.Error(t, err)

	_, err = NewScene(config.Default(), []heatmap.Point{{X: math32.NaN()}}, vp)
	assert.Error(t, err)
}

func TestSceneReset(t *testing.T) {
	s := newScene(t, config.Default(), []heatmap.Point{{Z: 5}})
	start := s.Camera().Position()

	s.Controller().Pan(math.Vec2{X: 120, Y: 40})
	s.Controller().Rotate(math.Vec2{X: 200})
	require.NotEqual(t, math.Vec3{}, s.Controller().Origin())
	moves := s.Backdrop().Moves()

	s.Reset()
	assertVec3(t, start, s.Camera().Position())
	assertVec3(t, math.Vec3{}, s.Controller().Origin())
	assert.Equal(t, moves+1, s.Backdrop().Moves())
	assertVec3(t, start, s.Backdrop().Position())
}

func TestSceneResetKeepsConstrainedStart(t *testing.T) {
	cfg := config.Default()
	// Straight above the origin, outside the polar band.
	cfg.Camera.Position = [3]float32{0, 300, 0}
	s := newScene(t, cfg, []heatmap.Point{{Z: 5}})

	band := s.Controller().Limits().PolarBand()
	start := s.Camera().Position()
	assert.InDelta(t, band.Min, s.Controller().PolarAngle(), 1e-4)

	s.Controller().Pan(math.Vec2{X: 50, Y: 50})
	s.Reset()

	assertVec3(t, start, s.Camera().Position())
	assert.InDelta(t, band.Min, s.Controller().PolarAngle(), 1e-4)
}

func TestSceneGeometryRebuildsOnChange(t *testing.T) {
	s := newScene(t, config.Default(), []heatmap.Point{{Z: 5}, {X: 90, Z: 10}})

	bars, lines, changed := s.Geometry()
	require.True(t, changed)
	assert.Len(t, bars, 2*36*heatmap.VertexStride)
	assert.Len(t, lines, len(s.Visualisation().Surface().Outline())*heatmap.VertexStride)

	_, _, changed = s.Geometry()
	assert.False(t, changed)

	assert.Equal(t, heatmap.ModeBasic, s.ToggleMode())
	_, _, changed = s.Geometry()
	assert.True(t, changed)

	assert.Equal(t, 1, s.SetFilter(heatmap.MagnitudeFilter(6, 20)))
	bars, _, changed = s.Geometry()
	assert.True(t, changed)
	assert.Len(t, bars, 36*heatmap.VertexStride)

	require.NoError(t, s.SetPoints([]heatmap.Point{{Z: 7}, {Z: 8}, {Z: 1}}))
	bars, _, changed = s.Geometry()
	assert.True(t, changed)
	assert.Len(t, bars, 2*36*heatmap.VertexStride)
	assert.Equal(t, heatmap.ModeBasic, s.Visualisation().Options().Mode)
}

func TestSceneBackdropFollowsCamera(t *testing.T) {
	s := newScene(t, config.Default(), nil)
	s.Controller().Zoom(50)

	assertVec3(t, s.Camera().Position(), s.Backdrop().Position())
	assert.Len(t, s.BackdropLines(), 24*heatmap.VertexStride)
}

func TestSceneHoverTitle(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{0, 300, 0}
	s := newScene(t, cfg, []heatmap.Point{{Z: 5}})

	assert.Equal(t, "geoheat - 1/1 points - gradient", s.Title())

	node, ok := s.Hover(math.Vec2{X: 400, Y: 300})
	require.True(t, ok)
	assert.Equal(t, heatmap.Point{Z: 5}, node.Point)
	assert.Equal(t, "geoheat - 1/1 points - gradient - (0.00, 0.00) = 5.00", s.Title())

	_, ok = s.Hover(math.Vec2{})
	assert.False(t, ok)
	assert.Equal(t, "geoheat - 1/1 points - gradient", s.Title())
}

func TestSceneHoverLines(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{0, 300, 0}
	s := newScene(t, cfg, []heatmap.Point{{Z: 5}})

	assert.Empty(t, s.HoverLines())
	_, ok := s.Hover(math.Vec2{X: 400, Y: 300})
	require.True(t, ok)
	assert.Len(t, s.HoverLines(), 24*heatmap.VertexStride)

	s.SetFilter(heatmap.MagnitudeFilter(6, 10))
	assert.Empty(t, s.HoverLines())
}
