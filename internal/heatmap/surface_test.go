package heatmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-3)

func project(t *testing.T, s Surface, p Point) math.Vec3 {
	t.Helper()
	proj, err := s.Projection()
	require.NoError(t, err)

	obj := projection.NewTransform(p.Scene())
	require.NoError(t, proj.Project(obj))
	return obj.Position()
}

func TestFlatSurfaceProjection(t *testing.T) {
	s := DefaultFlatSurface()

	tests := []struct {
		name  string
		point Point
		want  math.Vec3
	}{
		{"origin", Point{Z: 5}, math.Vec3{Y: 10}},
		{"east edge", Point{X: 180}, math.Vec3{X: 128, Y: 10}},
		{"west edge", Point{X: -180}, math.Vec3{X: -128, Y: 10}},
		{"north edge", Point{Y: 90}, math.Vec3{Y: 10, Z: -64}},
		{"south east", Point{X: 90, Y: -45, Z: 100}, math.Vec3{X: 64, Y: 10, Z: 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := project(t, s, tt.point)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundSurfaceProjection(t *testing.T) {
	s := DefaultRoundSurface()

	tests := []struct {
		name  string
		point Point
		want  math.Vec3
	}{
		{"equator at zero longitude", Point{}, math.Vec3{Z: 100}},
		{"north pole", Point{Y: 90}, math.Vec3{Y: 100}},
		{"south pole", Point{Y: -90}, math.Vec3{Y: -100}},
		{"equator east", Point{X: 90}, math.Vec3{X: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := project(t, s, tt.point)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSurfaceValidation(t *testing.T) {
	for _, s := range []Surface{
		FlatSurface(0, 10, 1),
		FlatSurface(10, 10, -1),
		RoundSurface(0),
		{Kind: projection.Kind(7)},
	} {
		_, err := s.Projection()
		assert.ErrorIs(t, err, projection.ErrInvalidConfig, "%+v", s)
	}
}

func TestCameraStart(t *testing.T) {
	assert.Equal(t, math.Vec3{Y: 100, Z: 300}, DefaultRoundSurface().CameraStart())
	assert.Equal(t, math.Vec3{Y: 100, Z: 200}, DefaultFlatSurface().CameraStart())
}

func TestOutline(t *testing.T) {
	slab := DefaultFlatSurface().Outline()
	assert.Len(t, slab, 24, "twelve slab edges")

	for _, p := range DefaultRoundSurface().Outline() {
		assert.InDelta(t, 100, p.Length(), 1e-3)
	}
}

func TestExtent(t *testing.T) {
	assert.Equal(t, float32(128), DefaultFlatSurface().Extent())
	assert.Equal(t, float32(100), DefaultRoundSurface().Extent())
}
