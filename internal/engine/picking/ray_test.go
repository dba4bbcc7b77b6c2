package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/pkg/math"
)

func TestNDC(t *testing.T) {
	vp := &viewport.Fixed{W: 800, H: 600, Origin: math.Vec2{X: 100, Y: 50}}

	tests := []struct {
		name   string
		screen math.Vec2
		want   math.Vec2
	}{
		{"centre", math.Vec2{X: 500, Y: 350}, math.Vec2{}},
		{"top left", math.Vec2{X: 100, Y: 50}, math.Vec2{X: -1, Y: 1}},
		{"bottom right", math.Vec2{X: 900, Y: 650}, math.Vec2{X: 1, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NDC(vp, tt.screen)
			assert.InDelta(t, tt.want.X, got.X, 1e-5)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-5)
		})
	}
}

func TestNDCEmptyViewport(t *testing.T) {
	assert.Equal(t, math.Vec2{}, NDC(&viewport.Fixed{}, math.Vec2{X: 10, Y: 10}))
}

func TestScreenToRayThroughCentre(t *testing.T) {
	vp := &viewport.Fixed{W: 800, H: 600}
	eye := math.Vec3{Z: 10}

	view := math.LookAt(eye, math.Vec3{}, math.Up)
	proj := math.Perspective(math.DegToRad(45), viewport.Aspect(vp), 0.1, 100)
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(vp, math.Vec2{X: 400, Y: 300}, inv)

	assert.InDelta(t, 0, ray.Direction.X, 1e-4)
	assert.InDelta(t, 0, ray.Direction.Y, 1e-4)
	assert.InDelta(t, -1, ray.Direction.Z, 1e-4)
	assert.InDelta(t, 9.9, ray.Origin.Z, 1e-3)
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight on", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"from inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, hit)
			assert.InDelta(t, tt.wantT, got, 1e-5)
		})
	}
}

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	d, hit := ray.IntersectSphere(math.Vec3{}, 2)
	require.True(t, hit)
	assert.InDelta(t, 8, d, 1e-5)

	_, hit = ray.IntersectSphere(math.Vec3{X: 5}, 2)
	assert.False(t, hit)
}

func TestIntersectPlaneY(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()}

	x, z, ok := ray.IntersectPlaneY(0)
	require.True(t, ok)
	assert.InDelta(t, 10, x, 1e-4)
	assert.InDelta(t, 0, z, 1e-4)

	_, _, ok = Ray{Direction: math.Vec3{X: 1}}.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestNearest(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 20}, Direction: math.Vec3{Z: -1}}
	boxes := []AABB{
		NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}),
		NewAABB(math.Vec3{X: -1, Y: -1, Z: 5}, math.Vec3{X: 1, Y: 1, Z: 6}),
		NewAABB(math.Vec3{X: 4, Y: 4, Z: 10}, math.Vec3{X: 5, Y: 5, Z: 11}),
	}

	i, d := Nearest(ray, boxes)
	assert.Equal(t, 1, i)
	assert.InDelta(t, 14, d, 1e-5)

	i, _ = Nearest(Ray{Origin: math.Vec3{Z: 20}, Direction: math.Vec3{Z: 1}}, boxes)
	assert.Equal(t, -1, i)
}

func TestNewAABBOrdersCorners(t *testing.T) {
	box := NewAABB(math.Vec3{X: 2, Y: -1, Z: 3}, math.Vec3{X: -2, Y: 1, Z: -3})
	assert.Equal(t, math.Vec3{X: -2, Y: -1, Z: -3}, box.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 1, Z: 3}, box.Max)
}
