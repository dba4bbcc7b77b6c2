// Package camera provides a perspective camera and the pointer-driven
// controller that orbits, pans and zooms it around a movable pivot.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoheat/pkg/math"
)

// Local axes in camera space. The camera looks down its local -Z.
var (
	AxisX = math.Vec3{X: 1}
	AxisY = math.Vec3{Y: 1}
	AxisZ = math.Vec3{Z: 1}
)

// Camera is a perspective camera with an explicit position and rotation.
type Camera struct {
	position math.Vec3
	rotation math.Mat4
	up       math.Vec3

	fovDeg float32
	near   float32
	far    float32
}

// New creates a camera at the origin looking down -Z.
func New(fovDeg, near, far float32) *Camera {
	return &Camera{
		rotation: math.Identity(),
		up:       math.Up,
		fovDeg:   fovDeg,
		near:     near,
		far:      far,
	}
}

// NewPerspective creates a camera with the defaults used by the heat map scene.
func NewPerspective() *Camera {
	return New(45, 0.1, 5000)
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 {
	return c.position
}

// SetPosition moves the camera without changing its rotation.
func (c *Camera) SetPosition(pos math.Vec3) {
	c.position = pos
}

// Rotation returns the camera-to-world rotation.
func (c *Camera) Rotation() math.Mat4 {
	return c.rotation
}

// FieldOfView returns the vertical field of view in degrees.
func (c *Camera) FieldOfView() float32 {
	return c.fovDeg
}

// SetFieldOfView sets the vertical field of view in degrees.
func (c *Camera) SetFieldOfView(deg float32) {
	c.fovDeg = deg
}

// Right returns the local +X axis in world space.
func (c *Camera) Right() math.Vec3 {
	return c.rotation.Column(0)
}

// UpAxis returns the local +Y axis in world space.
func (c *Camera) UpAxis() math.Vec3 {
	return c.rotation.Column(1)
}

// Forward returns the viewing direction (local -Z) in world space.
func (c *Camera) Forward() math.Vec3 {
	return c.rotation.Column(2).Scale(-1)
}

// TranslateOnAxis moves the camera distance units along a local-space axis.
func (c *Camera) TranslateOnAxis(axis math.Vec3, distance float32) {
	dir := c.rotation.TransformDirection(axis.Normalize())
	c.position = c.position.Add(dir.Scale(distance))
}

// LookAt rotates the camera so its -Z axis points at target.
func (c *Camera) LookAt(target math.Vec3) {
	back := c.position.Sub(target)
	if back.Length() == 0 {
		return
	}
	c.rotation = math.LookRotation(back, c.up)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	p := c.position
	return math.Translate(p.X, p.Y, p.Z).Mul(c.rotation).Inverse()
}

// ProjectionMatrix returns the perspective matrix for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.DegToRad(c.fovDeg), aspect, c.near, c.far)
}

// tanHalfFov returns tan(fov/2), the world-height-per-distance ratio.
func tanHalfFov(fovDeg float32) float32 {
	return math32.Tan(math.DegToRad(fovDeg) / 2)
}
