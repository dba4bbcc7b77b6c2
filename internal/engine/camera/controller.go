package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/pkg/math"
)

// ErrInvalidLimits is returned for controller limits that leave no valid
// camera orientation.
var ErrInvalidLimits = errors.New("invalid camera limits")

// minOrbitRadius is the offset length below which rotate leaves the camera
// alone, since azimuth and polar angle are undefined at the pivot.
const minOrbitRadius = 1e-6

// minPivotDistance is how close a zoom may bring the camera to the pivot.
const minPivotDistance = 1e-3

// Handle is the camera surface the controller drives.
type Handle interface {
	Position() math.Vec3
	SetPosition(math.Vec3)
	TranslateOnAxis(axis math.Vec3, distance float32)
	LookAt(target math.Vec3)
	FieldOfView() float32
}

// Limits holds the navigation constraints, fixed at construction.
type Limits struct {
	// MinHeight is the lowest allowed camera Y.
	MinHeight float32
	// MinPolar and MaxPolar bound the angle from +Y, in radians, both in (0, pi).
	MinPolar float32
	MaxPolar float32
	// Epsilon keeps the polar angle away from the exact band edges.
	Epsilon float32
	// RotateSpeed scales rotation: a drag across the full viewport turns
	// RotateSpeed full circles.
	RotateSpeed float32
}

// DefaultLimits keeps the camera above the ground and above the horizon.
func DefaultLimits() Limits {
	return Limits{
		MinHeight:   10,
		MinPolar:    0.01,
		MaxPolar:    math.Pi / 2,
		Epsilon:     1e-3,
		RotateSpeed: 1,
	}
}

// Validate reports whether the limits leave a non-empty polar band.
func (l Limits) Validate() error {
	if l.MinPolar <= 0 || l.MaxPolar >= math.Pi || l.MinPolar >= l.MaxPolar {
		return fmt.Errorf("polar band [%g, %g] must satisfy 0 < min < max < pi: %w",
			l.MinPolar, l.MaxPolar, ErrInvalidLimits)
	}
	if l.Epsilon < 0 || l.MinPolar+l.Epsilon >= l.MaxPolar-l.Epsilon {
		return fmt.Errorf("epsilon %g leaves no polar band: %w", l.Epsilon, ErrInvalidLimits)
	}
	if l.RotateSpeed <= 0 {
		return fmt.Errorf("rotate speed %g: %w", l.RotateSpeed, ErrInvalidLimits)
	}
	if math32.IsNaN(l.MinHeight) || math32.IsInf(l.MinHeight, 0) {
		return fmt.Errorf("min height %g: %w", l.MinHeight, ErrInvalidLimits)
	}
	return nil
}

// PolarBand returns the effective clamp band for the polar angle.
func (l Limits) PolarBand() math.Range {
	return math.Range{Min: l.MinPolar + l.Epsilon, Max: l.MaxPolar - l.Epsilon}
}

// Controller converts pan, zoom and rotate requests into camera motion around
// a pivot. It is the only mutator of its camera and is not safe for
// concurrent use; all calls are expected on the UI thread.
type Controller struct {
	camera   Handle
	viewport viewport.Provider
	limits   Limits
	origin   math.Vec3

	listeners   []listener
	nextID      int
	dispatching bool
	pending     []Event
}

// NewController binds cam to vp, pivoting around origin. The camera is moved
// into the allowed region if needed and turned to face origin.
func NewController(cam Handle, vp viewport.Provider, origin math.Vec3, limits Limits) (*Controller, error) {
	if cam == nil {
		return nil, fmt.Errorf("nil camera: %w", ErrInvalidLimits)
	}
	if vp == nil {
		return nil, fmt.Errorf("nil viewport: %w", ErrInvalidLimits)
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		camera:   cam,
		viewport: vp,
		limits:   limits,
		origin:   origin,
	}
	c.orbit(0, 0)
	c.clampHeight()
	cam.LookAt(origin)
	return c, nil
}

// Camera returns the controlled camera.
func (c *Controller) Camera() Handle {
	return c.camera
}

// Limits returns the navigation constraints.
func (c *Controller) Limits() Limits {
	return c.limits
}

// Origin returns the current pivot.
func (c *Controller) Origin() math.Vec3 {
	return c.origin
}

// SetOrigin moves the pivot without moving the camera. The camera keeps its
// orientation until the next rotate.
func (c *Controller) SetOrigin(origin math.Vec3) {
	c.origin = origin
}

// PolarAngle returns the camera's current angle from +Y around the pivot.
func (c *Controller) PolarAngle() float32 {
	_, _, polar := math.CartesianToSpherical(c.camera.Position().Sub(c.origin))
	return polar
}

// Zoom moves the camera value units toward where it is looking (negative
// values back away). A forward zoom stops just short of the pivot. If the
// move would drop the camera below the floor, it is kept only vertically and
// the camera is set at exactly MinHeight, then swung back into the polar
// band when the floor put it outside.
func (c *Controller) Zoom(value float32) {
	prev := c.camera.Position()
	if value > 0 {
		value = math32.Min(value, math32.Max(prev.Distance(c.origin)-minPivotDistance, 0))
	}
	c.camera.TranslateOnAxis(AxisZ, -value)

	pos := c.camera.Position()
	if pos.Y < c.limits.MinHeight {
		pos = math.Vec3{X: prev.X, Y: c.limits.MinHeight, Z: prev.Z}
		c.camera.SetPosition(pos)
		if !c.limits.PolarBand().Contains(c.PolarAngle()) && c.orbit(0, 0) {
			c.camera.LookAt(c.origin)
			pos = c.camera.Position()
		}
	}
	c.emit(EventZoom, pos)
}

// Pan slides the camera along its local right and up axes by a screen-space
// delta. Pan speed scales with the camera's distance from the world origin so
// a drag tracks the cursor at any zoom level. The pivot moves with the camera.
func (c *Controller) Pan(delta math.Vec2) {
	h := c.viewport.Height()
	if h <= 0 {
		return
	}

	start := c.camera.Position()
	distance := start.Length() * tanHalfFov(c.camera.FieldOfView())
	scaled := delta.Scale(distance / h)

	c.camera.TranslateOnAxis(AxisX, -scaled.X)
	c.camera.TranslateOnAxis(AxisY, scaled.Y)

	pos := c.clampHeight()
	c.origin = c.origin.Add(pos.Sub(start))
	c.emit(EventPan, pos)
}

// Rotate orbits the camera around the pivot by a screen-space delta. A drag
// across the full viewport width turns RotateSpeed full circles.
func (c *Controller) Rotate(delta math.Vec2) {
	w, h := c.viewport.Width(), c.viewport.Height()
	if w <= 0 || h <= 0 {
		return
	}

	turn := 2 * math.Pi * c.limits.RotateSpeed
	if c.orbit(-turn*delta.X/w, -turn*delta.Y/h) {
		c.camera.LookAt(c.origin)
	}
	c.emit(EventRotate, c.camera.Position())
}

// orbit adds angle deltas to the camera's spherical offset from the pivot and
// repositions it with the polar angle clamped to the band. If the floor cuts
// the orbit, the polar angle is reduced to meet it; when no angle in the band
// satisfies the floor the camera is left where it was. Reports whether the
// camera moved.
func (c *Controller) orbit(dAzimuth, dPolar float32) bool {
	offset := c.camera.Position().Sub(c.origin)
	radius, azimuth, polar := math.CartesianToSpherical(offset)
	if radius < minOrbitRadius {
		return false
	}

	band := c.limits.PolarBand()
	azimuth += dAzimuth
	polar = band.Clamp(polar + dPolar)

	next := c.origin.Add(math.SphericalToCartesian(radius, azimuth, polar))
	if next.Y < c.limits.MinHeight {
		cos := (c.limits.MinHeight - c.origin.Y) / radius
		if cos > 1 {
			return false
		}
		floorPolar := math32.Acos(cos)
		if floorPolar < band.Min {
			return false
		}
		polar = math32.Min(polar, floorPolar)
		next = c.origin.Add(math.SphericalToCartesian(radius, azimuth, polar))
		next.Y = math32.Max(next.Y, c.limits.MinHeight)
	}

	c.camera.SetPosition(next)
	return true
}

// clampHeight lifts the camera to the floor if needed and returns its position.
func (c *Controller) clampHeight() math.Vec3 {
	pos := c.camera.Position()
	if pos.Y < c.limits.MinHeight {
		pos.Y = c.limits.MinHeight
		c.camera.SetPosition(pos)
	}
	return pos
}
