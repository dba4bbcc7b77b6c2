package projection

import "github.com/Faultbox/geoheat/pkg/math"

type params struct {
	target    math.Vec3
	radius    float32
	offset    float32
	hasAngles bool
	azimuth   float32
	polar     float32
}

// Override replaces a config value for a single Project call.
type Override func(*params)

// WithRadius sets the sphere radius. Zero keeps the configured radius.
func WithRadius(radius float32) Override {
	return func(p *params) {
		if radius != 0 {
			p.radius = radius
		}
	}
}

// WithOffset sets the planar height.
func WithOffset(offset float32) Override {
	return func(p *params) { p.offset = offset }
}

// WithAngles supplies the spherical angles in radians directly instead of
// deriving them from the object's logical position.
func WithAngles(azimuth, polar float32) Override {
	return func(p *params) {
		p.hasAngles = true
		p.azimuth = azimuth
		p.polar = polar
	}
}
