// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/geoheat/internal/engine/picking"
	"github.com/Faultbox/geoheat/pkg/math"
)

// WireframeVertexCount is the number of points in a box wireframe (12 edges x 2).
const WireframeVertexCount = 24

// DefaultPadding is the default padding for selection boxes.
const DefaultPadding = 0.1

// Wireframe returns the edges of box grown by padding on every side, as
// line segment pairs.
func Wireframe(box picking.AABB, padding float32) []math.Vec3 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi := box.Min.Sub(pad), box.Max.Add(pad)

	v := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
	return []math.Vec3{
		// Bottom face
		v(lo.X, lo.Y, lo.Z), v(hi.X, lo.Y, lo.Z),
		v(hi.X, lo.Y, lo.Z), v(hi.X, lo.Y, hi.Z),
		v(hi.X, lo.Y, hi.Z), v(lo.X, lo.Y, hi.Z),
		v(lo.X, lo.Y, hi.Z), v(lo.X, lo.Y, lo.Z),
		// Top face
		v(lo.X, hi.Y, lo.Z), v(hi.X, hi.Y, lo.Z),
		v(hi.X, hi.Y, lo.Z), v(hi.X, hi.Y, hi.Z),
		v(hi.X, hi.Y, hi.Z), v(lo.X, hi.Y, hi.Z),
		v(lo.X, hi.Y, hi.Z), v(lo.X, hi.Y, lo.Z),
		// Vertical edges
		v(lo.X, lo.Y, lo.Z), v(lo.X, hi.Y, lo.Z),
		v(hi.X, lo.Y, lo.Z), v(hi.X, hi.Y, lo.Z),
		v(hi.X, lo.Y, hi.Z), v(hi.X, hi.Y, hi.Z),
		v(lo.X, lo.Y, hi.Z), v(lo.X, hi.Y, hi.Z),
	}
}
