// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB returns the smallest box holding every point.
func NewAABB(points ...math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = math.Vec3{X: math32.Min(box.Min.X, p.X), Y: math32.Min(box.Min.Y, p.Y), Z: math32.Min(box.Min.Z, p.Z)}
		box.Max = math.Vec3{X: math32.Max(box.Max.X, p.X), Y: math32.Max(box.Max.Y, p.Y), Z: math32.Max(box.Max.Z, p.Z)}
	}
	return box
}

// NDC converts a screen position into normalized device coordinates for the
// surface described by vp. The surface's screen offset is subtracted first.
func NDC(vp viewport.Provider, screen math.Vec2) math.Vec2 {
	local := viewport.ToSurface(vp, screen)
	w, h := vp.Width(), vp.Height()
	if w <= 0 || h <= 0 {
		return math.Vec2{}
	}
	return math.Vec2{
		X: 2*local.X/w - 1,
		Y: 1 - 2*local.Y/h, // flip Y
	}
}

// ScreenToRay converts a screen position into a world-space ray.
// invViewProj is the inverse of projection * view.
func ScreenToRay(vp viewport.Provider, screen math.Vec2, invViewProj math.Mat4) Ray {
	ndc := NDC(vp, screen)

	near := invViewProj.TransformVec3(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndc.X, Y: ndc.Y, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // parallel
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // behind the origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectSphere returns the distance to the nearest hit on a sphere.
// A ray starting inside the sphere reports the exit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math32.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}

		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box hit by r, or -1.
func Nearest(r Ray, boxes []AABB) (index int, t float32) {
	index, t = -1, math32.MaxFloat32
	for i, box := range boxes {
		if d, ok := r.IntersectAABB(box); ok && d < t {
			index, t = i, d
		}
	}
	if index < 0 {
		return -1, 0
	}
	return index, t
}
