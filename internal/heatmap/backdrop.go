package heatmap

import (
	"github.com/Faultbox/geoheat/internal/engine/camera"
	"github.com/Faultbox/geoheat/pkg/math"
)

// DefaultBackdropSize matches the camera's far plane.
const DefaultBackdropSize = 5000

// Backdrop is a large box drawn around the camera. It follows every camera
// move so the horizon never gets closer.
type Backdrop struct {
	size     float32
	position math.Vec3
	moves    int
}

// NewBackdrop creates a backdrop with edge length size.
func NewBackdrop(size float32) *Backdrop {
	if size <= 0 {
		size = DefaultBackdropSize
	}
	return &Backdrop{size: size}
}

// Attach recentres the backdrop on every pan, zoom and rotate of ctrl.
func (b *Backdrop) Attach(ctrl *camera.Controller) (detach func()) {
	b.position = ctrl.Camera().Position()
	return ctrl.Subscribe(b.OnCamera)
}

// OnCamera is the camera listener.
func (b *Backdrop) OnCamera(ev camera.Event) {
	b.position = ev.Position
	b.moves++
}

// Position returns the backdrop centre.
func (b *Backdrop) Position() math.Vec3 {
	return b.position
}

// Moves returns how many camera events the backdrop has followed.
func (b *Backdrop) Moves() int {
	return b.moves
}

// Outline returns the box edges as line segment pairs.
func (b *Backdrop) Outline() []math.Vec3 {
	h := b.size / 2
	c := b.position
	corner := func(x, y, z float32) math.Vec3 {
		return math.Vec3{X: c.X + x*h, Y: c.Y + y*h, Z: c.Z + z*h}
	}

	var lines []math.Vec3
	for _, s := range [2]float32{-1, 1} {
		for _, t := range [2]float32{-1, 1} {
			lines = append(lines,
				corner(-1, s, t), corner(1, s, t),
				corner(s, -1, t), corner(s, 1, t),
				corner(s, t, -1), corner(s, t, 1),
			)
		}
	}
	return lines
}
