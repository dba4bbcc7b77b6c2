// Package viewport describes the drawable surface the camera renders into.
package viewport

import "github.com/Faultbox/geoheat/pkg/math"

// Provider reports the live size of the rendering surface. Values are read on
// every use, never cached, so consumers stay correct across resizes.
type Provider interface {
	// Width returns the surface width in pixels.
	Width() float32
	// Height returns the surface height in pixels.
	Height() float32
	// Offset returns the screen position of the surface's top-left corner.
	Offset() math.Vec2
}

// Fixed is a Provider with explicit, mutable dimensions. It serves headless
// tools and tests.
type Fixed struct {
	W, H   float32
	Origin math.Vec2
}

func (f *Fixed) Width() float32    { return f.W }
func (f *Fixed) Height() float32   { return f.H }
func (f *Fixed) Offset() math.Vec2 { return f.Origin }

// Resize updates the dimensions.
func (f *Fixed) Resize(width, height float32) {
	f.W = width
	f.H = height
}

// Aspect returns width/height, or 1 for an empty surface.
func Aspect(p Provider) float32 {
	h := p.Height()
	if h <= 0 {
		return 1
	}
	return p.Width() / h
}

// ToSurface converts an absolute screen position into surface-relative pixels.
func ToSurface(p Provider, screen math.Vec2) math.Vec2 {
	return screen.Sub(p.Offset())
}
