package heatmap

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/pkg/math"
)

// Logical coordinate ranges: longitude and latitude in degrees.
var (
	Longitude = math.Range{Min: -180, Max: 180}
	Latitude  = math.Range{Min: -90, Max: 90}
)

// Surface is the ground the bars stand on.
type Surface struct {
	Kind projection.Kind

	// Flat surfaces are a Width x Depth slab whose top is at Height.
	Width, Depth, Height float32

	// Round surfaces are a sphere.
	Radius float32
}

// FlatSurface returns a slab of the given size.
func FlatSurface(width, depth, height float32) Surface {
	return Surface{Kind: projection.Planar, Width: width, Depth: depth, Height: height}
}

// DefaultFlatSurface is a 256 x 128 slab, 10 units thick.
func DefaultFlatSurface() Surface {
	return FlatSurface(256, 128, 10)
}

// RoundSurface returns a globe of the given radius.
func RoundSurface(radius float32) Surface {
	return Surface{Kind: projection.Spherical, Radius: radius}
}

// DefaultRoundSurface is a globe of radius 100.
func DefaultRoundSurface() Surface {
	return RoundSurface(100)
}

// ProjectionConfig maps longitude and latitude onto the surface.
//
// A flat surface spreads longitude over its width and latitude over its depth,
// with the bars standing on its top face. A round surface reads longitude as
// the azimuth in degrees and maps latitude onto a polar angle in [0, 180].
func (s Surface) ProjectionConfig() projection.Config {
	switch s.Kind {
	case projection.Spherical:
		return projection.Config{
			Radius: s.Radius,
			Bounds: &projection.Bounds{
				X: math.RangePair{From: Longitude, To: math.Range{Min: 0, Max: 360}},
				Y: math.RangePair{From: Latitude, To: math.Range{Min: 0, Max: 180}},
			},
		}
	default:
		return projection.Config{
			Offset: s.Height,
			Bounds: &projection.Bounds{
				X: math.RangePair{From: Longitude, To: math.Range{Min: -s.Width / 2, Max: s.Width / 2}},
				Y: math.RangePair{From: Latitude, To: math.Range{Min: -s.Depth / 2, Max: s.Depth / 2}},
			},
		}
	}
}

// Projection builds the projection for the surface.
func (s Surface) Projection() (*projection.Projection, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return projection.New(s.Kind, s.ProjectionConfig())
}

func (s Surface) validate() error {
	switch s.Kind {
	case projection.Planar:
		if s.Width <= 0 || s.Depth <= 0 || s.Height < 0 {
			return fmt.Errorf("flat surface %gx%gx%g: %w", s.Width, s.Depth, s.Height, projection.ErrInvalidConfig)
		}
	case projection.Spherical:
		if s.Radius <= 0 {
			return fmt.Errorf("round surface radius %g: %w", s.Radius, projection.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("surface kind %v: %w", s.Kind, projection.ErrInvalidConfig)
	}
	return nil
}

// CameraStart returns the initial camera position for viewing the surface.
func (s Surface) CameraStart() math.Vec3 {
	if s.Kind == projection.Spherical {
		return math.Vec3{Y: s.Radius, Z: 3 * s.Radius}
	}
	return math.Vec3{Y: 100, Z: 200}
}

// Outline returns line segments (pairs of points) tracing the surface: the
// edges of the slab, or a grid of parallels and meridians on the globe.
func (s Surface) Outline() []math.Vec3 {
	if s.Kind == projection.Spherical {
		return s.graticule(30, 48)
	}
	return s.slab()
}

func (s Surface) slab() []math.Vec3 {
	w, d, h := s.Width/2, s.Depth/2, s.Height
	corners := func(y float32) [4]math.Vec3 {
		return [4]math.Vec3{{X: -w, Y: y, Z: -d}, {X: w, Y: y, Z: -d}, {X: w, Y: y, Z: d}, {X: -w, Y: y, Z: d}}
	}
	top, bottom := corners(h), corners(0)

	var lines []math.Vec3
	for i := range 4 {
		j := (i + 1) % 4
		lines = append(lines, top[i], top[j], bottom[i], bottom[j], top[i], bottom[i])
	}
	return lines
}

// graticule draws a line every stepDeg degrees, each circle split into
// segments pieces.
func (s Surface) graticule(stepDeg float32, segments int) []math.Vec3 {
	var lines []math.Vec3
	arc := 2 * math.Pi / float32(segments)

	// Parallels.
	for polarDeg := stepDeg; polarDeg < 180; polarDeg += stepDeg {
		polar := math.DegToRad(polarDeg)
		for i := range segments {
			a := math.SphericalToCartesian(s.Radius, float32(i)*arc, polar)
			b := math.SphericalToCartesian(s.Radius, float32(i+1)*arc, polar)
			lines = append(lines, a, b)
		}
	}

	// Meridians.
	half := segments / 2
	for azDeg := float32(0); azDeg < 360; azDeg += stepDeg {
		azimuth := math.DegToRad(azDeg)
		for i := range half {
			a := math.SphericalToCartesian(s.Radius, azimuth, float32(i)*math.Pi/float32(half))
			b := math.SphericalToCartesian(s.Radius, azimuth, float32(i+1)*math.Pi/float32(half))
			lines = append(lines, a, b)
		}
	}
	return lines
}

// Extent returns the half-size of the surface's bounding box, used to frame
// the camera.
func (s Surface) Extent() float32 {
	if s.Kind == projection.Spherical {
		return s.Radius
	}
	return math32.Max(s.Width, s.Depth) / 2
}
