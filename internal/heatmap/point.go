// Package heatmap builds a projected 3D heat map from geographic data points.
//
// A dataset row is a logical coordinate (x, y) such as longitude and latitude,
// plus a magnitude z. Each row becomes a bar standing on a flat or round
// surface, coloured by its magnitude relative to the whole dataset.
package heatmap

import (
	"fmt"

	"github.com/Faultbox/geoheat/pkg/math"
)

// Point is one dataset row.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Magnitude returns the value the bar height and colour are derived from.
func (p Point) Magnitude() float32 {
	return p.Z
}

// Scene returns the unprojected scene position. Magnitude rides on the
// vertical axis and the logical y becomes depth.
func (p Point) Scene() math.Vec3 {
	return math.Vec3{X: p.X, Y: p.Z, Z: p.Y}
}

// Coordinate returns the logical surface coordinate.
func (p Point) Coordinate() math.Vec2 {
	return math.Vec2{X: p.X, Y: p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f) = %.2f", p.X, p.Y, p.Z)
}
