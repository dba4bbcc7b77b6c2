package heatmap

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/geoheat/pkg/math"
)

// VertexStride is the number of floats per vertex: position xyz, colour rgba.
const VertexStride = 7

// Face shading applied with Luminance so bar edges stay readable without
// lighting.
const (
	sideShade   = -0.12
	bottomShade = -0.3
)

// cube faces as corner indices into Node.Corners, two triangles each.
// Corners are ordered by (y, x, z) bits: index = y*4 + x*2 + z.
var cubeFaces = [6]struct {
	idx   [6]int
	shade float64
}{
	{[6]int{4, 5, 7, 4, 7, 6}, 0},           // top
	{[6]int{0, 2, 3, 0, 3, 1}, bottomShade}, // bottom
	{[6]int{0, 1, 5, 0, 5, 4}, sideShade},   // -x
	{[6]int{2, 6, 7, 2, 7, 3}, sideShade},   // +x
	{[6]int{0, 4, 6, 0, 6, 2}, sideShade},   // -z
	{[6]int{1, 3, 7, 1, 7, 5}, sideShade},   // +z
}

// BarVertices returns interleaved triangles for every visible bar.
func (v *Visualisation) BarVertices() []float32 {
	out := make([]float32, 0, v.Visible()*36*VertexStride)
	for _, node := range v.nodes {
		if !node.Visible {
			continue
		}
		corners := node.Corners()
		for _, face := range cubeFaces {
			rgba := RGBA(Luminance(node.Color, face.shade), v.opts.Alpha)
			for _, i := range face.idx {
				out = appendVertex(out, corners[i], rgba)
			}
		}
	}
	return out
}

// LineVertices returns interleaved vertices for line segment pairs.
func LineVertices(segments []math.Vec3, c colorful.Color, alpha float32) []float32 {
	rgba := RGBA(c, alpha)
	out := make([]float32, 0, len(segments)*VertexStride)
	for _, p := range segments {
		out = appendVertex(out, p, rgba)
	}
	return out
}

func appendVertex(out []float32, p math.Vec3, rgba [4]float32) []float32 {
	return append(out, p.X, p.Y, p.Z, rgba[0], rgba[1], rgba[2], rgba[3])
}
