package heatmap

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/geoheat/internal/engine/picking"
	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/pkg/math"
)

// Options controls how bars are built and coloured.
type Options struct {
	Mode     Mode
	Gradient Gradient
	Alpha    float32
	// Footprint is the bar's width and depth.
	Footprint float32
	// HeightScale multiplies magnitudes into bar heights. Zero means 1.
	HeightScale float32
}

// DefaultOptions returns gradient-coloured 0.5 x 0.5 bars.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeGradient,
		Gradient:  DefaultGradient(),
		Alpha:     1,
		Footprint: 0.5,
	}
}

// Node is a projected bar for one point.
type Node struct {
	Point   Point
	Color   colorful.Color
	Visible bool

	transform *projection.Transform
	height    float32
	footprint float32
}

// Position returns the projected base of the bar.
func (n *Node) Position() math.Vec3 {
	return n.transform.Position()
}

// Up returns the direction the bar grows in.
func (n *Node) Up() math.Vec3 {
	return n.transform.Up()
}

// Height returns the bar length along Up. Negative magnitudes grow downward.
func (n *Node) Height() float32 {
	return n.height
}

// Corners returns the eight corners of the bar in world space.
func (n *Node) Corners() [8]math.Vec3 {
	m := n.transform.Matrix()
	h := n.footprint / 2

	var out [8]math.Vec3
	i := 0
	for _, y := range [2]float32{0, n.height} {
		for _, x := range [2]float32{-h, h} {
			for _, z := range [2]float32{-h, h} {
				out[i] = m.TransformVec3(math.Vec3{X: x, Y: y, Z: z})
				i++
			}
		}
	}
	return out
}

// Bounds returns the world-space box around the bar.
func (n *Node) Bounds() picking.AABB {
	c := n.Corners()
	return picking.NewAABB(c[:]...)
}

// Visualisation is a set of bars projected onto one surface.
type Visualisation struct {
	surface Surface
	proj    *projection.Projection
	opts    Options
	nodes   []*Node
	stats   Stats
	filter  Filter
}

// NewVisualisation projects every point onto surface. Points that cannot be
// projected to a finite position are reported together.
func NewVisualisation(surface Surface, points []Point, opts Options) (*Visualisation, error) {
	proj, err := surface.Projection()
	if err != nil {
		return nil, err
	}
	if opts.Footprint <= 0 {
		opts.Footprint = DefaultOptions().Footprint
	}
	if opts.HeightScale == 0 {
		opts.HeightScale = 1
	}
	if opts.Gradient == (Gradient{}) {
		opts.Gradient = DefaultGradient()
	}

	v := &Visualisation{
		surface: surface,
		proj:    proj,
		opts:    opts,
	}
	if err := v.SetPoints(points); err != nil {
		return nil, err
	}
	return v, nil
}

// SetPoints replaces the dataset, keeping the current filter.
func (v *Visualisation) SetPoints(points []Point) error {
	nodes := make([]*Node, 0, len(points))
	var errs []error
	for i, p := range points {
		t := projection.NewTransform(p.Scene())
		if err := v.proj.Project(t); err != nil {
			errs = append(errs, fmt.Errorf("point %d %v: %w", i, p, err))
			continue
		}
		nodes = append(nodes, &Node{
			Point:     p,
			Visible:   true,
			transform: t,
			height:    p.Magnitude() * v.opts.HeightScale,
			footprint: v.opts.Footprint,
		})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	v.nodes = nodes
	v.stats = ComputeStats(points)
	v.recolor()
	v.applyFilter()
	return nil
}

// Surface returns the surface the bars stand on.
func (v *Visualisation) Surface() Surface {
	return v.surface
}

// Projection returns the projection used for every bar.
func (v *Visualisation) Projection() *projection.Projection {
	return v.proj
}

// Nodes returns all bars, visible or not.
func (v *Visualisation) Nodes() []*Node {
	return v.nodes
}

// Stats returns the magnitude statistics of the dataset.
func (v *Visualisation) Stats() Stats {
	return v.stats
}

// Options returns the effective options.
func (v *Visualisation) Options() Options {
	return v.opts
}

// SetMode switches the colouring mode.
func (v *Visualisation) SetMode(mode Mode) {
	v.opts.Mode = mode
	v.recolor()
}

// SetFilter changes which bars are visible and returns the visible count.
func (v *Visualisation) SetFilter(f Filter) int {
	v.filter = f
	return v.applyFilter()
}

// Filter returns the active filter.
func (v *Visualisation) Filter() Filter {
	return v.filter
}

// Visible returns the number of visible bars.
func (v *Visualisation) Visible() int {
	n := 0
	for _, node := range v.nodes {
		if node.Visible {
			n++
		}
	}
	return n
}

// Pick returns the visible bar nearest along ray.
func (v *Visualisation) Pick(ray picking.Ray) (*Node, bool) {
	var (
		candidates []*Node
		boxes      []picking.AABB
	)
	for _, node := range v.nodes {
		if node.Visible {
			candidates = append(candidates, node)
			boxes = append(boxes, node.Bounds())
		}
	}

	i, _ := picking.Nearest(ray, boxes)
	if i < 0 {
		return nil, false
	}
	return candidates[i], true
}

func (v *Visualisation) recolor() {
	for _, node := range v.nodes {
		t := v.stats.Normalize(node.Point.Magnitude())
		node.Color = Colorize(v.opts.Mode, v.opts.Gradient, t)
	}
}

func (v *Visualisation) applyFilter() int {
	visible := 0
	for _, node := range v.nodes {
		node.Visible = v.filter.Accepts(node.Point)
		if node.Visible {
			visible++
		}
	}
	return visible
}
