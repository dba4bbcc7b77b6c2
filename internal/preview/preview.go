// Package preview renders headless plots of a visualisation with gonum/plot.
package preview

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/internal/heatmap"
)

// ErrEmpty is returned when there is nothing visible to plot.
var ErrEmpty = errors.New("preview: no visible points")

// Options sizes the output image.
type Options struct {
	Width  vg.Length
	Height vg.Length
	Bins   int
}

// DefaultOptions returns a 10x6 inch image with 20 histogram bins.
func DefaultOptions() Options {
	return Options{Width: 10 * vg.Inch, Height: 6 * vg.Inch, Bins: 20}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Bins <= 0 {
		o.Bins = d.Bins
	}
	return o
}

// Scatter plots the visible bars seen from above, each in its own colour.
// Flat surfaces use projected positions with north up; round surfaces fall
// back to raw longitude and latitude.
func Scatter(v *heatmap.Visualisation) (*plot.Plot, error) {
	var (
		xys    plotter.XYs
		styles []draw.GlyphStyle
	)
	flat := v.Surface().Kind == projection.Planar
	for _, n := range v.Nodes() {
		if !n.Visible {
			continue
		}
		var xy plotter.XY
		if flat {
			pos := n.Position()
			xy = plotter.XY{X: float64(pos.X), Y: float64(-pos.Z)}
		} else {
			c := n.Point.Coordinate()
			xy = plotter.XY{X: float64(c.X), Y: float64(c.Y)}
		}
		xys = append(xys, xy)
		styles = append(styles, draw.GlyphStyle{
			Color:  n.Color,
			Radius: vg.Points(2.5),
			Shape:  draw.CircleGlyph{},
		})
	}
	if len(xys) == 0 {
		return nil, ErrEmpty
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle { return styles[i] }

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d points (%s, %s)", len(xys), v.Surface().Kind, v.Options().Mode)
	if flat {
		p.X.Label.Text = "x"
		p.Y.Label.Text = "z"
	} else {
		p.X.Label.Text = "Longitude"
		p.Y.Label.Text = "Latitude"
	}
	p.Add(plotter.NewGrid(), sc)
	return p, nil
}

// Histogram plots the magnitude distribution of the visible bars.
func Histogram(v *heatmap.Visualisation, bins int) (*plot.Plot, error) {
	var values plotter.Values
	for _, n := range v.Nodes() {
		if n.Visible {
			values = append(values, float64(n.Point.Magnitude()))
		}
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = v.Options().Gradient.Medium

	p := plot.New()
	p.Title.Text = "Magnitude distribution"
	p.X.Label.Text = "Magnitude"
	p.Y.Label.Text = "Count"
	p.Add(h)
	return p, nil
}

// Save writes the scatter to path. The format follows the extension
// (png, svg, pdf...). When histPath is set the histogram is written too.
func Save(v *heatmap.Visualisation, path, histPath string, opts Options) error {
	opts = opts.withDefaults()

	p, err := Scatter(v)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if histPath == "" {
		return nil
	}
	h, err := Histogram(v, opts.Bins)
	if err != nil {
		return err
	}
	if err := h.Save(opts.Width, opts.Height, histPath); err != nil {
		return fmt.Errorf("save %s: %w", histPath, err)
	}
	return nil
}
