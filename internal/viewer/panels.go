package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/engine/ui2d"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/internal/logger"
)

// Panel geometry in window units.
const (
	panelMargin = 10
	panelWidth  = 230
	rowHeight   = 14
)

// Panels draws the information and filter windows over the scene and
// applies their controls to it.
type Panels struct {
	ui *ui2d.Context

	// filter enables the magnitude floor; floor is a fraction of the colour
	// bound and survives the filter being switched off.
	filter bool
	floor  float32

	log *zap.Logger
}

// NewPanels lays panels out with ui.
func NewPanels(ui *ui2d.Context) *Panels {
	return &Panels{ui: ui, log: logger.Named("panels")}
}

// Filter reports whether the magnitude floor is on, and the floor fraction.
func (p *Panels) Filter() (bool, float32) {
	return p.filter, p.floor
}

// Step moves the magnitude floor by step and turns the filter on, or off
// once the floor is back at zero.
func (p *Panels) Step(s *Scene, step float32) {
	p.floor = min(max(p.floor+step, 0), 1)
	p.filter = p.floor > 0
	p.apply(s)
}

func (p *Panels) apply(s *Scene) {
	fraction := float32(0)
	if p.filter {
		fraction = p.floor
	}
	floor, visible := s.SetMagnitudeFloor(fraction)
	p.log.Info("magnitude filter",
		zap.Bool("enabled", p.filter),
		zap.Float32("min", floor),
		zap.Int("visible", visible),
	)
}

// Draw runs one UI frame for s in a window width units wide.
func (p *Panels) Draw(s *Scene, width float32) {
	p.ui.Begin()
	p.information(s)
	p.filters(s, width)
	p.ui.End()
}

func (p *Panels) information(s *Scene) {
	ui := p.ui
	vis := s.Visualisation()
	stats := vis.Stats()

	ui.BeginWindow("information", panelMargin, panelMargin, panelWidth, 164, "Information")
	defer ui.EndWindow()

	total := len(vis.Nodes())
	ui.Row(rowHeight)
	ui.Label(fmt.Sprintf("%d of %d points visible", vis.Visible(), total))
	ui.Row(rowHeight)
	fraction := float32(0)
	if total > 0 {
		fraction = float32(vis.Visible()) / float32(total)
	}
	ui.ProgressBar(fraction, 0, rowHeight, "")
	ui.Row(rowHeight)
	ui.LabelColored(fmt.Sprintf("Magnitude %.2f to %.2f", stats.Min, stats.Max), ui2d.ColorTextDim)
	ui.Separator()

	n := s.Hovered()
	if n == nil {
		ui.Row(rowHeight)
		ui.LabelColored("Hover a bar for details", ui2d.ColorTextDim)
		return
	}
	ui.Row(rowHeight)
	ui.Swatch(ui2d.FromColorful(n.Color))
	ui.Label(fmt.Sprintf("Magnitude %.2f", n.Point.Magnitude()))
	c := n.Point.Coordinate()
	ui.Row(rowHeight)
	ui.Label(fmt.Sprintf("Longitude %.2f", c.X))
	ui.Row(rowHeight)
	ui.Label(fmt.Sprintf("Latitude  %.2f", c.Y))
}

func (p *Panels) filters(s *Scene, width float32) {
	ui := p.ui
	vis := s.Visualisation()

	ui.BeginWindow("filters", width-panelWidth-panelMargin, panelMargin, panelWidth, 128, "Filters")
	defer ui.EndWindow()

	ui.Row(rowHeight)
	if on := ui.Checkbox("magnitude", "Magnitude filter", p.filter); on != p.filter {
		p.filter = on
		p.apply(s)
	}

	bound := vis.Stats().Bound
	label := fmt.Sprintf("min %.2f", bound.Min+p.floor*bound.Span())
	ui.Row(16)
	if floor, changed := ui.Slider("floor", 0, p.floor, 0, 1, label); changed {
		p.floor = floor
		p.filter = true
		p.apply(s)
	}

	ui.Row(rowHeight)
	gradient := vis.Options().Mode == heatmap.ModeGradient
	if ui.Checkbox("gradient", "Gradient colours", gradient) != gradient {
		mode := s.ToggleMode()
		p.log.Info("colour mode", zap.Stringer("mode", mode))
	}

	ui.Row(22)
	if ui.Button("reset", 0, "Reset view") {
		s.Reset()
	}
}
