package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/config"
	"github.com/Faultbox/geoheat/internal/engine/input"
	"github.com/Faultbox/geoheat/internal/engine/ui2d"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/pkg/math"
)

// The filters window sits at x 560 in an 800 wide window. Its rows start at
// y 42 (checkbox), 60 (slider), 80 (checkbox) and 98 (button).
const panelsWidth = 800

func tenPoints() []heatmap.Point {
	points := make([]heatmap.Point, 10)
	for i := range points {
		points[i] = heatmap.Point{X: float32(i * 10), Z: float32(i + 1)}
	}
	return points
}

func newPanels(t *testing.T) (*Panels, *ui2d.Context, *Scene) {
	t.Helper()
	s := newScene(t, config.Default(), tenPoints())
	ui := ui2d.NewContext(ui2d.NewFont())
	p := NewPanels(ui)
	p.Draw(s, panelsWidth)
	return p, ui, s
}

func click(p *Panels, ui *ui2d.Context, s *Scene, x, y int) {
	ui.Feed([]input.Event{
		{Type: input.EventMouseDown, MouseX: x, MouseY: y, Button: 1},
		{Type: input.EventMouseUp, MouseX: x, MouseY: y, Button: 1},
	})
	p.Draw(s, panelsWidth)
}

func TestPanelsStepFilter(t *testing.T) {
	p, _, s := newPanels(t)

	p.Step(s, 0.5)
	on, floor := p.Filter()
	assert.True(t, on)
	assert.InDelta(t, 0.5, floor, 1e-6)
	// Bound [1, 10]: the floor lands at 5.5.
	assert.Equal(t, 5, s.Visualisation().Visible())

	p.Step(s, -0.5)
	on, _ = p.Filter()
	assert.False(t, on)
	assert.Equal(t, 10, s.Visualisation().Visible())
}

func TestPanelsSliderAndCheckbox(t *testing.T) {
	p, ui, s := newPanels(t)

	// Three quarters along the 214 wide track.
	click(p, ui, s, 568+160, 68)
	on, floor := p.Filter()
	require.True(t, on)
	assert.InDelta(t, 0.75, floor, 0.01)
	assert.Equal(t, 3, s.Visualisation().Visible())

	click(p, ui, s, 572, 46)
	on, floor = p.Filter()
	assert.False(t, on)
	assert.InDelta(t, 0.75, floor, 0.01, "the floor is kept while the filter is off")
	assert.Equal(t, 10, s.Visualisation().Visible())

	click(p, ui, s, 572, 46)
	on, _ = p.Filter()
	assert.True(t, on)
	assert.Equal(t, 3, s.Visualisation().Visible())
}

func TestPanelsGradientCheckbox(t *testing.T) {
	p, ui, s := newPanels(t)
	require.Equal(t, heatmap.ModeGradient, s.Visualisation().Options().Mode)

	click(p, ui, s, 572, 84)
	assert.Equal(t, heatmap.ModeBasic, s.Visualisation().Options().Mode)
}

func TestPanelsResetButton(t *testing.T) {
	p, ui, s := newPanels(t)
	start := s.Camera().Position()
	s.Controller().Pan(math.Vec2{X: 80, Y: 30})

	click(p, ui, s, 660, 108)
	assertVec3(t, start, s.Camera().Position())
	assertVec3(t, math.Vec3{}, s.Controller().Origin())
}

func TestPanelsClaimPointer(t *testing.T) {
	_, ui, _ := newPanels(t)

	rest := ui.Feed([]input.Event{{Type: input.EventMouseDown, MouseX: 600, MouseY: 50, Button: 1}})
	assert.Empty(t, rest, "press on the filters window")
	assert.True(t, ui.Over(20, 20), "information window")
	assert.False(t, ui.Over(400, 300))
}

func TestSceneMagnitudeFloor(t *testing.T) {
	cfg := config.Default()
	cfg.Points.MinMagnitude = 3
	cfg.Points.MaxMagnitude = 8
	s := newScene(t, cfg, tenPoints())
	require.Equal(t, 6, s.Visualisation().Visible())

	floor, visible := s.SetMagnitudeFloor(0.5)
	assert.InDelta(t, 5.5, floor, 1e-5)
	assert.Equal(t, 3, visible, "configured maximum still applies")

	_, visible = s.SetMagnitudeFloor(0.1)
	assert.Equal(t, 6, visible, "configured minimum wins over a lower floor")

	_, visible = s.SetMagnitudeFloor(0)
	assert.Equal(t, 6, visible)
}

func TestSceneClearHover(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{0, 300, 0}
	s := newScene(t, cfg, []heatmap.Point{{Z: 5}})

	_, ok := s.Hover(math.Vec2{X: 400, Y: 300})
	require.True(t, ok)
	assert.NotNil(t, s.Hovered())

	s.ClearHover()
	assert.Nil(t, s.Hovered())
}
