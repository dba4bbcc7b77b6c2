package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/pkg/math"
)

func newTestGestures(t *testing.T) (*Gestures, *Controller, *[]EventKind) {
	t.Helper()
	cam := NewPerspective()
	cam.SetPosition(math.Vec3{Y: 100, Z: 200})
	vp := &viewport.Fixed{W: 800, H: 600, Origin: math.Vec2{X: 40, Y: 30}}

	ctrl, err := NewController(cam, vp, math.Vec3{}, DefaultLimits())
	require.NoError(t, err)

	var kinds []EventKind
	ctrl.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })
	return NewGestures(ctrl, 0), ctrl, &kinds
}

func TestGestureTransitions(t *testing.T) {
	tests := []struct {
		name   string
		button Button
		want   GestureState
	}{
		{"primary pans", ButtonPrimary, Panning},
		{"secondary rotates", ButtonSecondary, Rotating},
		{"middle is ignored", ButtonMiddle, Idle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newTestGestures(t)
			g.PointerDown(tt.button, math.Vec2{X: 100, Y: 100})
			assert.Equal(t, tt.want, g.State())

			g.PointerUp(tt.button)
			assert.Equal(t, Idle, g.State())
		})
	}
}

func TestGestureIgnoresSecondPress(t *testing.T) {
	g, _, _ := newTestGestures(t)

	g.PointerDown(ButtonPrimary, math.Vec2{})
	g.PointerDown(ButtonSecondary, math.Vec2{})
	assert.Equal(t, Panning, g.State())

	// Releasing the other button does not end the pan.
	g.PointerUp(ButtonSecondary)
	assert.Equal(t, Panning, g.State())
}

func TestGesturePanAppliesIncrementalDelta(t *testing.T) {
	g, _, kinds := newTestGestures(t)

	ref := NewPerspective()
	ref.SetPosition(math.Vec3{Y: 100, Z: 200})
	refCtrl, err := NewController(ref, &viewport.Fixed{W: 800, H: 600}, math.Vec3{}, DefaultLimits())
	require.NoError(t, err)

	g.PointerDown(ButtonPrimary, math.Vec2{X: 100, Y: 100})
	g.PointerMove(math.Vec2{X: 120, Y: 90})
	g.PointerMove(math.Vec2{X: 150, Y: 90})

	refCtrl.Pan(math.Vec2{X: 20, Y: -10})
	refCtrl.Pan(math.Vec2{X: 30})

	assertVec3(t, ref.Position(), g.ctrl.camera.Position(), 1e-3)
	assert.Equal(t, []EventKind{EventPan, EventPan}, *kinds)
}

func TestGestureRotate(t *testing.T) {
	g, ctrl, kinds := newTestGestures(t)
	start := ctrl.Camera().Position()

	g.PointerDown(ButtonSecondary, math.Vec2{X: 400, Y: 300})
	g.PointerMove(math.Vec2{X: 480, Y: 300})

	assert.NotEqual(t, start, ctrl.Camera().Position())
	assert.Equal(t, []EventKind{EventRotate}, *kinds)
}

func TestGestureMoveWhileIdleDoesNothing(t *testing.T) {
	g, ctrl, kinds := newTestGestures(t)
	start := ctrl.Camera().Position()

	g.PointerMove(math.Vec2{X: 500, Y: 500})

	assert.Equal(t, start, ctrl.Camera().Position())
	assert.Empty(t, *kinds)
}

func TestGestureBlurReleases(t *testing.T) {
	g, _, kinds := newTestGestures(t)

	g.PointerDown(ButtonSecondary, math.Vec2{})
	g.Blur()
	assert.Equal(t, Idle, g.State())

	g.PointerMove(math.Vec2{X: 100})
	assert.Empty(t, *kinds)
}

func TestWheelZoomsInAnyState(t *testing.T) {
	g, ctrl, kinds := newTestGestures(t)
	start := ctrl.Camera().Position().Length()

	g.PointerDown(ButtonSecondary, math.Vec2{})
	g.Wheel(100)

	assert.Equal(t, Rotating, g.State())
	assert.InDelta(t, start-100*DefaultZoomFactor, ctrl.Camera().Position().Length(), 1e-3)
	assert.Equal(t, []EventKind{EventZoom}, *kinds)
}

func TestGestureStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "panning", Panning.String())
	assert.Equal(t, "rotating", Rotating.String())
}
