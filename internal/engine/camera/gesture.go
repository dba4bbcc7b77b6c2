package camera

import (
	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/pkg/math"
)

// GestureState is the pointer interaction currently in progress.
type GestureState int

const (
	Idle GestureState = iota
	Panning
	Rotating
)

func (s GestureState) String() string {
	switch s {
	case Panning:
		return "panning"
	case Rotating:
		return "rotating"
	default:
		return "idle"
	}
}

// Button identifies a pointer button. Values match SDL's button indices.
type Button uint8

const (
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

// DefaultZoomFactor converts one wheel step into world units.
const DefaultZoomFactor = 0.05

// Gestures turns pointer and wheel input into controller calls.
//
// Primary drag pans, secondary drag rotates, and the wheel zooms regardless
// of the current gesture. Blur forces the machine back to Idle so a drag
// whose button-up was lost cannot get stuck.
type Gestures struct {
	ctrl       *Controller
	ZoomFactor float32

	state  GestureState
	button Button
	start  math.Vec2
}

// NewGestures creates a gesture machine driving ctrl. A non-positive
// zoomFactor selects DefaultZoomFactor.
func NewGestures(ctrl *Controller, zoomFactor float32) *Gestures {
	if zoomFactor <= 0 {
		zoomFactor = DefaultZoomFactor
	}
	return &Gestures{ctrl: ctrl, ZoomFactor: zoomFactor}
}

// State returns the current gesture.
func (g *Gestures) State() GestureState {
	return g.state
}

// PointerDown starts a gesture. Presses while another gesture is active, and
// buttons that have no gesture, are ignored.
func (g *Gestures) PointerDown(button Button, screen math.Vec2) {
	if g.state != Idle {
		return
	}

	switch button {
	case ButtonPrimary:
		g.state = Panning
	case ButtonSecondary:
		g.state = Rotating
	default:
		return
	}
	g.button = button
	g.start = viewport.ToSurface(g.ctrl.viewport, screen)
}

// PointerMove applies the movement since the last event to the active gesture.
func (g *Gestures) PointerMove(screen math.Vec2) {
	if g.state == Idle {
		return
	}

	pos := viewport.ToSurface(g.ctrl.viewport, screen)
	delta := pos.Sub(g.start)
	g.start = pos

	switch g.state {
	case Panning:
		g.ctrl.Pan(delta)
	case Rotating:
		g.ctrl.Rotate(delta)
	}
}

// PointerUp ends the gesture started by button.
func (g *Gestures) PointerUp(button Button) {
	if g.state != Idle && button == g.button {
		g.state = Idle
	}
}

// Wheel zooms by delta scaled with ZoomFactor. Positive delta zooms in.
func (g *Gestures) Wheel(delta float32) {
	g.ctrl.Zoom(delta * g.ZoomFactor)
}

// Blur cancels any gesture in progress.
func (g *Gestures) Blur() {
	g.state = Idle
}
