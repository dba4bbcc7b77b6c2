package input

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/geoheat/internal/engine/camera"
	"github.com/Faultbox/geoheat/pkg/math"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		in    sdl.Event
		want  Event
		wants bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{
			"focus lost",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_LOST},
			Event{Type: EventFocusLost},
			true,
		},
		{
			"window moved is dropped",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED},
			Event{},
			false,
		},
		{
			"button down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT, X: 10, Y: 20},
			Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 10, MouseY: 20},
			true,
		},
		{
			"button up",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 3, Y: 4},
			Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 3, MouseY: 4},
			true,
		},
		{
			"motion",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 7, Y: 9},
			Event{Type: EventMouseMove, MouseX: 7, MouseY: 9},
			true,
		},
		{
			"wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
			Event{Type: EventMouseWheel, Wheel: 2},
			true,
		},
		{
			"flipped wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			Event{Type: EventMouseWheel, Wheel: -2},
			true,
		},
		{
			"horizontal wheel is dropped",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, X: 1},
			Event{},
			false,
		},
		{
			"key repeat is dropped",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1},
			Event{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convert(tt.in)
			assert.Equal(t, tt.wants, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) PointerDown(b camera.Button, p math.Vec2) {
	r.calls = append(r.calls, fmt.Sprintf("down %d %v,%v", b, p.X, p.Y))
}

func (r *recorder) PointerMove(p math.Vec2) {
	r.calls = append(r.calls, fmt.Sprintf("move %v,%v", p.X, p.Y))
}

func (r *recorder) PointerUp(b camera.Button) {
	r.calls = append(r.calls, fmt.Sprintf("up %d", b))
}

func (r *recorder) Wheel(d float32) {
	r.calls = append(r.calls, fmt.Sprintf("wheel %v", d))
}

func (r *recorder) Blur() {
	r.calls = append(r.calls, "blur")
}

func TestRoute(t *testing.T) {
	events := []Event{
		{Type: EventMouseDown, Button: 3, MouseX: 1, MouseY: 2},
		{Type: EventMouseMove, MouseX: 5, MouseY: 2},
		{Type: EventKeyDown, Key: sdl.SCANCODE_R},
		{Type: EventMouseWheel, Wheel: -1},
		{Type: EventMouseUp, Button: 3},
		{Type: EventFocusLost},
	}

	r := &recorder{}
	rest := Route(events, r, 100)

	assert.Equal(t, []string{
		"down 3 1,2",
		"move 5,2",
		"wheel -100",
		"up 3",
		"blur",
	}, r.calls)
	assert.Equal(t, []Event{
		{Type: EventKeyDown, Key: sdl.SCANCODE_R},
		{Type: EventFocusLost},
	}, rest)
}

func TestGesturesSatisfyPointerHandler(t *testing.T) {
	var _ PointerHandler = (*camera.Gestures)(nil)
}
