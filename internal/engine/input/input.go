// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/geoheat/internal/engine/camera"
	"github.com/Faultbox/geoheat/pkg/math"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  float32 // positive away from the user
}

// Mouse returns the pointer position as a vector.
func (e Event) Mouse() math.Vec2 {
	return math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := convert(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			return true
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// convert maps an SDL event onto an Event. Events the viewer does not use
// report false.
func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_LOST, sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
			return Event{Type: EventFocusLost}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		delta := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		if delta == 0 {
			return Event{}, false
		}
		return Event{Type: EventMouseWheel, Wheel: delta}, true
	}

	return Event{}, false
}

// PointerHandler consumes pointer gestures. *camera.Gestures implements it.
type PointerHandler interface {
	PointerDown(button camera.Button, screen math.Vec2)
	PointerMove(screen math.Vec2)
	PointerUp(button camera.Button)
	Wheel(delta float32)
	Blur()
}

// Route forwards the pointer events in events to h and returns the rest.
// wheelStep scales one SDL wheel notch before it reaches h.
func Route(events []Event, h PointerHandler, wheelStep float32) (rest []Event) {
	for _, e := range events {
		switch e.Type {
		case EventMouseDown:
			h.PointerDown(camera.Button(e.Button), e.Mouse())
		case EventMouseMove:
			h.PointerMove(e.Mouse())
		case EventMouseUp:
			h.PointerUp(camera.Button(e.Button))
		case EventMouseWheel:
			h.Wheel(e.Wheel * wheelStep)
		case EventFocusLost:
			h.Blur()
			rest = append(rest, e)
		default:
			rest = append(rest, e)
		}
	}
	return rest
}
