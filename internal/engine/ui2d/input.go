package ui2d

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/geoheat/internal/engine/input"
)

// InputState holds the pointer state the widgets read.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown     bool
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// Scroll is the wheel movement this frame, positive away from the user.
	Scroll float32

	// Edges seen by Feed since the last Update, so a press and release
	// inside one frame still register.
	sawPress   bool
	sawRelease bool

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Feed applies a frame's pointer events.
func (i *InputState) Feed(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventMouseMove:
			i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
		case input.EventMouseDown:
			i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
			if e.Button == uint8(sdl.BUTTON_LEFT) {
				i.MouseLeftDown = true
				i.sawPress = true
			}
		case input.EventMouseUp:
			i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
			if e.Button == uint8(sdl.BUTTON_LEFT) {
				i.MouseLeftDown = false
				i.sawRelease = true
			}
		case input.EventMouseWheel:
			i.Scroll += e.Wheel
		case input.EventFocusLost:
			i.MouseLeftDown = false
		}
	}
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after feeding events.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.sawPress || (i.MouseLeftDown && !i.prevMouseLeft)
	i.MouseLeftReleased = i.sawRelease || (!i.MouseLeftDown && i.prevMouseLeft)

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.Scroll = 0
	i.sawPress = false
	i.sawRelease = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(r Rect) bool {
	return r.Contains(i.MouseX, i.MouseY)
}
