// Package ui2d is a small immediate-mode panel layer drawn over the scene.
// Widgets record quads into a DrawList; Renderer draws the list with OpenGL.
package ui2d

import "github.com/Faultbox/geoheat/internal/engine/input"

// Layout metrics in screen pixels.
const (
	titleBarHeight = 20
	padding        = 8
	spacing        = 4
	checkboxSize   = 14
	textScale      = 1
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowState holds state for a panel window.
type WindowState struct {
	ID     string
	Rect   Rect
	Moving bool
	// shown is set while the window was drawn in the current frame.
	shown bool
}

// Context lays out widgets and tracks which one owns the pointer.
type Context struct {
	draw  *DrawList
	input *InputState

	hotWidget    string
	activeWidget string

	windows       map[string]*WindowState
	currentWindow *WindowState

	// captured is the button whose press landed on a window; its drag
	// belongs to the panels until release.
	captured uint8

	cursorX float32
	cursorY float32
	rowH    float32
}

// NewContext creates a context drawing with font. It needs no GL state.
func NewContext(font *Font) *Context {
	return &Context{
		draw:    NewDrawList(font),
		input:   &InputState{},
		windows: make(map[string]*WindowState),
	}
}

// DrawList returns the geometry recorded by the last frame.
func (c *Context) DrawList() *DrawList {
	return c.draw
}

// Input returns the input state.
func (c *Context) Input() *InputState {
	return c.input
}

// Hot returns the id of the widget under the pointer in the last frame, or
// "" when there is none.
func (c *Context) Hot() string {
	return c.hotWidget
}

// Window returns the state of a window seen before, if any.
func (c *Context) Window(id string) (*WindowState, bool) {
	ws, ok := c.windows[id]
	return ws, ok
}

// Over reports whether x, y lies on a window drawn in the last frame.
func (c *Context) Over(x, y float32) bool {
	for _, ws := range c.windows {
		if ws.shown && ws.Rect.Contains(x, y) {
			return true
		}
	}
	return false
}

// Feed updates the pointer state from a frame's events and returns the ones
// the panels did not consume. A press on a window claims that button until
// it is released, and wheel turns over a window stay with the panels.
func (c *Context) Feed(events []input.Event) (rest []input.Event) {
	for k, e := range events {
		c.input.Feed(events[k : k+1])

		switch e.Type {
		case input.EventMouseDown:
			if c.captured == 0 && c.Over(c.input.MouseX, c.input.MouseY) {
				c.captured = e.Button
				continue
			}
		case input.EventMouseMove:
			if c.captured != 0 {
				continue
			}
		case input.EventMouseUp:
			if c.captured == e.Button {
				c.captured = 0
				continue
			}
		case input.EventMouseWheel:
			if c.Over(c.input.MouseX, c.input.MouseY) {
				continue
			}
		case input.EventFocusLost:
			c.captured = 0
		}
		rest = append(rest, e)
	}
	return rest
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.draw.Reset()
	c.hotWidget = ""
	for _, ws := range c.windows {
		ws.shown = false
	}
}

// End finishes the UI frame.
func (c *Context) End() {
	c.currentWindow = nil
	c.input.EndFrame()
}

// BeginWindow starts a window with a draggable title bar. x and y place the
// window the first time it is seen; afterwards it stays where it was dragged.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, Rect: Rect{x, y, w, h}}
		c.windows[id] = ws
	}
	ws.Rect.W, ws.Rect.H = w, h
	ws.shown = true
	c.currentWindow = ws

	bar := Rect{ws.Rect.X, ws.Rect.Y, ws.Rect.W, titleBarHeight}
	titleID := id + "_titlebar"
	if ws.Moving && c.input.MouseLeftDown {
		ws.Rect.X += c.input.MouseDeltaX
		ws.Rect.Y += c.input.MouseDeltaY
	}
	if c.input.MouseLeftPressed && c.activeWidget == "" && c.input.IsMouseInRect(bar) {
		ws.Moving = true
		c.activeWidget = titleID
	}
	if c.input.MouseLeftReleased && ws.Moving {
		ws.Moving = false
		if c.activeWidget == titleID {
			c.activeWidget = ""
		}
	}

	r := ws.Rect
	c.draw.DrawPanel(r.X, r.Y, r.W, r.H, ColorPanelBg, ColorPanelBorder)
	c.draw.DrawRect(r.X+1, r.Y+1, r.W-2, titleBarHeight-1, ColorTitleBg)
	_, th := c.draw.MeasureText(title, textScale)
	c.draw.DrawText(r.X+padding, r.Y+(titleBarHeight-th)/2, title, textScale, ColorText)

	c.cursorX = r.X + padding
	c.cursorY = r.Y + titleBarHeight + padding
	c.rowH = 0
	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.Rect.X + padding
	c.cursorY += c.rowH + spacing
	c.rowH = height
}

// contentWidth is the usable width inside the current window.
func (c *Context) contentWidth() float32 {
	return c.currentWindow.Rect.W - 2*padding
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.draw.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.draw.MeasureText(text, textScale)
	c.cursorX += w + spacing
}

// Swatch draws a small filled square, used as a colour key.
func (c *Context) Swatch(color Color) {
	if c.currentWindow == nil {
		return
	}
	c.draw.DrawRect(c.cursorX, c.cursorY, checkboxSize, checkboxSize, color)
	c.draw.DrawRectOutline(c.cursorX, c.cursorY, checkboxSize, checkboxSize, 1, ColorPanelBorder)
	c.cursorX += checkboxSize + spacing
}

// Button draws a button and returns true on the frame it is pressed.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}
	h := c.rowH
	if h == 0 {
		h = 22
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{c.cursorX, c.cursorY, width, h}
	hovered := c.input.IsMouseInRect(rect)
	clicked := false
	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
			clicked = true
		}
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.draw.DrawRect(rect.X, rect.Y, rect.W, rect.H, color)
	c.draw.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder)

	tw, th := c.draw.MeasureText(label, textScale)
	c.draw.DrawText(rect.X+(width-tw)/2, rect.Y+(h-th)/2, label, textScale, ColorText)

	c.cursorX += width + spacing
	return clicked
}

// Checkbox draws a checkbox and returns its new state. It toggles when the
// button is released over the box it was pressed on.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x, y := c.cursorX, c.cursorY
	fullID := c.currentWindow.ID + "_" + id
	tw, th := c.draw.MeasureText(label, textScale)
	// The label is part of the hit area.
	rect := Rect{x, y, checkboxSize + padding + tw, max(checkboxSize, th)}

	hovered := c.input.IsMouseInRect(rect)
	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
		}
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bg := ColorInputBg
	if hovered {
		bg = ColorButtonHover
	}
	c.draw.DrawRect(x, y, checkboxSize, checkboxSize, bg)
	c.draw.DrawRectOutline(x, y, checkboxSize, checkboxSize, 1, ColorPanelBorder)
	if checked {
		const inset = 3
		c.draw.DrawRect(x+inset, y+inset, checkboxSize-2*inset, checkboxSize-2*inset, ColorHighlight)
	}
	c.draw.DrawText(x+checkboxSize+padding, y+(checkboxSize-th)/2, label, textScale, ColorText)

	c.cursorX += rect.W + padding
	return checked
}

// Slider draws a horizontal slider over [lo, hi] and returns the new value
// and whether it changed this frame. Dragging sets the value from the
// pointer; the wheel nudges it by a twentieth of the range per notch.
func (c *Context) Slider(id string, width float32, value, lo, hi float32, label string) (float32, bool) {
	if c.currentWindow == nil || hi <= lo {
		return value, false
	}
	h := c.rowH
	if h == 0 {
		h = 16
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{c.cursorX, c.cursorY, width, h}
	hovered := c.input.IsMouseInRect(rect)
	next := value

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
		}
		if c.input.Scroll != 0 {
			next += c.input.Scroll * (hi - lo) / 20
		}
	}
	if c.activeWidget == fullID {
		if c.input.MouseLeftDown || c.input.MouseLeftPressed {
			next = lo + (c.input.MouseX-rect.X)/rect.W*(hi-lo)
		}
		if c.input.MouseLeftReleased {
			c.activeWidget = ""
		}
	}
	next = min(max(next, lo), hi)

	c.draw.DrawRect(rect.X, rect.Y, rect.W, rect.H, ColorInputBg)
	c.draw.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder)
	fill := (rect.W - 2) * (next - lo) / (hi - lo)
	fillColor := ColorButtonActive
	if hovered || c.activeWidget == fullID {
		fillColor = fillColor.Lighten(0.2)
	}
	c.draw.DrawRect(rect.X+1, rect.Y+1, fill, rect.H-2, fillColor)
	c.draw.DrawRect(rect.X+fill-1, rect.Y, 3, rect.H, ColorHighlight)
	if label != "" {
		tw, th := c.draw.MeasureText(label, textScale)
		c.draw.DrawText(rect.X+(width-tw)/2, rect.Y+(h-th)/2, label, textScale, ColorText)
	}

	c.cursorX += width + spacing
	return next, next != value
}

// ProgressBar draws a read-only bar filled to fraction.
func (c *Context) ProgressBar(fraction float32, width, height float32, label string) {
	if c.currentWindow == nil {
		return
	}
	if height == 0 {
		height = 16
	}
	if width == 0 {
		width = c.contentWidth()
	}
	fraction = min(max(fraction, 0), 1)

	x, y := c.cursorX, c.cursorY
	c.draw.DrawRect(x, y, width, height, ColorInputBg)
	c.draw.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)
	c.draw.DrawRect(x+1, y+1, (width-2)*fraction, height-2, ColorButtonActive)
	if label != "" {
		tw, th := c.draw.MeasureText(label, textScale)
		c.draw.DrawText(x+(width-tw)/2, y+(height-th)/2, label, textScale, ColorText)
	}

	c.cursorX = c.currentWindow.Rect.X + padding
	c.cursorY += height + spacing
	c.rowH = 0
}

// Separator draws a horizontal rule below the current row.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + spacing
	c.rowH = 0
	x := c.currentWindow.Rect.X + padding
	c.draw.DrawRect(x, c.cursorY, c.contentWidth(), 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}
