package ui2d

// Vertex layouts: solid quads carry position xyz and rgba, text quads add uv.
const (
	solidStride = 7
	textStride  = 9
)

// DrawList collects one frame of panel geometry in screen pixels, y down.
type DrawList struct {
	font  *Font
	solid []float32
	text  []float32
}

// NewDrawList returns an empty list that lays text out with font.
func NewDrawList(font *Font) *DrawList {
	return &DrawList{
		font:  font,
		solid: make([]float32, 0, 4096),
		text:  make([]float32, 0, 4096),
	}
}

// Font returns the list's font.
func (d *DrawList) Font() *Font {
	return d.font
}

// Reset drops the previous frame.
func (d *DrawList) Reset() {
	d.solid = d.solid[:0]
	d.text = d.text[:0]
}

// Solid returns the queued solid vertices.
func (d *DrawList) Solid() []float32 {
	return d.solid
}

// Text returns the queued glyph vertices.
func (d *DrawList) Text() []float32 {
	return d.text
}

// DrawRect queues a filled rectangle.
func (d *DrawList) DrawRect(x, y, width, height float32, color Color) {
	if width <= 0 || height <= 0 {
		return
	}
	c := color
	d.solid = append(d.solid,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+width, y, 0, c.R, c.G, c.B, c.A,
		x+width, y+height, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+width, y+height, 0, c.R, c.G, c.B, c.A,
		x, y+height, 0, c.R, c.G, c.B, c.A,
	)
}

// DrawRectOutline queues a rectangle border of the given thickness.
func (d *DrawList) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	d.DrawRect(x, y, width, thickness, color)
	d.DrawRect(x, y+height-thickness, width, thickness, color)
	d.DrawRect(x, y+thickness, thickness, height-thickness*2, color)
	d.DrawRect(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel queues a filled rectangle with a one pixel border.
func (d *DrawList) DrawPanel(x, y, width, height float32, bg, border Color) {
	d.DrawRect(x, y, width, height, bg)
	d.DrawRectOutline(x, y, width, height, 1, border)
}

// DrawText queues text with its top-left corner at x, y.
func (d *DrawList) DrawText(x, y float32, text string, scale float32, color Color) {
	gw, gh := d.font.GlyphSize()
	w := float32(gw) * scale
	h := float32(gh) * scale
	c := color

	cx := x
	for _, r := range text {
		if r == '\n' {
			cx = x
			y += h
			continue
		}
		if r != ' ' {
			u0, v0, u1, v1 := d.font.GlyphUV(r)
			d.text = append(d.text,
				cx, y, 0, u0, v0, c.R, c.G, c.B, c.A,
				cx+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
				cx+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,

				cx, y, 0, u0, v0, c.R, c.G, c.B, c.A,
				cx+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
				cx, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
			)
		}
		cx += w
	}
}

// MeasureText returns the size of text drawn at scale.
func (d *DrawList) MeasureText(text string, scale float32) (float32, float32) {
	return d.font.MeasureText(text, scale)
}
