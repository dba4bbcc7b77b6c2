package ui2d

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked into the atlas; other runes draw as '?'.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	fallback     = '?'
	atlasColumns = 16
)

// Font is a fixed-width bitmap font rasterised into an alpha atlas. The
// atlas is plain memory so layout can be measured without a GL context;
// Renderer uploads it as a texture.
type Font struct {
	atlas   *image.Alpha
	advance int
	height  int
}

// NewFont bakes the 7x13 basic face.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{advance: face.Advance, height: face.Height}

	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasColumns - 1) / atlasColumns
	f.atlas = image.NewAlpha(image.Rect(0, 0, atlasColumns*f.advance, rows*f.height))

	for r := firstGlyph; r <= lastGlyph; r++ {
		cell := f.cell(r)
		dot := fixed.P(cell.Min.X, cell.Min.Y+face.Ascent)
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		draw.DrawMask(f.atlas, dr.Intersect(cell), image.Opaque, image.Point{}, mask, maskp, draw.Over)
	}
	return f
}

// cell returns the atlas rectangle of r.
func (f *Font) cell(r rune) image.Rectangle {
	if r < firstGlyph || r > lastGlyph {
		r = fallback
	}
	i := int(r - firstGlyph)
	x := (i % atlasColumns) * f.advance
	y := (i / atlasColumns) * f.height
	return image.Rect(x, y, x+f.advance, y+f.height)
}

// Atlas returns the single-channel glyph atlas.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

// GlyphSize returns the cell size of one glyph in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.advance, f.height
}

// GlyphUV returns the texture coordinates of r in the atlas.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	c := f.cell(r)
	w := float32(f.atlas.Rect.Dx())
	h := float32(f.atlas.Rect.Dy())
	return float32(c.Min.X) / w, float32(c.Min.Y) / h, float32(c.Max.X) / w, float32(c.Max.Y) / h
}

// MeasureText returns the size of text drawn at scale. Lines break on '\n'.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, widest, n := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			n = 0
			continue
		}
		n++
		widest = max(widest, n)
	}
	return float32(widest*f.advance) * scale, float32(lines*f.height) * scale
}
