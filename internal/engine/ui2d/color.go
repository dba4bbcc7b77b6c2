package ui2d

import "github.com/lucasb-eyer/go-colorful"

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Panel theme.
var (
	ColorPanelBg      = Color{0.06, 0.07, 0.09, 0.88}
	ColorPanelBorder  = Color{0.28, 0.3, 0.36, 1}
	ColorTitleBg      = Color{0.12, 0.13, 0.17, 1}
	ColorButtonNormal = Color{0.15, 0.16, 0.2, 1}
	ColorButtonHover  = Color{0.24, 0.26, 0.33, 1}
	ColorButtonActive = Color{0.12, 0.32, 0.5, 1}
	ColorInputBg      = Color{0.04, 0.05, 0.07, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.52, 0.54, 0.6, 1}
	ColorHighlight    = Color{0.95, 0.55, 0.15, 1}
)

// FromColorful converts a heat map colour to a UI colour with full alpha.
func FromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
