package heatmap

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/geoheat/pkg/math"
)

// Mode selects how magnitudes are coloured.
type Mode int

const (
	// ModeBasic sweeps the hue across HueRange.
	ModeBasic Mode = iota
	// ModeGradient blends the low, medium and high gradient colours.
	ModeGradient
)

func (m Mode) String() string {
	if m == ModeBasic {
		return "basic"
	}
	return "gradient"
}

// ParseMode accepts "basic" and "gradient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "basic":
		return ModeBasic, nil
	case "gradient", "":
		return ModeGradient, nil
	default:
		return 0, fmt.Errorf("unknown colour mode %q", s)
	}
}

// HueRange is the hue sweep of ModeBasic, as fractions of a full turn.
// The low end is used for the largest magnitude.
var HueRange = math.Range{Min: 0.15, Max: 0.6}

// Gradient is a three-stop colour scale.
type Gradient struct {
	Low, Medium, High colorful.Color
}

// DefaultGradient runs yellow, orange, red.
func DefaultGradient() Gradient {
	g, err := ParseGradient("#ffe900", "#ff8c00", "#b51212")
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGradient builds a gradient from hex colours.
func ParseGradient(low, medium, high string) (Gradient, error) {
	var g Gradient
	for _, c := range []struct {
		hex string
		dst *colorful.Color
	}{
		{low, &g.Low},
		{medium, &g.Medium},
		{high, &g.High},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return Gradient{}, fmt.Errorf("gradient colour %q: %w", c.hex, err)
		}
		*c.dst = col
	}
	return g, nil
}

// At returns the colour at t in [0, 1]; t is clamped.
func (g Gradient) At(t float32) colorful.Color {
	t = math.Range{Min: 0, Max: 1}.Clamp(t)
	if t < 0.5 {
		return Blend(g.Low, g.Medium, t*2)
	}
	return Blend(g.Medium, g.High, (t-0.5)*2)
}

// Basic returns the ModeBasic colour at t in [0, 1].
func Basic(t float32) colorful.Color {
	t = math.Range{Min: 0, Max: 1}.Clamp(t)
	hue := HueRange.Max - t*HueRange.Span()
	return colorful.Hsv(float64(hue)*360, 1, 1)
}

// Colorize returns the colour for a normalised magnitude under mode.
func Colorize(mode Mode, g Gradient, t float32) colorful.Color {
	if mode == ModeBasic {
		return Basic(t)
	}
	return g.At(t)
}

// Luminance lightens (positive) or darkens (negative) every channel by the
// same amount, clamped to [0, 1].
func Luminance(c colorful.Color, amount float64) colorful.Color {
	return colorful.Color{R: c.R + amount, G: c.G + amount, B: c.B + amount}.Clamped()
}

// Blend linearly interpolates between a and b in RGB.
func Blend(a, b colorful.Color, t float32) colorful.Color {
	return a.BlendRgb(b, float64(t))
}

// RGBA returns c as float32 channels with the given alpha, ready for upload.
func RGBA(c colorful.Color, alpha float32) [4]float32 {
	c = c.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), alpha}
}
