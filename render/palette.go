package render

import (
	"image/color"
	"math"
)

// RGB is one 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Palette is a cyclic table of anchor colors.
type Palette [16]RGB

// DefaultPalette returns the anchors running brown, through deep blue and
// light blue, to yellow and back.
func DefaultPalette() Palette { return defaultPalette }

var defaultPalette = Palette{
	{66, 30, 15},
	{25, 7, 26},
	{9, 1, 47},
	{4, 4, 73},
	{0, 7, 100},
	{12, 44, 138},
	{24, 82, 177},
	{57, 125, 209},
	{134, 181, 229},
	{211, 236, 248},
	{241, 233, 191},
	{248, 201, 95},
	{255, 170, 0},
	{204, 128, 0},
	{153, 87, 0},
	{106, 52, 3},
}

// Lookup returns the anchor at index modulo the palette length.
func (p *Palette) Lookup(index int) RGB {
	n := len(p)
	i := index % n
	if i < 0 {
		i += n
	}
	return p[i]
}

// At returns the color of the smooth iteration value v: the anchors at
// trunc(v) and trunc(v)+1 blended by the fractional part of v.
// Negative, NaN and infinite values are clamped to 0.
func (p *Palette) At(v float64) RGB {
	if !(v > 0) || math.IsInf(v, 1) {
		v = 0
	}
	whole, frac := math.Modf(v)
	// reduce before converting so huge values stay in int range
	i := int(math.Mod(whole, float64(len(p))))
	return Lerp(p.Lookup(i), p.Lookup(i+1), frac)
}

// Lerp blends c1 and c2 channel by channel, truncating toward zero.
func Lerp(c1, c2 RGB, t float64) RGB {
	return RGB{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return clampByte(float64(a)*(1-t) + float64(b)*t)
}

// clampByte truncates v into [0, 255]; NaN maps to 0.
func clampByte(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
