// Package color provides the packed RGBA color type used throughout rasty,
// along with the saturating arithmetic the lighting and blending code relies
// on.
package color

import "math"

// Color is a 32-bit packed color: 8 bits each of red, green, blue, alpha.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA creates a color from 8-bit channel values including alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// FromHex parses a 0xRRGGBB value into an opaque Color, as used by the
// scene config's `model` directive.
func FromHex(hex uint32) Color {
	return Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 255,
	}
}

func saturatingAdd(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func saturatingSub(a, b uint8) uint8 {
	diff := int(a) - int(b)
	if diff < 0 {
		return 0
	}
	return uint8(diff)
}

// Add returns a saturating component-wise sum; each channel clamps at 0xFF.
func (c Color) Add(o Color) Color {
	return Color{
		R: saturatingAdd(c.R, o.R),
		G: saturatingAdd(c.G, o.G),
		B: saturatingAdd(c.B, o.B),
		A: saturatingAdd(c.A, o.A),
	}
}

// Sub returns a saturating component-wise difference; each channel clamps at 0.
func (c Color) Sub(o Color) Color {
	return Color{
		R: saturatingSub(c.R, o.R),
		G: saturatingSub(c.G, o.G),
		B: saturatingSub(c.B, o.B),
		A: saturatingSub(c.A, o.A),
	}
}

// Scale multiplies each channel by f, flooring the result and saturating at
// 0xFF. f in [0,1] darkens the color; f > 1 brightens it.
func (c Color) Scale(f float64) Color {
	clamp := func(ch uint8) uint8 {
		v := math.Floor(float64(ch) * f)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: c.A}
}

// Div divides each channel by f.
func (c Color) Div(f float64) Color {
	return c.Scale(1 / f)
}

// Lerp linearly interpolates between c and o by t in [0,1].
func (c Color) Lerp(o Color, t float64) Color {
	lerpCh := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{
		R: lerpCh(c.R, o.R),
		G: lerpCh(c.G, o.G),
		B: lerpCh(c.B, o.B),
		A: lerpCh(c.A, o.A),
	}
}
