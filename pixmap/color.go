package pixmap

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Gray        = Color{128, 128, 128, 255}
)

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// String returns the color in "#rrggbbaa" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// FromColor converts a standard color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. Returns ErrInvalidArgument for anything else.
func Hex(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [8]uint8
	for i := 0; i < len(hex) && i < len(v); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidArgument, hex)
		}
		v[i] = d
	}

	switch len(hex) {
	case 3:
		return Color{v[0] * 17, v[1] * 17, v[2] * 17, 255}, nil
	case 4:
		return Color{v[0] * 17, v[1] * 17, v[2] * 17, v[3] * 17}, nil
	case 6:
		return Color{v[0]<<4 | v[1], v[2]<<4 | v[3], v[4]<<4 | v[5], 255}, nil
	case 8:
		return Color{v[0]<<4 | v[1], v[2]<<4 | v[3], v[4]<<4 | v[5], v[6]<<4 | v[7]}, nil
	default:
		return Color{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidArgument, hex)
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Blend composites overlay over base with the Porter-Duff "over" operator.
//
// The math is done in normalized floating point:
//
//	outA = srcA + dstA*(1-srcA)
//	outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA
//
// and each channel is truncated back to a byte. A zero output alpha yields
// Transparent. A fully opaque overlay returns overlay and a fully transparent
// one returns base unchanged when base has any coverage.
func Blend(base, overlay Color) Color {
	switch overlay.A {
	case 255:
		return overlay
	case 0:
		if base.A == 0 {
			return Transparent
		}
		return base
	}

	sa := float64(overlay.A) / 255
	da := float64(base.A) / 255

	oa := sa + da*(1-sa)
	if oa <= 0 {
		return Transparent
	}

	ch := func(s, d uint8) uint8 {
		sc := float64(s) / 255
		dc := float64(d) / 255
		return toByte((sc*sa + dc*da*(1-sa)) / oa)
	}

	return Color{
		R: ch(overlay.R, base.R),
		G: ch(overlay.G, base.G),
		B: ch(overlay.B, base.B),
		A: toByte(oa),
	}
}

// toByte truncates a normalized channel to a byte. The epsilon keeps values
// such as 0.9999999999 from dropping a whole step.
func toByte(v float64) uint8 {
	return uint8(clamp01(v)*255 + 1e-7)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
