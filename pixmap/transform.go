package pixmap

import "math"

// FlipHorizontally mirrors the pixmap around its vertical axis, in place.
func (p *Pixmap) FlipHorizontally() {
	src := p.Clone()
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.SetPixel(x, y, src.GetPixel(p.width-1-x, y))
		}
	}
}

// FlipVertically mirrors the pixmap around its horizontal axis, in place.
func (p *Pixmap) FlipVertically() {
	src := p.Clone()
	row := p.width * 4
	for y := 0; y < p.height; y++ {
		from := (p.height - 1 - y) * row
		copy(p.data[y*row:(y+1)*row], src.data[from:from+row])
	}
}

// TintMode selects how Tint combines a pixel with the tint color.
type TintMode uint8

const (
	// TintAlpha scales each channel by the matching tint channel: v*t/255.
	TintAlpha TintMode = iota

	// TintMultiply multiplies channels with rounding, using the
	// ((t>>8)+t)>>8 approximation of a division by 255.
	TintMultiply
)

// String returns the name of the tint mode.
func (m TintMode) String() string {
	switch m {
	case TintAlpha:
		return "alpha"
	case TintMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// Tint multiplies every pixel by c according to mode.
// Unknown modes leave the pixmap unchanged and return ErrInvalidArgument.
func (p *Pixmap) Tint(c Color, mode TintMode) error {
	var fn func(v, t uint8) uint8
	switch mode {
	case TintAlpha:
		fn = func(v, t uint8) uint8 { return uint8(uint32(v) * uint32(t) / 255) }
	case TintMultiply:
		fn = func(v, t uint8) uint8 {
			m := uint32(v)*uint32(t) + 128
			return uint8(((m >> 8) + m) >> 8)
		}
	default:
		return ErrInvalidArgument
	}

	tint := [4]uint8{c.R, c.G, c.B, c.A}
	for i := 0; i < len(p.data); i++ {
		p.data[i] = fn(p.data[i], tint[i&3])
	}
	return nil
}

// NormalMap derives a tangent-space normal map from the luminance of p.
//
// Gradients are computed with a Sobel operator over clamped neighbors and
// scaled by strength; the normal (-dx, -dy, 1) is normalized and packed into
// RGB as (n+1)/2*255 with full alpha.
func (p *Pixmap) NormalMap(strength float64) *Pixmap {
	out := MustNew(p.width, p.height)

	lum := func(x, y int) float64 {
		x = min(max(x, 0), p.width-1)
		y = min(max(y, 0), p.height-1)
		c := p.GetPixel(x, y)
		return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	}

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			tl, t, tr := lum(x-1, y-1), lum(x, y-1), lum(x+1, y-1)
			l, r := lum(x-1, y), lum(x+1, y)
			bl, b, br := lum(x-1, y+1), lum(x, y+1), lum(x+1, y+1)

			dx := (tr + 2*r + br) - (tl + 2*l + bl)
			dy := (bl + 2*b + br) - (tl + 2*t + tr)

			nx, ny, nz := -dx*strength, -dy*strength, 1.0
			n := math.Sqrt(nx*nx + ny*ny + nz*nz)
			nx, ny, nz = nx/n, ny/n, nz/n

			out.SetPixel(x, y, Color{
				R: uint8((nx + 1) / 2 * 255),
				G: uint8((ny + 1) / 2 * 255),
				B: uint8((nz + 1) / 2 * 255),
				A: 255,
			})
		}
	}
	return out
}
