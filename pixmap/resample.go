package pixmap

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Interpolation selects the kernel used by Resample.
type Interpolation uint8

const (
	// NearestNeighbor picks the closest source pixel.
	NearestNeighbor Interpolation = iota

	// ApproxBiLinear is a fast bilinear approximation.
	ApproxBiLinear

	// BiLinear is a true bilinear filter.
	BiLinear

	// CatmullRom is a bicubic filter; slowest, highest quality.
	CatmullRom
)

func (i Interpolation) scaler() (xdraw.Scaler, error) {
	switch i {
	case NearestNeighbor:
		return xdraw.NearestNeighbor, nil
	case ApproxBiLinear:
		return xdraw.ApproxBiLinear, nil
	case BiLinear:
		return xdraw.BiLinear, nil
	case CatmullRom:
		return xdraw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("%w: interpolation %d", ErrInvalidArgument, i)
	}
}

// Resample returns a width x height copy of p filtered with the given
// interpolation kernel. Unlike Scale, which reproduces the edge-biased
// nearest-neighbor rule used by Draw, Resample is meant for previews where
// visual quality matters more than exact sampling.
func (p *Pixmap) Resample(width, height int, interp Interpolation) (*Pixmap, error) {
	s, err := interp.scaler()
	if err != nil {
		return nil, err
	}
	out, err := New(width, height)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), p.ToImage(), p.Bounds(), xdraw.Src, nil)
	copy(out.data, dst.Pix)
	return out, nil
}

// TextHeight is the line height in pixels of the face used by DrawString.
const TextHeight = 13

// DrawString blends text onto p with its top-left corner at (x, y), using
// the 7x13 fixed-width face from x/image. Glyphs are composited over the
// existing pixels and clipped to the canvas.
func (p *Pixmap) DrawString(text string, x, y int, c Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  p,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

// MeasureString returns the advance width of text in pixels for the face
// used by DrawString.
func MeasureString(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
