// Package pixmap provides a CPU-side RGBA raster with compositing primitives.
//
// A Pixmap owns a contiguous slice of non-premultiplied RGBA bytes, four per
// pixel, stored row-major with index (y*width + x)*4. Drawing operations
// blend with the Porter-Duff "over" operator (see [Blend]) and clip silently
// at the canvas edges, so composing images never fails because an offset
// happens to hang off the canvas.
//
// Thread safety: a Pixmap is not synchronized. Concurrent reads are safe;
// any mutation requires external synchronization.
package pixmap

import (
	"errors"
	"fmt"
)

// Common errors for pixmap operations.
var (
	// ErrInvalidDimension is returned when a width or height is less than one.
	ErrInvalidDimension = errors.New("pixmap: invalid dimension")

	// ErrInvalidArgument is returned for non-positive scale factors and similar
	// argument errors.
	ErrInvalidArgument = errors.New("pixmap: invalid argument")

	// ErrOutOfRange is returned when a region lies outside the image.
	ErrOutOfRange = errors.New("pixmap: region out of range")

	// ErrNilSource is returned when a required source image is nil.
	ErrNilSource = errors.New("pixmap: nil source")

	// ErrDataSize is returned when a byte slice does not match the dimensions.
	ErrDataSize = errors.New("pixmap: data size mismatch")
)

// Pixmap is a rectangular RGBA pixel buffer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, not premultiplied
}

// New creates a transparent pixmap with the given dimensions.
// Returns ErrInvalidDimension if width or height is less than one.
func New(width, height int) (*Pixmap, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// MustNew is like New but panics on invalid dimensions.
// Intended for fixed sizes known at compile time.
func MustNew(width, height int) *Pixmap {
	p, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return p
}

// FromBytes creates a pixmap from row-major RGBA quads, as produced by
// ToByteArray or Bytes. The data is copied.
func FromBytes(width, height int, data []byte) (*Pixmap, error) {
	p, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != len(p.data) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), len(p.data))
	}
	copy(p.data, data)
	return p, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data. The slice aliases the pixmap storage
// until the next Resize.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// InBounds reports whether (x, y) addresses a pixel of p.
func (p *Pixmap) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if !p.InBounds(x, y) {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (p *Pixmap) GetPixel(x, y int) Color {
	if !p.InBounds(x, y) {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// BlendPixel composites c over the pixel at (x, y).
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) BlendPixel(x, y int, c Color) {
	if !p.InBounds(x, y) {
		return
	}
	p.SetPixel(x, y, Blend(p.GetPixel(x, y), c))
}

// Clear fills the entire pixmap with a color. No blending is performed.
func (p *Pixmap) Clear(c Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// Equal reports whether p and other have the same size and pixels.
func (p *Pixmap) Equal(other *Pixmap) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.width != other.width || p.height != other.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Resize changes the dimensions of the pixmap.
//
// A new transparent buffer is allocated and the existing content is blended
// onto it at the origin, so pixels beyond the new bounds are discarded and
// newly exposed pixels stay transparent. The storage is swapped only after the
// new buffer is complete.
func (p *Pixmap) Resize(width, height int) error {
	if width == p.width && height == p.height {
		return nil
	}
	tmp, err := New(width, height)
	if err != nil {
		return err
	}
	tmp.DrawAt(p, 0, 0)
	p.width = tmp.width
	p.height = tmp.height
	p.data = tmp.data
	return nil
}

// SetWidth resizes the pixmap horizontally, keeping its height.
func (p *Pixmap) SetWidth(width int) error {
	return p.Resize(width, p.height)
}

// SetHeight resizes the pixmap vertically, keeping its width.
func (p *Pixmap) SetHeight(height int) error {
	return p.Resize(p.width, height)
}
