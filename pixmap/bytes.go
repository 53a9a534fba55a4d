package pixmap

import (
	"fmt"
	"io"
)

// Bytes returns a copy of the whole pixmap as row-major RGBA quads.
func (p *Pixmap) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// ToByteArray exports the rectangle (x, y, width, height) as row-major RGBA
// quads.
//
// A negative origin shrinks the rectangle by the part that lies before the
// edge, and a rectangle running past the right or bottom edge is clipped to
// it. Errors:
//   - ErrInvalidDimension if width or height is less than one;
//   - ErrOutOfRange if the origin is beyond the right or bottom edge, or if
//     clipping leaves nothing to export.
func (p *Pixmap) ToByteArray(x, y, width, height int) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if x > p.width-1 || y > p.height-1 {
		return nil, fmt.Errorf("%w: origin (%d,%d) outside %dx%d", ErrOutOfRange, x, y, p.width, p.height)
	}

	if x < 0 {
		width += x
		x = 0
	}
	if y < 0 {
		height += y
		y = 0
	}
	width = min(width, p.width-x)
	height = min(height, p.height-y)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: clipped region is empty", ErrOutOfRange)
	}

	out := make([]byte, width*height*4)
	row := width * 4
	for j := 0; j < height; j++ {
		from := ((y+j)*p.width + x) * 4
		copy(out[j*row:(j+1)*row], p.data[from:from+row])
	}
	return out, nil
}

// WriteRaw writes the pixmap to w as a raw dump of RGBA quads. No header is
// written; the dimensions must be kept by the caller to read it back with
// FromBytes.
func (p *Pixmap) WriteRaw(w io.Writer) error {
	if _, err := w.Write(p.data); err != nil {
		return fmt.Errorf("pixmap: write raw: %w", err)
	}
	return nil
}
