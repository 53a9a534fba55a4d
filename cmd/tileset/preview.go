package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-sixel"

	"github.com/gogpu/tileset/pixmap"
)

// maxPreviewSize bounds the longer side of a terminal preview in pixels.
const maxPreviewSize = 512

// preview writes img to w as sixel graphics, scaled to fit maxPreviewSize.
// Small images are enlarged with nearest-neighbor so single pixels stay
// visible.
func preview(w io.Writer, img *pixmap.Pixmap) error {
	width, height := fitPreview(img.Width(), img.Height(), maxPreviewSize)

	interp := pixmap.ApproxBiLinear
	if width >= img.Width() {
		interp = pixmap.NearestNeighbor
	}
	scaled, err := img.Resample(width, height, interp)
	if err != nil {
		return err
	}

	enc := sixel.NewEncoder(w)
	if err := enc.Encode(scaled.ToImage()); err != nil {
		return fmt.Errorf("encode sixel: %w", err)
	}
	return nil
}

// fitPreview scales (w, h) so the longer side equals limit, preserving the
// aspect ratio. Sides never drop below one pixel.
func fitPreview(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// colorValue is a pflag.Value parsing hex colors.
type colorValue pixmap.Color

func (c *colorValue) String() string { return pixmap.Color(*c).String() }

func (c *colorValue) Set(s string) error {
	v, err := pixmap.Hex(s)
	if err != nil {
		return err
	}
	*c = colorValue(v)
	return nil
}

func (c *colorValue) Type() string { return "color" }
