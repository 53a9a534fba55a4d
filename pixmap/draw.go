package pixmap

import (
	"fmt"
	"math"
)

// scratch holds the temporary extraction buffers used by Draw.
var scratch = NewPool(8)

// DrawAt blends all of src onto p with its top-left corner at (x, y).
// A nil src is ignored.
func (p *Pixmap) DrawAt(src *Pixmap, x, y int) {
	if src == nil {
		return
	}
	_ = p.Draw(src, x, y, src.width, src.height, 0, 0, src.width, src.height)
}

// DrawScaled blends all of src onto p, stretched to width x height at (x, y).
func (p *Pixmap) DrawScaled(src *Pixmap, x, y, width, height int) error {
	if src == nil {
		return ErrNilSource
	}
	return p.Draw(src, x, y, width, height, 0, 0, src.width, src.height)
}

// Draw blends the source rectangle (srcX, srcY, srcWidth, srcHeight) of src
// onto the destination rectangle (dstX, dstY, dstWidth, dstHeight) of p,
// resampling with nearest-neighbor when the sizes differ.
//
// Boundary policy: if either rectangle misses its image entirely the call is
// a no-op. Source samples that fall outside src are treated as transparent,
// and destination pixels outside p are dropped.
//
// Returns ErrNilSource if src is nil and ErrInvalidDimension if any width or
// height is less than one.
func (p *Pixmap) Draw(src *Pixmap, dstX, dstY, dstWidth, dstHeight, srcX, srcY, srcWidth, srcHeight int) error {
	if src == nil {
		return ErrNilSource
	}
	if srcWidth < 1 || srcHeight < 1 {
		return fmt.Errorf("%w: source %dx%d", ErrInvalidDimension, srcWidth, srcHeight)
	}
	if dstWidth < 1 || dstHeight < 1 {
		return fmt.Errorf("%w: destination %dx%d", ErrInvalidDimension, dstWidth, dstHeight)
	}

	if !intersects(dstX, dstY, dstWidth, dstHeight, p.width, p.height) ||
		!intersects(srcX, srcY, srcWidth, srcHeight, src.width, src.height) {
		return nil
	}

	tmp := scratch.Get(srcWidth, srcHeight)
	defer scratch.Put(tmp)

	// Copy the overlapping part of the source; the rest stays transparent.
	x0, x1 := max(srcX, 0), min(srcX+srcWidth, src.width)
	y0, y1 := max(srcY, 0), min(srcY+srcHeight, src.height)
	for sy := y0; sy < y1; sy++ {
		from := (sy*src.width + x0) * 4
		to := ((sy-srcY)*srcWidth + (x0 - srcX)) * 4
		copy(tmp.data[to:to+(x1-x0)*4], src.data[from:from+(x1-x0)*4])
	}

	scaled := tmp
	if dstWidth != srcWidth || dstHeight != srcHeight {
		scaled = tmp.resample(dstWidth, dstHeight)
	}

	for y := 0; y < scaled.height; y++ {
		ty := y + dstY
		if ty < 0 || ty >= p.height {
			continue
		}
		for x := 0; x < scaled.width; x++ {
			tx := x + dstX
			if tx < 0 || tx >= p.width {
				continue
			}
			p.BlendPixel(tx, ty, scaled.GetPixel(x, y))
		}
	}
	return nil
}

// Scale returns a new pixmap resized by the factors sx and sy using
// nearest-neighbor sampling. The target size is max(1, round(dim*factor)).
// Returns ErrInvalidArgument if either factor is not positive.
func (p *Pixmap) Scale(sx, sy float64) (*Pixmap, error) {
	if !(sx > 0) || !(sy > 0) {
		return nil, fmt.Errorf("%w: scale %vx%v", ErrInvalidArgument, sx, sy)
	}
	width := max(1, int(math.Round(float64(p.width)*sx)))
	height := max(1, int(math.Round(float64(p.height)*sy)))
	return p.resample(width, height), nil
}

// resample produces a width x height nearest-neighbor copy of p.
//
// Target index i maps to the normalized coordinate u = i/(target-1) and then
// to the source index round(u*(src-1)), so both edges of the target land on
// both edges of the source. A single-pixel target uses u = 1 and therefore
// samples the last row or column.
func (p *Pixmap) resample(width, height int) *Pixmap {
	out := MustNew(width, height)

	xs := sampleIndices(width, p.width)
	ys := sampleIndices(height, p.height)

	for y, sy := range ys {
		for x, sx := range xs {
			si := (sy*p.width + sx) * 4
			di := (y*width + x) * 4
			copy(out.data[di:di+4], p.data[si:si+4])
		}
	}
	return out
}

func sampleIndices(target, source int) []int {
	idx := make([]int, target)
	for i := range idx {
		u := 1.0
		if target > 1 {
			u = float64(i) / float64(target-1)
		}
		idx[i] = int(math.Round(u * float64(source-1)))
	}
	return idx
}

// intersects reports whether the rectangle (x, y, w, h) overlaps [0,bw)x[0,bh).
func intersects(x, y, w, h, bw, bh int) bool {
	return x < bw && y < bh && x+w > 0 && y+h > 0
}
