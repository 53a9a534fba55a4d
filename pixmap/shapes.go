package pixmap

import "math"

// DrawLine blends a one pixel wide line from (x1, y1) to (x2, y2).
//
// The line is walked with a DDA: starting at the first endpoint it advances
// by the unit direction vector floor(distance)+1 times, blending at the
// rounded position of every step. Positions outside the canvas are skipped
// without ending the walk, so a line may enter and leave the canvas.
func (p *Pixmap) DrawLine(x1, y1, x2, y2 int, c Color) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		p.BlendPixel(x1, y1, c)
		return
	}

	stepX, stepY := dx/dist, dy/dist
	fx, fy := float64(x1), float64(y1)
	steps := int(dist) + 1

	// Bail out early when the whole segment misses the canvas.
	if max(x1, x2) < 0 || min(x1, x2) >= p.width || max(y1, y2) < 0 || min(y1, y2) >= p.height {
		return
	}

	for i := 0; i < steps; i++ {
		p.BlendPixel(int(math.Round(fx)), int(math.Round(fy)), c)
		fx += stepX
		fy += stepY
	}
}

// normalizeRect turns negative extents into positive ones so that
// (x=5, w=-3) and (x=2, w=3) describe the same pixels.
func normalizeRect(x, y, w, h int) (int, int, int, int) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return x, y, w, h
}

// DrawRectangle blends the outline of a rectangle. Negative width or height
// extend the rectangle to the left or upwards. Each outline pixel is blended
// once, including the corners.
func (p *Pixmap) DrawRectangle(x, y, width, height int, c Color) {
	x, y, width, height = normalizeRect(x, y, width, height)
	if width == 0 || height == 0 {
		return
	}
	right := x + width - 1
	bottom := y + height - 1

	for i := x; i <= right; i++ {
		p.BlendPixel(i, y, c)
		if bottom != y {
			p.BlendPixel(i, bottom, c)
		}
	}
	for j := y + 1; j < bottom; j++ {
		p.BlendPixel(x, j, c)
		if right != x {
			p.BlendPixel(right, j, c)
		}
	}
}

// FillRectangle blends a filled rectangle, clipped to the canvas.
func (p *Pixmap) FillRectangle(x, y, width, height int, c Color) {
	x, y, width, height = normalizeRect(x, y, width, height)
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, p.width), min(y+height, p.height)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			p.BlendPixel(i, j, c)
		}
	}
}

// insideEllipse reports whether the center of pixel (i, j) lies in the
// ellipse inscribed in the rectangle (x, y, w, h).
func insideEllipse(i, j, x, y, w, h int) bool {
	rx := float64(w) / 2
	ry := float64(h) / 2
	nx := (float64(i) + 0.5 - (float64(x) + rx)) / rx
	ny := (float64(j) + 0.5 - (float64(y) + ry)) / ry
	return nx*nx+ny*ny <= 1
}

// FillEllipse blends the ellipse inscribed in the given rectangle.
func (p *Pixmap) FillEllipse(x, y, width, height int, c Color) {
	x, y, width, height = normalizeRect(x, y, width, height)
	if width == 0 || height == 0 {
		return
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, p.width), min(y+height, p.height)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			if insideEllipse(i, j, x, y, width, height) {
				p.BlendPixel(i, j, c)
			}
		}
	}
}

// DrawEllipse blends the one pixel outline of the ellipse inscribed in the
// given rectangle: the inside pixels that have a 4-neighbor outside.
func (p *Pixmap) DrawEllipse(x, y, width, height int, c Color) {
	x, y, width, height = normalizeRect(x, y, width, height)
	if width == 0 || height == 0 {
		return
	}
	in := func(i, j int) bool {
		if i < x || i >= x+width || j < y || j >= y+height {
			return false
		}
		return insideEllipse(i, j, x, y, width, height)
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, p.width), min(y+height, p.height)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			if !in(i, j) {
				continue
			}
			if !in(i-1, j) || !in(i+1, j) || !in(i, j-1) || !in(i, j+1) {
				p.BlendPixel(i, j, c)
			}
		}
	}
}
