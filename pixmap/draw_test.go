package pixmap

import (
	"errors"
	"math"
	"testing"
)

// checker returns a w x h pixmap with a distinct opaque color per pixel.
func checker(w, h int) *Pixmap {
	p := MustNew(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.SetPixel(x, y, Color{uint8(x * 17), uint8(y * 29), uint8(x*y + 1), 255})
		}
	}
	return p
}

func TestScale_IdentityMatchesClone(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 5}, {7, 3}, {16, 16}} {
		p := checker(size[0], size[1])
		s, err := p.Scale(1, 1)
		if err != nil {
			t.Fatalf("Scale(1, 1): %v", err)
		}
		if !s.Equal(p.Clone()) {
			t.Errorf("%dx%d: Scale(1, 1) differs from Clone()", size[0], size[1])
		}
	}
}

func TestScale_InvalidFactors(t *testing.T) {
	p := MustNew(2, 2)
	for _, f := range [][2]float64{{0, 1}, {1, 0}, {-1, 1}, {1, -0.5}, {math.NaN(), 1}} {
		if _, err := p.Scale(f[0], f[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Scale(%v, %v) error = %v, want ErrInvalidArgument", f[0], f[1], err)
		}
	}
}

func TestScale_Dimensions(t *testing.T) {
	p := MustNew(10, 4)
	tests := []struct {
		sx, sy float64
		w, h   int
	}{
		{2, 2, 20, 8},
		{0.5, 0.5, 5, 2},
		{0.01, 0.01, 1, 1},
		{0.25, 1, 3, 4}, // round(2.5) = 3
	}
	for _, tt := range tests {
		s, err := p.Scale(tt.sx, tt.sy)
		if err != nil {
			t.Fatalf("Scale(%v, %v): %v", tt.sx, tt.sy, err)
		}
		if s.Width() != tt.w || s.Height() != tt.h {
			t.Errorf("Scale(%v, %v) size = %dx%d, want %dx%d", tt.sx, tt.sy, s.Width(), s.Height(), tt.w, tt.h)
		}
	}
}

func TestScale_SinglePixelTargetSamplesLastEdge(t *testing.T) {
	p := checker(4, 4)
	s, err := p.Scale(0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.GetPixel(0, 0), p.GetPixel(3, 3); got != want {
		t.Errorf("1x1 sample = %v, want bottom-right %v", got, want)
	}
}

func TestScale_UpsampleNearest(t *testing.T) {
	p := MustNew(2, 1)
	p.SetPixel(0, 0, Red)
	p.SetPixel(1, 0, Blue)

	s, err := p.Scale(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	// u = 0, 1/3, 2/3, 1 -> round(u) = 0, 0, 1, 1
	want := []Color{Red, Red, Blue, Blue}
	for x, w := range want {
		if got := s.GetPixel(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDraw_Errors(t *testing.T) {
	dst := MustNew(4, 4)
	src := MustNew(2, 2)

	if err := dst.Draw(nil, 0, 0, 1, 1, 0, 0, 1, 1); !errors.Is(err, ErrNilSource) {
		t.Errorf("nil source error = %v, want ErrNilSource", err)
	}
	bad := [][4]int{{0, 1, 1, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, -1}}
	for _, b := range bad {
		err := dst.Draw(src, 0, 0, b[0], b[1], 0, 0, b[2], b[3])
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Draw sizes %v error = %v, want ErrInvalidDimension", b, err)
		}
	}
	if err := dst.DrawScaled(nil, 0, 0, 1, 1); !errors.Is(err, ErrNilSource) {
		t.Errorf("DrawScaled(nil) error = %v, want ErrNilSource", err)
	}
}

func TestDraw_CopiesSubRectangle(t *testing.T) {
	src := checker(4, 4)
	dst := MustNew(4, 4)

	if err := dst.Draw(src, 1, 1, 2, 2, 2, 2, 2, 2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Transparent
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = src.GetPixel(x+1, y+1)
			}
			if got := dst.GetPixel(x, y); got != want {
				t.Errorf("dst(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDraw_OffCanvasIsNoop(t *testing.T) {
	src := checker(3, 3)
	tests := []struct {
		name           string
		dx, dy, sx, sy int
	}{
		{"dest right", 4, 0, 0, 0},
		{"dest below", 0, 4, 0, 0},
		{"dest left", -3, 0, 0, 0},
		{"dest above", 0, -3, 0, 0},
		{"src right", 0, 0, 3, 0},
		{"src below", 0, 0, 0, 3},
		{"src left", 0, 0, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := MustNew(4, 4)
			dst.Clear(Gray)
			before := dst.Clone()
			if err := dst.Draw(src, tt.dx, tt.dy, 3, 3, tt.sx, tt.sy, 3, 3); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if !dst.Equal(before) {
				t.Error("off-canvas draw modified destination")
			}
		})
	}
}

func TestDraw_ClipsPartialOverlap(t *testing.T) {
	src := MustNew(3, 3)
	src.Clear(Red)
	dst := MustNew(4, 4)

	dst.DrawAt(src, -1, 2)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Transparent
			if x < 2 && y >= 2 {
				want = Red
			}
			if got := dst.GetPixel(x, y); got != want {
				t.Errorf("dst(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDraw_SourceOutsideSamplesTransparent(t *testing.T) {
	src := MustNew(2, 2)
	src.Clear(Blue)
	dst := MustNew(4, 4)
	dst.Clear(Green)

	// Source rectangle starts one pixel before src; that column stays
	// transparent and must leave the destination untouched.
	if err := dst.Draw(src, 0, 0, 3, 2, -1, 0, 3, 2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		if got := dst.GetPixel(0, y); got != Green {
			t.Errorf("dst(0, %d) = %v, want green", y, got)
		}
		for x := 1; x < 3; x++ {
			if got := dst.GetPixel(x, y); got != Blue {
				t.Errorf("dst(%d, %d) = %v, want blue", x, y, got)
			}
		}
	}
}

func TestDraw_BlendsOntoDestination(t *testing.T) {
	src := MustNew(1, 1)
	src.SetPixel(0, 0, Color{255, 0, 0, 0})
	dst := MustNew(1, 1)
	dst.Clear(Blue)

	dst.DrawAt(src, 0, 0)
	if got := dst.GetPixel(0, 0); got != Blue {
		t.Errorf("transparent source overwrote destination: %v", got)
	}
}

func TestDrawScaled(t *testing.T) {
	src := MustNew(1, 1)
	src.Clear(Yellow)
	dst := MustNew(5, 5)

	if err := dst.DrawScaled(src, 1, 1, 3, 3); err != nil {
		t.Fatal(err)
	}
	count := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if dst.GetPixel(x, y) == Yellow {
				count++
			}
		}
	}
	if count != 9 {
		t.Errorf("scaled pixels = %d, want 9", count)
	}
}

func TestDraw_ReturnsScratchToPool(t *testing.T) {
	src := checker(5, 3)
	dst := MustNew(8, 8)
	before := scratch.Len()
	dst.DrawAt(src, 0, 0)
	if scratch.Len() < before {
		t.Errorf("scratch pool shrank: %d -> %d", before, scratch.Len())
	}
	// Reused buffers come back transparent.
	tmp := scratch.Get(5, 3)
	defer scratch.Put(tmp)
	if !tmp.Equal(MustNew(5, 3)) {
		t.Error("pooled scratch buffer is not transparent")
	}
}
