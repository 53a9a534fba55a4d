package pixmap

import (
	"errors"
	"testing"
)

func TestResample_NearestNeighbor(t *testing.T) {
	src := MustNew(2, 2)
	src.SetPixel(0, 0, Red)
	src.SetPixel(1, 0, Green)
	src.SetPixel(0, 1, Blue)
	src.SetPixel(1, 1, White)

	got, err := src.Resample(4, 4, NearestNeighbor)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := src.GetPixel(x/2, y/2)
			if c := got.GetPixel(x, y); c != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestResample_Kernels(t *testing.T) {
	src := MustNew(8, 8)
	src.Clear(Gray)
	for _, interp := range []Interpolation{NearestNeighbor, ApproxBiLinear, BiLinear, CatmullRom} {
		got, err := src.Resample(3, 5, interp)
		if err != nil {
			t.Fatalf("interp %d: %v", interp, err)
		}
		if got.Width() != 3 || got.Height() != 5 {
			t.Errorf("interp %d: size = %dx%d, want 3x5", interp, got.Width(), got.Height())
		}
	}
}

func TestResample_Errors(t *testing.T) {
	src := MustNew(2, 2)
	if _, err := src.Resample(2, 2, Interpolation(42)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown interpolation: %v, want ErrInvalidArgument", err)
	}
	if _, err := src.Resample(0, 2, BiLinear); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero width: %v, want ErrInvalidDimension", err)
	}
}

func TestDrawString(t *testing.T) {
	p := MustNew(40, 20)
	p.DrawString("AB", 1, 1, White)

	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if p.GetPixel(x, y).A != 0 {
				inked++
				if x >= 1+MeasureString("AB") || y >= 1+TextHeight {
					t.Errorf("ink at (%d,%d) outside the text box", x, y)
				}
			}
		}
	}
	if inked == 0 {
		t.Error("DrawString drew nothing")
	}

	// Off-canvas text is clipped silently.
	p.DrawString("off", -100, -100, White)
	p.DrawString("off", 500, 500, White)
}

func TestMeasureString(t *testing.T) {
	if got := MeasureString("AB"); got != 14 {
		t.Errorf("MeasureString(AB) = %d, want 14", got)
	}
	if got := MeasureString(""); got != 0 {
		t.Errorf("MeasureString(\"\") = %d, want 0", got)
	}
}
