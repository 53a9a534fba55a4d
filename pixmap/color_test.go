package pixmap

import (
	"errors"
	"image/color"
	"testing"
)

func TestBlend_OpaqueOverlayWins(t *testing.T) {
	if got := Blend(Red, Blue); got != Blue {
		t.Errorf("Blend(red, blue) = %v, want %v", got, Blue)
	}
}

func TestBlend_TransparentOverlayIsNoop(t *testing.T) {
	for _, c := range []Color{Red, {10, 20, 30, 40}, Transparent} {
		if got := Blend(c, Transparent); got != c {
			t.Errorf("Blend(%v, transparent) = %v, want %v", c, got, c)
		}
		if got := Blend(c, Color{255, 255, 255, 0}); got != c {
			t.Errorf("Blend(%v, zero-alpha white) = %v, want %v", c, got, c)
		}
	}
}

func TestBlend_ZeroOutputAlpha(t *testing.T) {
	tests := []struct {
		base, overlay Color
	}{
		{Color{10, 20, 30, 0}, Color{40, 50, 60, 0}},
		{Color{200, 100, 50, 0}, Transparent},
		{Transparent, Color{255, 255, 255, 0}},
	}
	for _, tt := range tests {
		if got := Blend(tt.base, tt.overlay); got != Transparent {
			t.Errorf("Blend(%v, %v) = %v, want %v", tt.base, tt.overlay, got, Transparent)
		}
	}
}

func TestBlend_HalfOverOpaque(t *testing.T) {
	got := Blend(Black, Color{255, 255, 255, 128})
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
	// 128/255 of white over black, truncated.
	if got.R != 128 && got.R != 127 {
		t.Errorf("R = %d, want ~128", got.R)
	}
	if got.R != got.G || got.G != got.B {
		t.Errorf("channels differ: %v", got)
	}
}

func TestBlend_OverTransparentBase(t *testing.T) {
	over := Color{200, 100, 50, 100}
	got := Blend(Transparent, over)
	if got.A != 100 {
		t.Errorf("alpha = %d, want 100", got.A)
	}
	// Color channels are not premultiplied, so they survive within truncation.
	for _, d := range []int{int(got.R) - 200, int(got.G) - 100, int(got.B) - 50} {
		if d < -1 || d > 0 {
			t.Errorf("Blend(transparent, %v) = %v, channels should match", over, got)
			break
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"f00", Red},
		{"#00ff00", Green},
		{"0000ff80", Color{0, 0, 255, 128}},
		{"#1234", Color{0x11, 0x22, 0x33, 0x44}},
	}
	for _, tt := range tests {
		got, err := Hex(tt.in)
		if err != nil {
			t.Errorf("Hex(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "zzzzzz", "1234567890"} {
		if _, err := Hex(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Hex(%q) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestColor_StdlibRoundTrip(t *testing.T) {
	c := Color{12, 34, 56, 255}
	if got := FromColor(c); got != c {
		t.Errorf("FromColor(c) = %v, want %v", got, c)
	}
	if got := FromColor(color.RGBA{255, 0, 0, 255}); got != Red {
		t.Errorf("FromColor(opaque red) = %v, want %v", got, Red)
	}
	if s := c.String(); s != "#0c2238ff" {
		t.Errorf("String() = %q, want #0c2238ff", s)
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{-0.5, 0},
		{1.5, 255},
		{0.5, 127},
		{100.0 / 255, 100},
		// Within 1e-7 of the next step rounds up; float error would
		// otherwise lose a whole unit.
		{0.99999999999, 255},
	}
	for _, tt := range tests {
		if got := toByte(tt.in); got != tt.want {
			t.Errorf("toByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
