// Package measure generates measurement textures: square or round swatches
// with a border, an optional grid, angle rays, orientation arrows and text
// labels. They are handy as placeholder art when checking scale, tiling and
// UV orientation.
//
//	cfg := measure.DefaultConfig()
//	cfg.Size = 256
//	cfg.Grid = true
//	tex, err := measure.Generate("floor", cfg)
package measure

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/tileset/pixmap"
)

// Limits applied by Config.Validate.
const (
	MaxBorderSize    = 200
	MaxAngleCount    = 359
	MaxAngleDistance = 5000
)

// Sizes lists the conventional texture sizes offered by the command line
// tool. Generate accepts any positive size.
var Sizes = []int{32, 64, 128, 256, 512, 1024, 2048, 4096}

// ErrInvalidConfig is returned when a Config value is out of range.
var ErrInvalidConfig = errors.New("measure: invalid config")

// Shape is the outline of the texture.
type Shape uint8

const (
	// Square fills the whole texture.
	Square Shape = iota

	// Circle fills the inscribed circle and leaves the corners transparent.
	Circle
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseShape parses "square" or "circle", ignoring case.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return Square, nil
	case "circle":
		return Circle, nil
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s)
}

// Config describes one measurement texture.
type Config struct {
	Shape Shape
	Size  int

	Fill       pixmap.Color
	Border     pixmap.Color
	BorderSize int

	// Grid draws a line every GridX pixels horizontally and every GridY
	// pixels vertically.
	Grid      bool
	GridX     int
	GridY     int
	GridColor pixmap.Color

	// AngleCount rays of AngleDistance pixels are drawn from AngleOrigin,
	// starting at StartAngle degrees and AngleStep degrees apart. Angles
	// grow clockwise because y points down.
	AngleCount    int
	StartAngle    float64
	AngleStep     float64
	AngleOrigin   image.Point
	AngleDistance int
	AngleColor    pixmap.Color

	// AngleText labels each ray at AngleTextDistance pixels from the
	// origin with its angle plus AngleTextOffset.
	AngleText         bool
	AngleSymbol       bool
	AngleTextOffset   int
	AngleTextDistance int
	AngleTextColor    pixmap.Color

	// Dimensions prints "WxH" in the top-left corner inside the border.
	Dimensions      bool
	DimensionOffset image.Point
	DimensionColor  pixmap.Color

	// Arrows draws the +X and +Y axes as two lines of a quarter of the
	// size. A non-zero ArrowOffset places their origin explicitly.
	Arrows      bool
	ArrowOffset image.Point
	ArrowColor  pixmap.Color

	// TextColor is used for the centered label.
	TextColor pixmap.Color
}

// DefaultConfig returns a 512 pixel red square with a white one pixel
// border.
func DefaultConfig() Config {
	return Config{
		Shape:             Square,
		Size:              512,
		Fill:              pixmap.Red,
		Border:            pixmap.White,
		BorderSize:        1,
		GridX:             32,
		GridY:             32,
		GridColor:         pixmap.White,
		AngleStep:         15,
		AngleDistance:     MaxAngleDistance,
		AngleColor:        pixmap.White,
		AngleTextDistance: 64,
		AngleTextColor:    pixmap.White,
		DimensionColor:    pixmap.White,
		ArrowColor:        pixmap.White,
		TextColor:         pixmap.White,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Shape != Square && c.Shape != Circle:
		return fmt.Errorf("%w: shape %d", ErrInvalidConfig, c.Shape)
	case c.Size < 1:
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	case c.BorderSize < 0 || c.BorderSize > MaxBorderSize:
		return fmt.Errorf("%w: border size %d not in [0, %d]", ErrInvalidConfig, c.BorderSize, MaxBorderSize)
	case c.Grid && (c.GridX < 1 || c.GridY < 1):
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.GridX, c.GridY)
	case c.AngleCount < 0 || c.AngleCount > MaxAngleCount:
		return fmt.Errorf("%w: angle count %d not in [0, %d]", ErrInvalidConfig, c.AngleCount, MaxAngleCount)
	case c.AngleCount > 0 && (c.AngleStep < 1 || c.AngleStep > 359):
		return fmt.Errorf("%w: angle step %v not in [1, 359]", ErrInvalidConfig, c.AngleStep)
	case c.StartAngle < -359 || c.StartAngle > 359:
		return fmt.Errorf("%w: start angle %v not in [-359, 359]", ErrInvalidConfig, c.StartAngle)
	case c.AngleDistance < 0 || c.AngleDistance > MaxAngleDistance:
		return fmt.Errorf("%w: angle distance %d", ErrInvalidConfig, c.AngleDistance)
	case c.AngleTextDistance < 0 || c.AngleTextDistance > MaxAngleDistance:
		return fmt.Errorf("%w: angle text distance %d", ErrInvalidConfig, c.AngleTextDistance)
	}
	return nil
}

// Generate renders one texture with label centered on it. Literal "\n"
// sequences in label start a new line.
func Generate(label string, cfg Config) (*pixmap.Pixmap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := cfg.Size
	img := pixmap.MustNew(size, size)
	border := min(cfg.BorderSize, (size+1)/2)

	switch cfg.Shape {
	case Square:
		img.FillRectangle(0, 0, size, size, cfg.Fill)
		for i := 0; i < border; i++ {
			img.DrawRectangle(i, i, size-2*i, size-2*i, cfg.Border)
		}
	case Circle:
		img.FillEllipse(0, 0, size, size, cfg.Fill)
		for i := 0; i < border; i++ {
			img.DrawEllipse(i, i, size-2*i, size-2*i, cfg.Border)
		}
	}

	if cfg.Grid {
		for x := cfg.GridX; x < size; x += cfg.GridX {
			img.DrawLine(x, 0, x, size, cfg.GridColor)
		}
		for y := cfg.GridY; y < size; y += cfg.GridY {
			img.DrawLine(0, y, size, y, cfg.GridColor)
		}
	}

	drawAngles(img, cfg)

	if cfg.Dimensions {
		text := fmt.Sprintf("%dx%d", size, size)
		img.DrawString(text, border+4+cfg.DimensionOffset.X, border+4+cfg.DimensionOffset.Y, cfg.DimensionColor)
	}

	drawLabel(img, label, cfg.TextColor)

	if cfg.Arrows {
		o := cfg.ArrowOffset
		if o == (image.Point{}) {
			o = image.Pt(border+4, border+4+pixmap.TextHeight)
		}
		img.DrawLine(o.X, o.Y, o.X, o.Y+size/4, cfg.ArrowColor)
		img.DrawLine(o.X, o.Y, o.X+size/4, o.Y, cfg.ArrowColor)
	}

	return img, nil
}

func drawAngles(img *pixmap.Pixmap, cfg Config) {
	o := cfg.AngleOrigin
	angle := cfg.StartAngle
	for i := 0; i < cfg.AngleCount; i++ {
		rad := angle * math.Pi / 180
		dx, dy := math.Cos(rad), math.Sin(rad)

		end := image.Pt(
			o.X+int(dx*float64(cfg.AngleDistance)),
			o.Y+int(dy*float64(cfg.AngleDistance)),
		)
		img.DrawLine(o.X, o.Y, end.X, end.Y, cfg.AngleColor)

		if cfg.AngleText {
			text := strconv.FormatFloat(angle+float64(cfg.AngleTextOffset), 'f', -1, 64)
			if cfg.AngleSymbol {
				text += "°"
			}
			cx := float64(o.X) + dx*float64(cfg.AngleTextDistance)
			cy := float64(o.Y) + dy*float64(cfg.AngleTextDistance)
			img.DrawString(text,
				int(cx)-pixmap.MeasureString(text)/2,
				int(cy)-pixmap.TextHeight/2,
				cfg.AngleTextColor)
		}

		angle += cfg.AngleStep
	}
}

// drawLabel centers the lines of label on img.
func drawLabel(img *pixmap.Pixmap, label string, c pixmap.Color) {
	label = strings.ReplaceAll(label, `\n`, "\n")
	if strings.TrimSpace(label) == "" {
		return
	}
	lines := strings.Split(label, "\n")
	top := img.Height()/2 - len(lines)*pixmap.TextHeight/2
	for i, line := range lines {
		x := img.Width()/2 - pixmap.MeasureString(line)/2
		img.DrawString(line, x, top+i*pixmap.TextHeight, c)
	}
}

// Texture is a generated texture and the name it should be saved under.
type Texture struct {
	Name  string
	Image *pixmap.Pixmap
}

// FileName returns the PNG file name for the texture, "Empty.png" for an
// unnamed one.
func (t Texture) FileName() string {
	name := t.Name
	if name == "" {
		name = "Empty"
	}
	return name + ".png"
}

// GenerateAll renders one texture per non-empty line of labels. With no
// labels a single unlabelled texture is produced.
func GenerateAll(labels string, cfg Config) ([]Texture, error) {
	var lines []string
	for _, l := range strings.Split(labels, "\n") {
		if l = strings.TrimRight(l, "\r"); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	out := make([]Texture, 0, len(lines))
	for _, l := range lines {
		img, err := Generate(l, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, Texture{Name: strings.TrimSpace(l), Image: img})
	}
	return out, nil
}
