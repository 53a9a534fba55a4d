package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/tileset/measure"
	"github.com/gogpu/tileset/pixmap"
)

type measureOptions struct {
	cfg     measure.Config
	shape   string
	labels  []string
	outDir  string
	preview bool

	fill, border, grid, angle, angleText, dims, arrow, text colorValue
}

func newMeasureCmd() *cobra.Command {
	o := measureOptions{cfg: measure.DefaultConfig()}
	c := &o.cfg
	o.fill = colorValue(c.Fill)
	o.border = colorValue(c.Border)
	o.grid = colorValue(c.GridColor)
	o.angle = colorValue(c.AngleColor)
	o.angleText = colorValue(c.AngleTextColor)
	o.dims = colorValue(c.DimensionColor)
	o.arrow = colorValue(c.ArrowColor)
	o.text = colorValue(c.TextColor)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Generate measurement textures",
		Long: `Measure renders square or round placeholder textures with a border, an
optional grid, angle rays, orientation arrows and a centered label. One
PNG is written per label; a label may contain a literal \n for a line
break.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.resolve(); err != nil {
				return err
			}
			return runMeasure(cmd.Context(), newStatus(cmd.ErrOrStderr()), o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.shape, "shape", "square", "texture shape: square or circle")
	f.IntVar(&c.Size, "size", c.Size, fmt.Sprintf("texture size in pixels, usually one of %v", measure.Sizes))
	f.IntVar(&c.BorderSize, "border", c.BorderSize, "border width in pixels")
	f.BoolVar(&c.Grid, "grid", false, "draw a grid")
	f.IntVar(&c.GridX, "grid-x", c.GridX, "horizontal grid spacing")
	f.IntVar(&c.GridY, "grid-y", c.GridY, "vertical grid spacing")
	f.IntVar(&c.AngleCount, "angles", 0, "number of angle rays")
	f.Float64Var(&c.StartAngle, "angle-start", 0, "first ray angle in degrees")
	f.Float64Var(&c.AngleStep, "angle-step", c.AngleStep, "degrees between rays")
	f.IntVar(&c.AngleOrigin.X, "angle-origin-x", 0, "ray origin x")
	f.IntVar(&c.AngleOrigin.Y, "angle-origin-y", 0, "ray origin y")
	f.IntVar(&c.AngleDistance, "angle-distance", c.AngleDistance, "ray length in pixels")
	f.BoolVar(&c.AngleText, "angle-text", false, "label rays with their angle")
	f.BoolVar(&c.AngleSymbol, "angle-symbol", false, "append a degree sign to ray labels")
	f.IntVar(&c.AngleTextOffset, "angle-text-offset", 0, "value added to printed angles")
	f.IntVar(&c.AngleTextDistance, "angle-text-distance", c.AngleTextDistance, "ray label distance from the origin")
	f.BoolVar(&c.Dimensions, "dimensions", false, "print the texture size")
	f.IntVar(&c.DimensionOffset.X, "dimensions-x", 0, "size label x offset")
	f.IntVar(&c.DimensionOffset.Y, "dimensions-y", 0, "size label y offset")
	f.BoolVar(&c.Arrows, "arrows", false, "draw orientation arrows")
	f.IntVar(&c.ArrowOffset.X, "arrows-x", 0, "arrow origin x (0,0 = top-left inside the border)")
	f.IntVar(&c.ArrowOffset.Y, "arrows-y", 0, "arrow origin y")
	f.Var(&o.fill, "fill-color", "fill color")
	f.Var(&o.border, "border-color", "border color")
	f.Var(&o.grid, "grid-color", "grid color")
	f.Var(&o.angle, "angle-color", "ray color")
	f.Var(&o.angleText, "angle-text-color", "ray label color")
	f.Var(&o.dims, "dimensions-color", "size label color")
	f.Var(&o.arrow, "arrow-color", "arrow color")
	f.Var(&o.text, "text-color", "label color")
	f.StringSliceVarP(&o.labels, "labels", "l", nil, "texture labels, one texture each")
	f.StringVar(&o.outDir, "out-dir", ".", "output directory")
	f.BoolVar(&o.preview, "preview", false, "show the textures in a sixel capable terminal")
	return cmd
}

// resolve copies the parsed flag values into cfg.
func (o *measureOptions) resolve() error {
	shape, err := measure.ParseShape(o.shape)
	if err != nil {
		return err
	}
	o.cfg.Shape = shape
	o.cfg.Fill = pixmap.Color(o.fill)
	o.cfg.Border = pixmap.Color(o.border)
	o.cfg.GridColor = pixmap.Color(o.grid)
	o.cfg.AngleColor = pixmap.Color(o.angle)
	o.cfg.AngleTextColor = pixmap.Color(o.angleText)
	o.cfg.DimensionColor = pixmap.Color(o.dims)
	o.cfg.ArrowColor = pixmap.Color(o.arrow)
	o.cfg.TextColor = pixmap.Color(o.text)
	return o.cfg.Validate()
}

func runMeasure(ctx context.Context, st *status, o measureOptions) error {
	textures, err := measure.GenerateAll(strings.Join(o.labels, "\n"), o.cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, tex := range textures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return tex.Image.SavePNG(filepath.Join(o.outDir, tex.FileName()))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	st.Info("%d textures of %dx%d written to %s", len(textures), o.cfg.Size, o.cfg.Size, o.outDir)

	if o.preview {
		for _, tex := range textures {
			if err := preview(os.Stdout, tex.Image); err != nil {
				return err
			}
		}
	}
	return nil
}
