package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/tileset"
	"github.com/gogpu/tileset/pixmap"
)

type detectOptions struct {
	tileWidth  int
	tileHeight int
	batch      int
	columns    int
	spacing    int
	background colorValue
	out        string
	tilesDir   string
	raw        string
	preview    bool
	jobs       int
}

func newDetectCmd() *cobra.Command {
	o := detectOptions{background: colorValue(pixmap.Transparent)}

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Find the distinct tiles of an image and build a tileset",
		Long: `Detect cuts the image into a grid of tiles, groups identical tiles and
writes one copy of each distinct tile to an atlas image.

Supported inputs are PNG, JPEG, GIF, BMP, TIFF and WebP. Pixels to the
right of or below the last full tile are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.Context(), newStatus(cmd.ErrOrStderr()), args[0], o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.tileWidth, "tile-width", tileset.DefaultTileSize, "tile width in pixels")
	f.IntVar(&o.tileHeight, "tile-height", tileset.DefaultTileSize, "tile height in pixels")
	f.IntVar(&o.batch, "batch", tileset.DefaultBatchSize, "tiles hashed between progress updates")
	f.IntVar(&o.columns, "columns", 0, "atlas columns (0 = square)")
	f.IntVar(&o.spacing, "spacing", 0, "pixels between atlas tiles")
	f.Var(&o.background, "background", "atlas background color (#rrggbbaa)")
	f.StringVarP(&o.out, "out", "o", "", "write the atlas as PNG to this file")
	f.StringVar(&o.tilesDir, "tiles-dir", "", "write every distinct tile as PNG into this directory")
	f.StringVar(&o.raw, "raw", "", "write the atlas as raw RGBA bytes to this file")
	f.BoolVar(&o.preview, "preview", false, "show the atlas in a sixel capable terminal")
	f.IntVarP(&o.jobs, "jobs", "j", 8, "parallel tile writers for --tiles-dir")
	return cmd
}

func runDetect(ctx context.Context, st *status, path string, o detectOptions) error {
	src, err := pixmap.Load(path)
	if err != nil {
		return err
	}

	d, err := tileset.New(src,
		tileset.WithTileSize(o.tileWidth, o.tileHeight),
		tileset.WithBatchSize(o.batch),
		tileset.WithLogger(tileset.Logger().With("image", filepath.Base(path))),
	)
	if err != nil {
		return err
	}

	d.Run(ctx)
	for p := range d.Updates() {
		st.Progress(p)
	}
	st.EndProgress()

	// The run context is already done on interrupt; Wait only needs the
	// final state.
	switch err := d.Wait(context.Background()); {
	case errors.Is(err, tileset.ErrCancelled):
		st.Warn("detection cancelled after %d of %d tiles, keeping partial results",
			d.ProcessedTiles(), d.TotalTiles())
	case err != nil:
		return err
	}

	s := summarize(d)
	st.Info("%d tiles, %d distinct, %d repeated", s.total, s.unique, s.repeated)
	if s.unique == 0 {
		return nil
	}
	st.Info("most common tile %08x appears %d times", s.topID, s.topCount)

	// Export work below is not cancellable by the interrupt that may have
	// stopped the scan.
	ctx = context.WithoutCancel(ctx)

	atlas, err := tileset.BuildAtlas(ctx, d, tileset.AtlasOptions{
		Columns:    o.columns,
		Spacing:    o.spacing,
		Background: pixmap.Color(o.background),
	})
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := atlas.Image.SavePNG(o.out); err != nil {
			return err
		}
		st.Info("atlas %dx%d written to %s", atlas.Image.Width(), atlas.Image.Height(), o.out)
	}
	if o.raw != "" {
		if err := writeRaw(o.raw, atlas.Image); err != nil {
			return err
		}
		st.Info("raw atlas written to %s", o.raw)
	}
	if o.tilesDir != "" {
		n, err := writeTiles(ctx, d, o.tilesDir, o.jobs)
		if err != nil {
			return err
		}
		st.Info("%d tiles written to %s", n, o.tilesDir)
	}
	if o.preview {
		return preview(os.Stdout, atlas.Image)
	}
	return nil
}

// summary describes the duplicate structure of a finished run.
type summary struct {
	total    int
	unique   int
	repeated int // distinct tiles that occur more than once
	topID    uint32
	topCount int
}

func summarize(d *tileset.Detector) summary {
	ids := d.TileIDs()
	counts := lo.Map(ids, func(id uint32, _ int) int {
		points, _ := d.TilePoints(id)
		return len(points)
	})

	s := summary{
		total:  d.ProcessedTiles(),
		unique: len(ids),
		repeated: lo.CountBy(counts, func(n int) bool {
			return n > 1
		}),
	}
	if len(ids) > 0 {
		// MaxBy keeps the first maximum, so ties go to the earliest tile.
		top := lo.MaxBy(lo.Range(len(ids)), func(a, b int) bool {
			return counts[a] > counts[b]
		})
		s.topID, s.topCount = ids[top], counts[top]
	}
	return s
}

// writeTiles saves every distinct tile as <id>.png in dir using up to jobs
// concurrent writers. It returns the number of files written.
func writeTiles(ctx context.Context, d *tileset.Detector, dir string, jobs int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create tiles dir: %w", err)
	}

	ids := d.TileIDs()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := d.TileImage(id)
			if err != nil {
				return err
			}
			return img.SavePNG(filepath.Join(dir, tileFileName(id)))
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func tileFileName(id uint32) string {
	return fmt.Sprintf("%08x.png", id)
}

func writeRaw(path string, img *pixmap.Pixmap) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return img.WriteRaw(f)
}
