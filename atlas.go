package tileset

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/tileset/internal/parallel"
	"github.com/gogpu/tileset/pixmap"
)

// AtlasOptions controls the layout of BuildAtlas.
type AtlasOptions struct {
	// Columns is the number of tiles per row. Zero picks the smallest
	// square grid that fits every tile.
	Columns int

	// Spacing is the gap in pixels between neighbouring tiles.
	Spacing int

	// Background fills the atlas before tiles are drawn.
	Background pixmap.Color

	// Workers is the number of goroutines extracting tiles. Zero uses
	// GOMAXPROCS.
	Workers int
}

// Atlas is a single image holding one copy of every distinct tile.
type Atlas struct {
	Image *pixmap.Pixmap

	// IDs lists the tile ids in layout order, which is discovery order.
	IDs []uint32

	// Cells holds the rectangle of IDs[i] within Image.
	Cells []image.Rectangle
}

// Cell returns the rectangle of the tile with the given id.
func (a *Atlas) Cell(id uint32) (image.Rectangle, bool) {
	for i, v := range a.IDs {
		if v == id {
			return a.Cells[i], true
		}
	}
	return image.Rectangle{}, false
}

// BuildAtlas lays the distinct tiles found by d out on a grid, row by row in
// discovery order. It can be called on a cancelled detector to lay out the
// partial result.
//
// Returns ErrBusy while d is still running, ErrNoTiles when nothing was
// found, and ErrInvalidDimension for negative Columns or Spacing.
func BuildAtlas(ctx context.Context, d *Detector, opts AtlasOptions) (*Atlas, error) {
	if d.IsRunning() {
		return nil, fmt.Errorf("%w: atlas requested during scan", ErrBusy)
	}
	if opts.Columns < 0 || opts.Spacing < 0 {
		return nil, fmt.Errorf("tileset: atlas columns %d spacing %d: %w", opts.Columns, opts.Spacing, ErrInvalidDimension)
	}

	ids := d.TileIDs()
	if len(ids) == 0 {
		return nil, ErrNoTiles
	}

	cols := opts.Columns
	if cols == 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(ids)))))
	}
	cols = min(cols, len(ids))
	rows := (len(ids) + cols - 1) / cols

	tw, th := d.TileWidth(), d.TileHeight()
	img, err := pixmap.New(
		cols*tw+(cols-1)*opts.Spacing,
		rows*th+(rows-1)*opts.Spacing,
	)
	if err != nil {
		return nil, fmt.Errorf("tileset: atlas: %w", err)
	}
	img.Clear(opts.Background)

	atlas := &Atlas{
		Image: img,
		IDs:   ids,
		Cells: make([]image.Rectangle, len(ids)),
	}

	pool := parallel.NewWorkerPool(opts.Workers)
	defer pool.Close()

	// Cells never overlap, so tasks write disjoint pixels.
	tasks := make([]parallel.Task, len(ids))
	for i, id := range ids {
		x := (i % cols) * (tw + opts.Spacing)
		y := (i / cols) * (th + opts.Spacing)
		atlas.Cells[i] = image.Rect(x, y, x+tw, y+th)

		tasks[i] = func(context.Context) error {
			tile, err := d.TileImage(id)
			if err != nil {
				return err
			}
			img.DrawAt(tile, x, y)
			return nil
		}
	}
	if err := pool.ExecuteAll(ctx, tasks); err != nil {
		return nil, fmt.Errorf("tileset: atlas: %w", err)
	}

	d.log.Debug("tileset: atlas built",
		"tiles", len(ids),
		"columns", cols,
		"size", fmt.Sprintf("%dx%d", img.Width(), img.Height()),
	)
	return atlas, nil
}
