package tileset

import (
	"errors"

	"github.com/gogpu/tileset/pixmap"
)

// Errors returned by the detector and the atlas builder.
var (
	// ErrNilSource is returned by New when the source image is nil.
	ErrNilSource = errors.New("tileset: nil source image")

	// ErrKeyNotFound is returned when a tile id was never discovered.
	ErrKeyNotFound = errors.New("tileset: tile id not found")

	// ErrBusy is returned when the tile size is changed after the detector
	// has been started, or when results are requested while it is running.
	ErrBusy = errors.New("tileset: detector already started")

	// ErrInvalidBatchSize is returned for batch sizes less than one.
	ErrInvalidBatchSize = errors.New("tileset: invalid batch size")

	// ErrCancelled is returned by Wait when the run was cancelled.
	ErrCancelled = errors.New("tileset: detection cancelled")

	// ErrNoTiles is returned by BuildAtlas when nothing was discovered.
	ErrNoTiles = errors.New("tileset: no tiles discovered")
)

// ErrInvalidDimension is returned for tile sizes less than one. It is the
// same value as [pixmap.ErrInvalidDimension].
var ErrInvalidDimension = pixmap.ErrInvalidDimension
