package tileset

import "log/slog"

// Defaults used by New.
const (
	DefaultTileSize  = 16
	DefaultBatchSize = 10
	DefaultCacheSize = 64
)

// Option configures a Detector during creation.
//
// Example:
//
//	d, err := tileset.New(src,
//	    tileset.WithTileSize(8, 8),
//	    tileset.WithBatchSize(64),
//	)
type Option func(*options)

// options holds optional configuration for Detector creation.
type options struct {
	tileWidth  int
	tileHeight int
	batchSize  int
	cacheSize  int
	logger     *slog.Logger
}

// defaultOptions returns the default detector options.
func defaultOptions() options {
	return options{
		tileWidth:  DefaultTileSize,
		tileHeight: DefaultTileSize,
		batchSize:  DefaultBatchSize,
		cacheSize:  DefaultCacheSize,
	}
}

// WithTileSize sets the tile grid cell size in pixels.
func WithTileSize(width, height int) Option {
	return func(o *options) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithBatchSize sets how many tiles are hashed between cancellation checks
// and progress updates.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithCacheSize bounds the number of tile images kept by TileImage.
// Zero keeps every extracted tile.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger sets the logger for one detector, overriding the package
// logger configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
