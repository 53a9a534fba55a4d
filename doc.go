// Package tileset finds the distinct tiles of a tile-based image.
//
// # Overview
//
// Sprite sheets and tile maps are usually assembled from a small set of
// fixed-size tiles repeated many times. A [Detector] cuts a source image into
// a grid of such tiles, hashes the raw RGBA bytes of each one and groups tile
// origins by hash. The distinct tiles can then be extracted individually
// with [Detector.TileImage] or laid out as a compact tileset with
// [BuildAtlas].
//
// # Quick Start
//
//	src, err := pixmap.Load("level1.png")
//	if err != nil {
//	    return err
//	}
//	d, err := tileset.New(src, tileset.WithTileSize(16, 16))
//	if err != nil {
//	    return err
//	}
//	d.Run(ctx)
//	if err := d.Wait(ctx); err != nil {
//	    return err
//	}
//	atlas, err := tileset.BuildAtlas(ctx, d, tileset.AtlasOptions{Spacing: 1})
//	if err != nil {
//	    return err
//	}
//	atlas.Image.SavePNG("tiles.png")
//
// # Background processing
//
// Run returns immediately; the scan happens on its own goroutine in batches
// of [Detector.BatchSize] tiles. Between batches the detector publishes a
// [Progress] snapshot, available from [Detector.Progress] and on the
// [Detector.Updates] channel, and checks for cancellation. Cancelling keeps
// every tile found so far.
//
// # Scan order
//
// Tiles are visited row by row from the top-left corner. Only full tiles
// are scanned: when the image size is not a multiple of the tile size the
// remaining pixels at the right and bottom edges are ignored.
//
// # Architecture
//
// The module is organized into:
//   - tileset: Detector, atlas builder, logging
//   - pixmap: RGBA raster, compositing, drawing primitives, image IO
//   - measure: measurement texture generator
//   - internal: blockhash (tile hash), cache (tile images), parallel (workers)
//   - cmd/tileset: command line tool
package tileset

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
