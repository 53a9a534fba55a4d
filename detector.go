package tileset

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gogpu/tileset/internal/blockhash"
	"github.com/gogpu/tileset/internal/cache"
	"github.com/gogpu/tileset/pixmap"
)

// Detector partitions a source image into a grid of equally sized tiles and
// groups identical tiles by their block hash.
//
// A Detector is bound to one source image and runs at most once:
//
//	d, err := tileset.New(src, tileset.WithTileSize(16, 16))
//	if err != nil {
//	    return err
//	}
//	d.Run(ctx)
//	for p := range d.Updates() {
//	    fmt.Println(p)
//	}
//	if err := d.Wait(ctx); err != nil {
//	    return err
//	}
//	for _, id := range d.TileIDs() {
//	    img, _ := d.TileImage(id)
//	    ...
//	}
//
// The source is borrowed, not copied, and must not be mutated while the
// detector is scanning. All methods are safe for concurrent use; results
// may be read while a scan is still in progress.
type Detector struct {
	src *pixmap.Pixmap
	log *slog.Logger

	// mu guards the fields below it and every transition out of Idle.
	mu         sync.Mutex
	tileWidth  int
	tileHeight int
	runID      string
	err        error

	state     atomic.Uint32
	batchSize atomic.Int64
	cancelled atomic.Bool
	processed atomic.Int64
	total     atomic.Int64
	progress  atomic.Pointer[Progress]

	locMu     sync.RWMutex
	locations map[uint32][]image.Point
	order     []uint32

	tiles   *cache.Cache[uint32, *pixmap.Pixmap]
	updates chan Progress
	done    chan struct{}

	// Test hooks.
	hash       func([]byte) uint32
	afterBatch func()
}

// New creates a detector over src.
//
// Returns ErrNilSource if src is nil, ErrInvalidDimension if the tile size
// is less than one and ErrInvalidBatchSize if the batch size is.
func New(src *pixmap.Pixmap, opts ...Option) (*Detector, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tileWidth < 1 || o.tileHeight < 1 {
		return nil, fmt.Errorf("tileset: tile size %dx%d: %w", o.tileWidth, o.tileHeight, ErrInvalidDimension)
	}
	if o.batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, o.batchSize)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	d := &Detector{
		src:        src,
		log:        o.logger,
		tileWidth:  o.tileWidth,
		tileHeight: o.tileHeight,
		locations:  make(map[uint32][]image.Point),
		tiles:      cache.New[uint32, *pixmap.Pixmap](o.cacheSize),
		updates:    make(chan Progress, 1),
		done:       make(chan struct{}),
		hash:       blockhash.Sum32,
	}
	d.batchSize.Store(int64(o.batchSize))
	d.progress.Store(&Progress{State: StateIdle})
	return d, nil
}

// Run starts the scan in a background goroutine and returns immediately.
//
// Run moves the detector from Idle to Initializing, computes the tile grid,
// and hands off to the scanning goroutine. Calling Run in any other state is
// a no-op. Cancelling ctx has the same effect as Cancel.
func (d *Detector) Run(ctx context.Context) {
	d.mu.Lock()
	if d.State() != StateIdle {
		d.mu.Unlock()
		return
	}
	d.state.Store(uint32(StateInitializing))
	d.cancelled.Store(false)
	d.runID = uuid.NewString()
	tw, th := d.tileWidth, d.tileHeight
	log := d.log.With("run_id", d.runID)
	d.mu.Unlock()

	g := grid{
		width:      d.src.Width(),
		height:     d.src.Height(),
		tileWidth:  tw,
		tileHeight: th,
	}
	d.total.Store(int64(g.tiles()))
	d.publish()

	log.Info("tileset: detection started",
		"image", fmt.Sprintf("%dx%d", g.width, g.height),
		"tile", fmt.Sprintf("%dx%d", tw, th),
		"total", g.tiles(),
	)

	go d.scan(ctx, g, log)
}

// grid is the tile layout of one run.
type grid struct {
	width, height         int
	tileWidth, tileHeight int
}

// tiles returns the number of full tiles. Partial tiles at the right and
// bottom edges are not scanned.
func (g grid) tiles() int {
	return (g.width / g.tileWidth) * (g.height / g.tileHeight)
}

func (d *Detector) scan(ctx context.Context, g grid, log *slog.Logger) {
	defer close(d.done)
	defer close(d.updates)
	defer func() {
		if r := recover(); r != nil {
			d.finish(log, StateFailed, fmt.Errorf("tileset: scan panicked: %v", r))
		}
	}()

	d.state.Store(uint32(StateScanning))
	d.publish()

	if g.tiles() == 0 {
		d.finish(log, StateComplete, nil)
		return
	}

	x, y := 0, 0
	for {
		if y+g.tileHeight > g.height {
			d.finish(log, StateComplete, nil)
			return
		}
		if d.cancelled.Load() || ctx.Err() != nil {
			d.finish(log, StateCancelled, nil)
			return
		}

		n := d.BatchSize()
		for i := 0; i < n && y+g.tileHeight <= g.height; i++ {
			if err := d.processTile(x, y, g); err != nil {
				d.finish(log, StateFailed, err)
				return
			}
			x += g.tileWidth
			if x+g.tileWidth > g.width {
				x = 0
				y += g.tileHeight
			}
		}

		p := d.publish()
		log.Debug("tileset: batch done", "processed", p.Processed, "unique", p.Unique)
		if d.afterBatch != nil {
			d.afterBatch()
		}
	}
}

// processTile hashes the tile at (x, y) and records its origin.
func (d *Detector) processTile(x, y int, g grid) error {
	data, err := d.src.ToByteArray(x, y, g.tileWidth, g.tileHeight)
	if err != nil {
		return fmt.Errorf("tileset: tile at (%d,%d): %w", x, y, err)
	}
	id := d.hash(data)

	d.locMu.Lock()
	points, seen := d.locations[id]
	if !seen {
		d.order = append(d.order, id)
	}
	d.locations[id] = append(points, image.Pt(x, y))
	d.locMu.Unlock()

	d.processed.Add(1)
	return nil
}

// finish records the terminal state and publishes the final snapshot.
func (d *Detector) finish(log *slog.Logger, s State, err error) {
	d.mu.Lock()
	d.err = err
	d.state.Store(uint32(s))
	d.mu.Unlock()
	p := d.publish()

	switch s {
	case StateComplete:
		log.Info("tileset: detection complete", "total", p.Total, "unique", p.Unique)
	case StateCancelled:
		log.Warn("tileset: detection cancelled", "processed", p.Processed, "total", p.Total)
	case StateFailed:
		log.Error("tileset: detection failed", "processed", p.Processed, "err", err)
	}
}

// publish stores a new progress snapshot and offers it on the updates
// channel, replacing any snapshot the consumer has not read yet.
func (d *Detector) publish() Progress {
	s := d.State()
	p := Progress{
		State:     s,
		Processed: int(d.processed.Load()),
		Total:     int(d.total.Load()),
		Unique:    d.UniqueTiles(),
	}
	switch {
	case p.Total > 0:
		p.Percentage = float64(p.Processed) / float64(p.Total)
	case s == StateComplete:
		p.Percentage = 1
	}
	d.progress.Store(&p)

	if s == StateIdle {
		return p
	}
	select {
	case <-d.updates:
	default:
	}
	select {
	case d.updates <- p:
	default:
	}
	return p
}

// Cancel asks a running scan to stop. The request is observed before the
// next batch, so up to BatchSize tiles may still be processed. Tiles found
// so far stay available. Cancel has no effect unless the detector is
// running.
func (d *Detector) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.State().Running() {
		d.cancelled.Store(true)
	}
}

// Done returns a channel closed when the run ends in any terminal state.
func (d *Detector) Done() <-chan struct{} {
	return d.done
}

// Updates returns a channel of progress snapshots. Only the latest snapshot
// is buffered; slow readers skip intermediate ones. The channel is closed
// when the run ends, after the final snapshot has been offered.
func (d *Detector) Updates() <-chan Progress {
	return d.updates
}

// Wait blocks until the run ends or ctx is done. It returns nil after a
// complete scan, ErrCancelled after a cancelled one and the scan error
// after a failure.
func (d *Detector) Wait(ctx context.Context) error {
	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	switch d.State() {
	case StateCancelled:
		return ErrCancelled
	case StateFailed:
		return d.Err()
	default:
		return nil
	}
}

// Progress returns the snapshot published after the latest batch.
func (d *Detector) Progress() Progress {
	return *d.progress.Load()
}

// State returns the current lifecycle state.
func (d *Detector) State() State {
	return State(d.state.Load())
}

// IsRunning reports whether the detector is initializing or scanning.
func (d *Detector) IsRunning() bool {
	return d.State().Running()
}

// Complete reports whether every tile has been processed.
func (d *Detector) Complete() bool {
	return d.State() == StateComplete
}

// Err returns the error that failed the run, or nil.
func (d *Detector) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// RunID returns the identifier attached to this run's log records, or an
// empty string before Run.
func (d *Detector) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// PercentageCompleted returns the fraction of tiles processed, in [0, 1],
// as of the latest batch.
func (d *Detector) PercentageCompleted() float64 {
	return d.Progress().Percentage
}

// ProcessedTiles returns the number of tiles hashed so far.
func (d *Detector) ProcessedTiles() int {
	return int(d.processed.Load())
}

// TotalTiles returns the number of full tiles in the source. It is zero
// until Run is called.
func (d *Detector) TotalTiles() int {
	return int(d.total.Load())
}

// UniqueTiles returns the number of distinct tiles found so far.
func (d *Detector) UniqueTiles() int {
	d.locMu.RLock()
	defer d.locMu.RUnlock()
	return len(d.locations)
}

// TileIDs returns the ids of the distinct tiles in discovery order.
func (d *Detector) TileIDs() []uint32 {
	d.locMu.RLock()
	defer d.locMu.RUnlock()
	ids := make([]uint32, len(d.order))
	copy(ids, d.order)
	return ids
}

// TilePoints returns the origins of every tile with the given id, in scan
// order. The first point is where the tile was first discovered.
func (d *Detector) TilePoints(id uint32) ([]image.Point, error) {
	d.locMu.RLock()
	defer d.locMu.RUnlock()
	points, ok := d.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %#08x", ErrKeyNotFound, id)
	}
	out := make([]image.Point, len(points))
	copy(out, points)
	return out, nil
}

// TileImage returns a copy of the tile with the given id, cut from the
// source at its first location.
func (d *Detector) TileImage(id uint32) (*pixmap.Pixmap, error) {
	d.locMu.RLock()
	points, ok := d.locations[id]
	var origin image.Point
	if ok {
		origin = points[0]
	}
	d.locMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %#08x", ErrKeyNotFound, id)
	}

	tw, th := d.TileWidth(), d.TileHeight()
	img, err := d.tiles.GetOrCreate(id, func() (*pixmap.Pixmap, error) {
		data, err := d.src.ToByteArray(origin.X, origin.Y, tw, th)
		if err != nil {
			return nil, fmt.Errorf("tileset: extract tile %#08x: %w", id, err)
		}
		return pixmap.FromBytes(tw, th, data)
	})
	if err != nil {
		return nil, err
	}
	return img.Clone(), nil
}

// CacheStats reports hit and miss counts of the TileImage cache.
func (d *Detector) CacheStats() cache.Stats {
	return d.tiles.Stats()
}

// TileWidth returns the tile width in pixels.
func (d *Detector) TileWidth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tileWidth
}

// TileHeight returns the tile height in pixels.
func (d *Detector) TileHeight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tileHeight
}

// SetTileWidth changes the tile width. It returns ErrBusy once the detector
// has left Idle.
func (d *Detector) SetTileWidth(width int) error {
	return d.SetTileSize(width, d.TileHeight())
}

// SetTileHeight changes the tile height. It returns ErrBusy once the
// detector has left Idle.
func (d *Detector) SetTileHeight(height int) error {
	return d.SetTileSize(d.TileWidth(), height)
}

// SetTileSize changes both tile dimensions. It returns ErrInvalidDimension
// for sizes less than one and ErrBusy once the detector has left Idle; in
// both cases nothing changes.
func (d *Detector) SetTileSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("tileset: tile size %dx%d: %w", width, height, ErrInvalidDimension)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s := d.State(); s != StateIdle {
		return fmt.Errorf("%w: state %s", ErrBusy, s)
	}
	d.tileWidth, d.tileHeight = width, height
	return nil
}

// BatchSize returns the number of tiles hashed per batch.
func (d *Detector) BatchSize() int {
	return int(d.batchSize.Load())
}

// SetBatchSize changes the batch size. It may be called at any time and
// takes effect from the next batch.
func (d *Detector) SetBatchSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, n)
	}
	d.batchSize.Store(int64(n))
	return nil
}
