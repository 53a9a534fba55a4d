package pixmap

import "sync"

// Pool is a thread-safe pool for reusing Pixmap instances.
//
// Pool groups pixmaps by their dimensions so that identically sized scratch
// buffers can be reused. Draw uses a package-level pool for its temporary
// source extraction, which matters when the same tile size is drawn
// thousands of times during tileset work.
//
// Thread safety: all methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Pixmap
	maxSize int // max pixmaps per bucket
}

type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool that retains at most maxPerBucket pixmaps of each
// size. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Pixmap),
		maxSize: maxPerBucket,
	}
}

// Get returns a transparent pixmap of the given size, reusing a pooled one
// when available. It panics if width or height is less than one.
func (p *Pool) Get(width, height int) *Pixmap {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		pm := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return pm
	}
	p.mu.Unlock()

	return MustNew(width, height)
}

// Put clears pm and returns it to the pool. A nil pm or a full bucket
// discards the pixmap.
func (p *Pool) Put(pm *Pixmap) {
	if pm == nil {
		return
	}
	pm.Clear(Transparent)

	key := poolKey{width: pm.width, height: pm.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, pm)
}

// Len returns the number of pooled pixmaps across all sizes.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
