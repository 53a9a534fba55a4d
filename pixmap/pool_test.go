package pixmap

import (
	"sync"
	"testing"
)

func TestPool_ReuseClears(t *testing.T) {
	pool := NewPool(2)
	a := pool.Get(4, 4)
	a.Clear(Red)
	pool.Put(a)

	b := pool.Get(4, 4)
	if b != a {
		t.Error("pool did not reuse buffer")
	}
	if !b.Equal(MustNew(4, 4)) {
		t.Error("reused buffer not cleared")
	}
}

func TestPool_BucketsBySize(t *testing.T) {
	pool := NewPool(0)
	pool.Put(MustNew(2, 2))
	if got := pool.Get(3, 3); got.Width() != 3 || got.Height() != 3 {
		t.Errorf("Get(3, 3) size = %dx%d", got.Width(), got.Height())
	}
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}
}

func TestPool_MaxPerBucket(t *testing.T) {
	pool := NewPool(1)
	pool.Put(MustNew(2, 2))
	pool.Put(MustNew(2, 2))
	pool.Put(nil)
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(4)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p := pool.Get(8, 8)
				p.SetPixel(1, 1, Red)
				pool.Put(p)
			}
		}()
	}
	wg.Wait()
	if pool.Len() > 4 {
		t.Errorf("Len() = %d, exceeds bucket limit", pool.Len())
	}
}
