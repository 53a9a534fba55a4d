// Package parallel provides the worker pool that fans tile work out across
// goroutines.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// Task is a unit of work. A task should return promptly once ctx is done.
type Task func(ctx context.Context) error

// WorkerPool is a fixed set of goroutines draining a shared queue.
//
// Workers outlive individual ExecuteAll calls until Close. BuildAtlas
// creates one pool per call and closes it when the atlas is done.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	mu      sync.RWMutex // guards sends against Close
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case fn := <-p.queue:
			fn()
		case <-p.done:
			// Finish anything already accepted.
			for {
				select {
				case fn := <-p.queue:
					fn()
				default:
					return
				}
			}
		}
	}
}

// ExecuteAll runs every task and waits for them to finish.
//
// The first task error cancels the context handed to the remaining tasks;
// tasks not yet started are skipped. A panicking task is reported as an
// error instead of crashing the process. The returned error is the first
// failure, or ctx.Err() if the caller's context ended first.
func (p *WorkerPool) ExecuteAll(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return ErrClosed
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		run := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := safeCall(ctx, task); err != nil {
				cancel(fmt.Errorf("parallel: task %d: %w", i, err))
			}
		}

		select {
		case p.queue <- run:
		case <-ctx.Done():
			// Nothing else will be scheduled; account for the rest.
			wg.Add(-(len(tasks) - i))
			wg.Wait()
			return context.Cause(ctx)
		}
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return err
	}
	return nil
}

func safeCall(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}

// Close stops accepting work, waits for queued work to complete and stops
// the workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
