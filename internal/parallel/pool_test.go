package parallel

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		workers int
		want    int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		pool := NewWorkerPool(tt.workers)
		if pool.Workers() != tt.want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", tt.workers, pool.Workers(), tt.want)
		}
		if !pool.IsRunning() {
			t.Error("pool should be running after creation")
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			counter.Add(1)
			return nil
		}
	}

	if err := pool.ExecuteAll(context.Background(), tasks); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}

	// The pool is reusable.
	if err := pool.ExecuteAll(context.Background(), tasks); err != nil {
		t.Fatalf("second ExecuteAll: %v", err)
	}
	if counter.Load() != 200 {
		t.Errorf("counter = %d, want 200", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	if err := pool.ExecuteAll(context.Background(), nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v", err)
	}
}

func TestWorkerPool_FirstErrorWins(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	boom := errors.New("boom")
	var after atomic.Int64
	tasks := []Task{
		func(context.Context) error { return boom },
	}
	for range 20 {
		tasks = append(tasks, func(context.Context) error {
			after.Add(1)
			return nil
		})
	}

	err := pool.ExecuteAll(context.Background(), tasks)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	// A single worker runs in order, so nothing after the failure runs.
	if after.Load() != 0 {
		t.Errorf("%d tasks ran after the failure", after.Load())
	}
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	err := pool.ExecuteAll(context.Background(), []Task{
		func(context.Context) error { panic("kaboom") },
	})
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("err = %v, want panic message", err)
	}
	if !pool.IsRunning() {
		t.Error("pool stopped after a panicking task")
	}
}

func TestWorkerPool_ContextCancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	tasks := make([]Task, 50)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			ran.Add(1)
			return nil
		}
	}
	if err := pool.ExecuteAll(ctx, tasks); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d tasks ran with a cancelled context", ran.Load())
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("pool running after Close")
	}
	err := pool.ExecuteAll(context.Background(), []Task{func(context.Context) error { return nil }})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("ExecuteAll after Close = %v, want ErrClosed", err)
	}
}

func TestWorkerPool_CloseWaitsForWork(t *testing.T) {
	pool := NewWorkerPool(2)

	var finished atomic.Bool
	started := make(chan struct{})
	go func() {
		_ = pool.ExecuteAll(context.Background(), []Task{func(context.Context) error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
			return nil
		}})
	}()
	<-started
	pool.Close()

	if !finished.Load() {
		t.Error("Close returned before running work finished")
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	tasks := make([]Task, 64)
	for i := range tasks {
		tasks[i] = func(context.Context) error { return nil }
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.ExecuteAll(ctx, tasks)
	}
}
