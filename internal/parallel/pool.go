// Package parallel provides the bounded worker pool used by the render and
// resolve phases.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed-size pool of goroutines consuming one shared queue.
//
// Tasks handed to the pool are expected to be independent: each one owns its
// inputs and outputs, so the pool does no locking on their behalf.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue is shared by all workers. It is unbuffered beyond one slot per
	// worker so that cancellation stops dispatch quickly.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	closeOnce sync.Once
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case work := <-p.queue:
			if work != nil {
				work()
			}
		}
	}
}

// ExecuteAll dispatches work to the pool and waits until every dispatched
// item has finished.
//
// Dispatch stops early when ctx is cancelled or the pool is closed; items
// that were never dispatched are not run. ExecuteAll returns the number of
// items that were dispatched (and therefore completed).
func (p *WorkerPool) ExecuteAll(ctx context.Context, work []func()) int {
	if len(work) == 0 || !p.running.Load() {
		return 0
	}

	var completion sync.WaitGroup
	dispatched := 0

dispatch:
	for _, fn := range work {
		if ctx.Err() != nil {
			break
		}
		workFn := fn
		completion.Add(1)
		wrapped := func() {
			defer completion.Done()
			workFn()
		}

		select {
		case p.queue <- wrapped:
			dispatched++
		case <-ctx.Done():
			completion.Done()
			break dispatch
		case <-p.done:
			completion.Done()
			break dispatch
		}
	}

	completion.Wait()
	return dispatched
}

// Close stops all workers after the tasks they are running finish.
// Close is idempotent.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		p.running.Store(false)
		close(p.done)
		p.wg.Wait()
	})
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
