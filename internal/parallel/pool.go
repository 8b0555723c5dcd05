package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused until Close.
//
// fn passed to For must not call Close or block on another For of the same pool.
type Pool struct {
	numWorkers   int
	minChunkSize int
	workC        chan workItem

	mu        sync.RWMutex // Guards sends on workC against Close.
	scopes    sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool
}

// workItem represents a contiguous range of indices for one worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewPool creates a worker pool from cfg. Workers are spawned immediately.
// If cfg.NumWorkers <= 0, GOMAXPROCS workers are used.
func NewPool(cfg Config) *Pool {
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers:   numWorkers,
		minChunkSize: max(cfg.MinChunkSize, 1),
		workC:        make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run executes f on the calling goroutine as a scope of the pool:
// Close waits for all running scopes before shutting the workers down.
func (p *Pool) Run(f func()) {
	p.scopes.Add(1)
	defer p.scopes.Done()
	f()
}

// For executes f(i) for each i in [0, n), splitting the range into contiguous
// chunks handed to the workers. Blocks until all work completes.
//
// Falls back to sequential execution if the pool is closed, or if n is too
// small to be worth splitting.
func (p *Pool) For(n int, f func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, (n+p.minChunkSize-1)/p.minChunkSize)
	if workers <= 1 {
		Sequential{}.For(n, f)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		Sequential{}.For(n, f)
		return
	}

	chunkSize := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				for i := start; i < end; i++ {
					f(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Close shuts down the worker pool after running scopes finish.
// Calling Close multiple times is safe; For on a closed pool runs sequentially.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.scopes.Wait()
		p.mu.Lock()
		close(p.workC)
		p.mu.Unlock()
	})
}
