// Package parallel provides the execution strategies used to fan work out
// over batch indices: a persistent worker pool and a strictly sequential fallback.
package parallel

import (
	"runtime"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
//
// Items handed to an Executor are whole matrix products, so a single item is
// already worth a goroutine.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Executor runs units of work, possibly in parallel.
//
// Implementations must call f exactly once per index in For, and must return
// only after every call has completed.
type Executor interface {
	// Run executes f, inside a parallel scope if the executor has one.
	Run(f func())

	// For executes f(i) for i in [0, n).
	For(n int, f func(i int))
}

// NewExecutor returns a Sequential executor when parallelism is disabled,
// and a new Pool otherwise. Pools should be closed when no longer needed.
func NewExecutor(cfg Config) Executor {
	if !cfg.Enabled || cfg.NumWorkers == 1 {
		return Sequential{}
	}
	return NewPool(cfg)
}

// Sequential runs everything in order on the calling goroutine.
type Sequential struct{}

// Run calls f.
func (Sequential) Run(f func()) {
	f()
}

// For calls f(0), f(1), ..., f(n-1) in order.
func (Sequential) For(n int, f func(i int)) {
	for i := 0; i < n; i++ {
		f(i)
	}
}

// Map applies f to every index in [0, n) using exec and returns the results in
// index order. Each index writes only its own slot, so no locking is needed.
func Map[T any](exec Executor, n int, f func(i int) T) []T {
	out := make([]T, n)
	exec.For(n, func(i int) {
		out[i] = f(i)
	})
	return out
}
