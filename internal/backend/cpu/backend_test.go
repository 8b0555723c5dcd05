package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/batchmatmul/internal/parallel"
)

func TestNew_Defaults(t *testing.T) {
	backend := New()
	defer backend.Close()

	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, KernelBLAS, backend.Kernel())
	assert.NotNil(t, backend.Executor())
}

func TestNew_WithConfig(t *testing.T) {
	backend := New(WithConfig(parallel.Config{Enabled: false}))
	defer backend.Close()
	assert.IsType(t, parallel.Sequential{}, backend.Executor())

	pooled := New(WithConfig(parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}))
	pool, ok := pooled.Executor().(*parallel.Pool)
	if assert.True(t, ok) {
		assert.Equal(t, 2, pool.NumWorkers())
	}
	pooled.Close()
}

func TestNew_WithExecutorNotClosed(t *testing.T) {
	pool := parallel.NewPool(parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1})
	defer pool.Close()

	backend := New(WithExecutor(pool), WithKernel(KernelNaive))
	assert.Same(t, pool, backend.Executor())
	assert.Equal(t, KernelNaive, backend.Kernel())

	// Closing the backend must leave a caller-owned pool usable.
	backend.Close()
	var hits [8]bool
	pool.For(8, func(i int) { hits[i] = true })
	for i, hit := range hits {
		assert.True(t, hit, "index %d", i)
	}
}
