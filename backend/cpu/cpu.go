// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"sync"

	internalcpu "github.com/born-ml/batchmatmul/internal/backend/cpu"
	"github.com/born-ml/batchmatmul/internal/parallel"
	"github.com/born-ml/batchmatmul/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Kernel selects the dense GEMM implementation.
type Kernel = internalcpu.Kernel

// Kernel constants.
const (
	KernelBLAS  Kernel = internalcpu.KernelBLAS
	KernelNaive Kernel = internalcpu.KernelNaive
)

// ParallelConfig controls how batch slices are dispatched.
type ParallelConfig = parallel.Config

// Executor dispatches units of work, possibly in parallel.
type Executor = parallel.Executor

// ConfigEnvVar is the environment variable that configures the default backend.
const ConfigEnvVar = parallel.ConfigEnvVar

// Error kinds.
var (
	ErrShape                = internalcpu.ErrShape
	ErrDimensionMismatch    = internalcpu.ErrDimensionMismatch
	ErrUnsupportedBroadcast = internalcpu.ErrUnsupportedBroadcast
)

// Typed errors carrying the offending shapes.
type (
	ShapeError                = internalcpu.ShapeError
	DimensionMismatchError    = internalcpu.DimensionMismatchError
	UnsupportedBroadcastError = internalcpu.UnsupportedBroadcastError
)

// New creates a new CPU backend. Call Close when done to stop its workers.
//
// Example:
//
//	backend := cpu.New(cpu.WithParallelConfig(cpu.ParallelConfig{Enabled: false}))
//	defer backend.Close()
//	c, err := cpu.BatchMatMul(backend, a, b)
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithParallelConfig dispatches batch slices according to cfg.
func WithParallelConfig(cfg ParallelConfig) Option {
	return internalcpu.WithConfig(cfg)
}

// WithExecutor dispatches batch slices on exec, owned by the caller.
func WithExecutor(exec Executor) Option {
	return internalcpu.WithExecutor(exec)
}

// WithKernel selects the GEMM kernel.
func WithKernel(k Kernel) Option {
	return internalcpu.WithKernel(k)
}

// ParseKernel converts "blas" or "naive" into a Kernel.
func ParseKernel(name string) (Kernel, error) {
	return internalcpu.ParseKernel(name)
}

// DefaultParallelConfig returns the parallel configuration based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

var (
	defaultOnce    sync.Once
	defaultBackend *Backend
)

// Default returns the process-wide backend, configured from $BATCHMATMUL_PARALLEL
// the first time it is used.
func Default() *Backend {
	defaultOnce.Do(func() {
		defaultBackend = internalcpu.New(internalcpu.WithConfig(parallel.ConfigFromEnv()))
	})
	return defaultBackend
}

// BatchMatMul multiplies lhs by rhs on backend. See MatMul.
func BatchMatMul[E tensor.Element](backend *Backend, lhs, rhs *tensor.Tensor[E]) (*tensor.Tensor[E], error) {
	return internalcpu.BatchMatMul(backend, lhs, rhs)
}

// MatMul multiplies lhs by rhs using the default backend.
//
// The last two axes are the matrix axes and all leading axes are batch axes:
//
//	[B, M, K] @ [B, K, N] -> [B, M, N]
//	[1, M, K] @ [B, K, N] -> [B, M, N]
//	[M, K] @ [K, N]       -> [M, N]
func MatMul[E tensor.Element](lhs, rhs *tensor.Tensor[E]) (*tensor.Tensor[E], error) {
	return internalcpu.BatchMatMul(Default(), lhs, rhs)
}
