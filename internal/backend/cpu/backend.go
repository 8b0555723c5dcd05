// Package cpu implements the CPU backend: batched dense matrix products over
// N-dimensional tensors, fanned out across a worker pool.
package cpu

import (
	"github.com/born-ml/batchmatmul/internal/parallel"
)

// CPUBackend runs batched matrix products on CPU.
//
// The execution strategy is fixed at construction: it is never read from
// global state while a product is running.
type CPUBackend struct {
	exec     parallel.Executor
	kernel   Kernel
	ownsExec bool // Close the executor on Close.
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithExecutor uses exec to dispatch batch slices. The caller keeps ownership of exec.
func WithExecutor(exec parallel.Executor) Option {
	return func(cpu *CPUBackend) {
		cpu.exec = exec
		cpu.ownsExec = false
	}
}

// WithConfig creates the executor from cfg. It is closed by CPUBackend.Close.
func WithConfig(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.exec = parallel.NewExecutor(cfg)
		cpu.ownsExec = true
	}
}

// WithKernel selects the GEMM kernel used for each batch slice.
func WithKernel(k Kernel) Option {
	return func(cpu *CPUBackend) {
		cpu.kernel = k
	}
}

// New creates a new CPU backend.
// Without options it uses parallel.DefaultConfig() and the BLAS kernel.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{kernel: KernelBLAS}
	for _, opt := range opts {
		opt(cpu)
	}
	if cpu.exec == nil {
		cpu.exec = parallel.NewExecutor(parallel.DefaultConfig())
		cpu.ownsExec = true
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Kernel returns the GEMM kernel in use.
func (cpu *CPUBackend) Kernel() Kernel {
	return cpu.kernel
}

// Executor returns the executor used to dispatch batch slices.
func (cpu *CPUBackend) Executor() parallel.Executor {
	return cpu.exec
}

// Close releases the worker pool if the backend created it.
func (cpu *CPUBackend) Close() {
	if !cpu.ownsExec {
		return
	}
	if pool, ok := cpu.exec.(*parallel.Pool); ok {
		pool.Close()
	}
}
