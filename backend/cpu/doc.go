// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for batched matrix multiplication.
//
// # Overview
//
// This package implements:
//   - Pure Go implementation (no CGO), GEMM from gonum's BLAS
//   - Float32 and Float64 support
//   - Arbitrary leading batch axes, collapsed into one batch axis
//   - Broadcasting of a batch size of 1 against the other operand
//   - Parallel dispatch of batch slices on a persistent worker pool
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/batchmatmul/backend/cpu"
//	    "github.com/born-ml/batchmatmul/tensor"
//	)
//
//	func main() {
//	    a, _ := tensor.New[float32](tensor.Shape{8, 4, 32, 16})
//	    b, _ := tensor.New[float32](tensor.Shape{8, 4, 16, 32})
//
//	    c, err := cpu.MatMul(a, b) // [8, 4, 32, 32]
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Errors
//
// Invalid inputs never panic. Errors can be classified with errors.Is
// (ErrShape, ErrDimensionMismatch, ErrUnsupportedBroadcast) and inspected with
// errors.As (*ShapeError, *DimensionMismatchError, *UnsupportedBroadcastError).
//
// # Parallelism
//
// MatMul uses a process-wide backend configured once from $BATCHMATMUL_PARALLEL
// (see ConfigEnvVar). For explicit control, create a backend with New and
// WithParallelConfig, WithExecutor or WithKernel. Sequential and parallel
// execution produce identical results.
//
// # Thread Safety
//
// A Backend is safe for concurrent use. Inputs are only read.
package cpu
