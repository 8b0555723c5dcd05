// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the N-dimensional array type consumed by the batched
// matrix multiplication in package backend/cpu.
//
// # Overview
//
// This package provides:
//   - Generic dense tensors (Tensor[E]) for float32 and float64
//   - Zero-copy reshapes and transposes (views)
//   - Reference-counted buffers with copy-on-write
//   - Import/export from flat Go slices
//
// # Basic Usage
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, _ := x.Reshape(tensor.Shape{3, 2}) // shares x's buffer
//	t, _ := x.Transpose(0, 1)             // strided view, no copy
//	fmt.Println(y.ToSlice(), t.ToSlice())
//
// # Memory Management
//
// Views share one buffer. Writing through Set or MutableData detaches the
// written handle first when the buffer is shared, so other views never see
// the change. Reshaping a non-contiguous view (e.g. a transpose) materializes
// an isolated contiguous copy.
package tensor
