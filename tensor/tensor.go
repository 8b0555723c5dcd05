// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/batchmatmul/internal/tensor"
)

// Element is a constraint for tensor element types: float32 or float64.
type Element = tensor.Element

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense N-dimensional array backed by a reference-counted buffer.
type Tensor[E Element] = tensor.Tensor[E]

// ErrElementCount is returned by Reshape when element counts differ.
var ErrElementCount = tensor.ErrElementCount

// New creates a zero-filled tensor.
func New[E Element](shape Shape) (*Tensor[E], error) {
	return tensor.New[E](shape)
}

// FromSlice creates a tensor from data in row-major order. data is copied.
func FromSlice[E Element](data []E, shape Shape) (*Tensor[E], error) {
	return tensor.FromSlice(data, shape)
}
