package tensor

import (
	"errors"
	"fmt"
)

// ErrElementCount is returned when a reshape target does not hold the same
// number of elements as the source.
var ErrElementCount = errors.New("element count mismatch")

// Reshape returns a tensor with the same elements in row-major order and a new shape.
//
// When t is contiguous the result is a zero-copy view sharing t's buffer.
// Otherwise the elements are materialized into an isolated contiguous buffer
// and t is left untouched.
func (t *Tensor[E]) Reshape(shape Shape) (*Tensor[E], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != t.NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) into %v (%d elements)",
			ErrElementCount, t.shape, t.NumElements(), shape, shape.NumElements())
	}

	if t.IsContiguous() {
		t.buffer.addRef()
		return &Tensor[E]{
			buffer: t.buffer,
			shape:  shape.Clone(),
			stride: shape.ComputeStrides(),
			offset: t.offset,
		}, nil
	}

	buf := newTensorBuffer[E](t.NumElements())
	t.copyTo(buf.data)
	return &Tensor[E]{
		buffer: buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// Contiguous returns a row-major tensor with t's elements: a shared view if t
// is already contiguous, an isolated copy otherwise.
func (t *Tensor[E]) Contiguous() *Tensor[E] {
	if t.IsContiguous() {
		return t.Clone()
	}
	buf := newTensorBuffer[E](t.NumElements())
	t.copyTo(buf.data)
	return &Tensor[E]{
		buffer: buf,
		shape:  t.shape.Clone(),
		stride: t.shape.ComputeStrides(),
	}
}

// Transpose swaps two axes. The result is a strided view sharing t's buffer;
// no data is moved.
// Negative axes count from the end.
func (t *Tensor[E]) Transpose(axis1, axis2 int) (*Tensor[E], error) {
	rank := len(t.shape)
	if axis1 < 0 {
		axis1 += rank
	}
	if axis2 < 0 {
		axis2 += rank
	}
	if axis1 < 0 || axis1 >= rank || axis2 < 0 || axis2 >= rank {
		return nil, fmt.Errorf("transpose: axes (%d, %d) out of range for rank %d", axis1, axis2, rank)
	}

	view := t.Clone()
	view.shape[axis1], view.shape[axis2] = view.shape[axis2], view.shape[axis1]
	view.stride[axis1], view.stride[axis2] = view.stride[axis2], view.stride[axis1]
	return view, nil
}
