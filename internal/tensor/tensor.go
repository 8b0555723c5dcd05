package tensor

import (
	"fmt"
)

// Tensor is a dense N-dimensional array of element type E.
//
// It uses reference-counted shared buffers for Copy-on-Write semantics:
// Clone, Reshape and Transpose return views sharing the buffer, and any
// write through one handle first detaches it so the others never observe it.
type Tensor[E Element] struct {
	buffer *tensorBuffer[E] // Shared reference-counted buffer
	shape  Shape            // Tensor dimensions
	stride []int            // Memory strides, in elements
	offset int              // Offset of element [0, ..., 0] in buffer
}

// New creates a new zero-filled Tensor with the given shape.
func New[E Element](shape Shape) (*Tensor[E], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor[E]{
		buffer: newTensorBuffer[E](shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// FromSlice creates a tensor from a Go slice in row-major order.
// The slice is copied into the tensor's memory.
func FromSlice[E Element](data []E, shape Shape) (*Tensor[E], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t, err := New[E](shape)
	if err != nil {
		return nil, err
	}
	copy(t.buffer.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[E]) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's memory strides.
func (t *Tensor[E]) Strides() []int {
	return t.stride
}

// Rank returns the number of axes.
func (t *Tensor[E]) Rank() int {
	return len(t.shape)
}

// DType returns the tensor's data type.
func (t *Tensor[E]) DType() DataType {
	return DTypeOf[E]()
}

// NumElements returns the total number of elements.
func (t *Tensor[E]) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the logical memory size in bytes.
func (t *Tensor[E]) ByteSize() int {
	return t.NumElements() * t.DType().Size()
}

// IsContiguous reports whether the elements are laid out in row-major order
// without gaps. Axes of extent 1 are ignored since their stride is never used.
func (t *Tensor[E]) IsContiguous() bool {
	expected := t.shape.ComputeStrides()
	for i, dim := range t.shape {
		if dim != 1 && t.stride[i] != expected[i] {
			return false
		}
	}
	return true
}

// Data returns the contiguous backing storage of the tensor.
// The slice aliases the shared buffer and MUST be treated as read-only;
// use MutableData to write.
// Panics if the tensor is not contiguous.
func (t *Tensor[E]) Data() []E {
	if !t.IsContiguous() {
		panic(fmt.Sprintf("tensor with shape %v and strides %v is not contiguous", t.shape, t.stride))
	}
	return t.buffer.data[t.offset : t.offset+t.NumElements()]
}

// MutableData returns the contiguous backing storage for writing.
// If the buffer is shared or the layout is strided, the tensor is first
// detached into its own contiguous buffer.
func (t *Tensor[E]) MutableData() []E {
	if !t.buffer.isUnique() || !t.IsContiguous() {
		t.detach()
	}
	return t.buffer.data[t.offset : t.offset+t.NumElements()]
}

// ToSlice exports the elements in logical row-major order.
// The returned slice is always a fresh copy.
func (t *Tensor[E]) ToSlice() []E {
	out := make([]E, t.NumElements())
	t.copyTo(out)
	return out
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[E]) At(idx ...int) E {
	return t.buffer.data[t.position(idx)]
}

// Set writes v at the given multi-dimensional index.
// A shared buffer is copied first (copy-on-write).
func (t *Tensor[E]) Set(v E, idx ...int) {
	pos := t.position(idx)
	if !t.buffer.isUnique() {
		t.detach()
		pos = t.position(idx)
	}
	t.buffer.data[pos] = v
}

// Clone creates a shallow copy of the Tensor (shares buffer with reference counting).
// The buffer will be copied only when modified (copy-on-write).
func (t *Tensor[E]) Clone() *Tensor[E] {
	t.buffer.addRef()
	return &Tensor[E]{
		buffer: t.buffer,
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
		offset: t.offset,
	}
}

// Release decrements the reference count and deallocates if it reaches 0.
func (t *Tensor[E]) Release() {
	t.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (t *Tensor[E]) IsUnique() bool {
	return t.buffer.isUnique()
}

// SharesBuffer reports whether t and other alias the same storage.
func (t *Tensor[E]) SharesBuffer(other *Tensor[E]) bool {
	return t.buffer == other.buffer
}

// String returns a short description, e.g. "float32[2, 3]".
func (t *Tensor[E]) String() string {
	return t.DType().String() + t.shape.String()
}

func (t *Tensor[E]) position(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("index %v has %d axes, tensor has rank %d", idx, len(idx), len(t.shape)))
	}
	pos := t.offset
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("index %v out of range for shape %v", idx, t.shape))
		}
		pos += x * t.stride[i]
	}
	return pos
}

// detach moves the tensor onto a private contiguous buffer.
func (t *Tensor[E]) detach() {
	buf := newTensorBuffer[E](t.NumElements())
	t.copyTo(buf.data)
	t.buffer.release()
	t.buffer = buf
	t.stride = t.shape.ComputeStrides()
	t.offset = 0
}

// copyTo writes the elements in logical row-major order into dst.
func (t *Tensor[E]) copyTo(dst []E) {
	n := t.NumElements()
	if t.IsContiguous() {
		copy(dst, t.buffer.data[t.offset:t.offset+n])
		return
	}

	// Odometer walk over the strided layout.
	idx := make([]int, len(t.shape))
	pos := t.offset
	for i := 0; i < n; i++ {
		dst[i] = t.buffer.data[pos]
		for axis := len(idx) - 1; axis >= 0; axis-- {
			idx[axis]++
			pos += t.stride[axis]
			if idx[axis] < t.shape[axis] {
				break
			}
			pos -= t.stride[axis] * t.shape[axis]
			idx[axis] = 0
		}
	}
}
