// Package tensor provides the core N-dimensional array types used by the batched matmul kernels.
package tensor

import "golang.org/x/exp/constraints"

// Element is a constraint for supported tensor element types.
// Only dense floating-point storage is supported.
type Element interface {
	float32 | float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DTypeOf returns the runtime DataType for the element type E.
func DTypeOf[E Element]() DataType {
	var zero E
	switch any(zero).(type) {
	case float32:
		return Float32
	default:
		return Float64
	}
}

// FromFloat converts a scalar literal into the element type.
// Used for the alpha/beta scale factors of GEMM.
func FromFloat[T constraints.Float](f float64) T {
	return T(f)
}
