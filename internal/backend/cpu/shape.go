package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/batchmatmul/internal/tensor"
)

// BatchView is a 3-axis (batch, rows, cols) reinterpretation of a tensor.
//
// Invariant: Batch*Rows*Cols == Tensor.NumElements(), and Tensor is contiguous.
type BatchView[E tensor.Element] struct {
	Tensor *tensor.Tensor[E]
	Batch  int
	Rows   int
	Cols   int
}

// Matrix returns the row-major Rows×Cols storage of batch slice i.
// The returned slice aliases the view's buffer and must not be written.
func (v BatchView[E]) Matrix(i int) []E {
	size := v.Rows * v.Cols
	return v.Tensor.Data()[i*size : (i+1)*size]
}

// ToBatchView collapses all axes but the last two of x into one batch axis.
//
// For a contiguous x the view shares x's buffer; otherwise x is materialized
// into an isolated contiguous copy. Rank < 2 fails with *ShapeError.
//
// Examples:
//
//	[3, 4]          → (1, 3, 4)
//	[2, 3, 4]       → (2, 3, 4)
//	[2, 5, 3, 4]    → (10, 3, 4)
func ToBatchView[E tensor.Element](x *tensor.Tensor[E]) (BatchView[E], error) {
	shape := x.Shape()
	rank := len(shape)
	if rank < 2 {
		return BatchView[E]{}, &ShapeError{
			Op:      "reshape",
			Shape:   shape.Clone(),
			Details: "matrix product needs rank >= 2",
		}
	}

	batch := tensor.Shape(shape[:rank-2]).NumElements()
	rows, cols := shape[rank-2], shape[rank-1]

	view, err := x.Reshape(tensor.Shape{batch, rows, cols})
	if err != nil {
		return BatchView[E]{}, &ShapeError{Op: "reshape", Shape: shape.Clone(), Details: err.Error()}
	}
	return BatchView[E]{Tensor: view, Batch: batch, Rows: rows, Cols: cols}, nil
}

// OutputShape returns the final shape of a batched product: the original shape
// of the operand with the larger batch size (lhs on ties), with its last two
// axes replaced by rows and cols.
//
// Examples:
//
//	[2, 3, 4] × [2, 4, 5]     → [2, 3, 5]
//	[1, 3, 4] × [6, 4, 5]     → [6, 3, 5]
//	[2, 3, 3, 4] × [1, 4, 5]  → [2, 3, 3, 5]
func OutputShape(lhsShape, rhsShape tensor.Shape, lhsBatch, rhsBatch, rows, cols int) tensor.Shape {
	template := lhsShape
	if rhsBatch > lhsBatch {
		template = rhsShape
	}
	out := template.Clone()
	out[len(out)-2] = rows
	out[len(out)-1] = cols
	return out
}

// assemble reshapes the flat (batch, rows, cols) result into shape.
func assemble[E tensor.Element](out *tensor.Tensor[E], shape tensor.Shape) (*tensor.Tensor[E], error) {
	if out.NumElements() != shape.NumElements() {
		return nil, &ShapeError{
			Op:      "assemble",
			Shape:   out.Shape().Clone(),
			Details: "result does not fit output shape " + shape.String(),
		}
	}
	result, err := out.Reshape(shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "while assembling output shape %v", shape)
	}
	out.Release()
	return result, nil
}
