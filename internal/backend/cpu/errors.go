package cpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/batchmatmul/internal/tensor"
)

// Error kinds returned by BatchMatMul. Use errors.Is to classify a failure and
// errors.As with the matching struct type to get the offending shapes.
var (
	ErrShape                = errors.New("invalid shape")
	ErrDimensionMismatch    = errors.New("inner dimension mismatch")
	ErrUnsupportedBroadcast = errors.New("broadcast on multiple dimensions is not supported")
)

// ShapeError reports a tensor whose rank is too small for a matrix product, or
// an element count that does not survive a reshape.
type ShapeError struct {
	Op      string       // Operation that failed (e.g. "reshape", "assemble")
	Shape   tensor.Shape // Offending shape
	Details string       // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: shape %v: %s", e.Op, ErrShape, e.Shape, e.Details)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error { return ErrShape }

// DimensionMismatchError reports lhs columns that differ from rhs rows.
type DimensionMismatchError struct {
	LhsShape, RhsShape tensor.Shape
	LhsCols, RhsRows   int
}

// Error implements the error interface.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: lhs %v has %d columns, rhs %v has %d rows",
		ErrDimensionMismatch, e.LhsShape, e.LhsCols, e.RhsShape, e.RhsRows)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// UnsupportedBroadcastError reports batch sizes where a side is neither 1 nor
// the larger batch size.
type UnsupportedBroadcastError struct {
	LhsShape, RhsShape tensor.Shape
	LhsBatch, RhsBatch int
}

// Error implements the error interface.
func (e *UnsupportedBroadcastError) Error() string {
	return fmt.Sprintf("%s: lhs %v has batch size %d, rhs %v has batch size %d",
		ErrUnsupportedBroadcast, e.LhsShape, e.LhsBatch, e.RhsShape, e.RhsBatch)
}

// Unwrap returns ErrUnsupportedBroadcast.
func (e *UnsupportedBroadcastError) Unwrap() error { return ErrUnsupportedBroadcast }
