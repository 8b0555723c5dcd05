package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/batchmatmul/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication of N-dimensional tensors.
//
// The last two axes are the matrix axes; all leading axes are collapsed into a
// single batch axis:
//
//	[M, K] @ [K, N]                -> [M, N]
//	[B, M, K] @ [B, K, N]          -> [B, M, N]
//	[B, H, M, K] @ [B, H, K, N]    -> [B, H, M, N]
//	[1, M, K] @ [B, K, N]          -> [B, M, N]   (lhs broadcast)
//
// A batch size of 1 is broadcast against the other side. Any other mismatch
// fails with *UnsupportedBroadcastError; only the collapsed batch axis takes
// part in broadcasting. Inner dimension mismatches fail with
// *DimensionMismatchError, and rank < 2 with *ShapeError.
//
// All validation happens before any work is dispatched; inputs are never modified.
func BatchMatMul[E tensor.Element](cpu *CPUBackend, lhs, rhs *tensor.Tensor[E]) (*tensor.Tensor[E], error) {
	lhsShape, rhsShape := lhs.Shape().Clone(), rhs.Shape().Clone()

	lhsView, err := ToBatchView(lhs)
	if err != nil {
		return nil, errors.WithMessage(err, "BatchMatMul lhs")
	}
	defer lhsView.Tensor.Release()

	rhsView, err := ToBatchView(rhs)
	if err != nil {
		return nil, errors.WithMessage(err, "BatchMatMul rhs")
	}
	defer rhsView.Tensor.Release()

	plan, err := ResolveBroadcast(lhsView.Batch, rhsView.Batch)
	if err != nil {
		var broadcastErr *UnsupportedBroadcastError
		if errors.As(err, &broadcastErr) {
			broadcastErr.LhsShape, broadcastErr.RhsShape = lhsShape, rhsShape
		}
		return nil, err
	}

	if lhsView.Cols != rhsView.Rows {
		return nil, &DimensionMismatchError{
			LhsShape: lhsShape,
			RhsShape: rhsShape,
			LhsCols:  lhsView.Cols,
			RhsRows:  rhsView.Rows,
		}
	}

	out, err := Compute(cpu, lhsView, rhsView, plan)
	if err != nil {
		return nil, errors.WithMessagef(err, "BatchMatMul(%v, %v)", lhsShape, rhsShape)
	}

	outShape := OutputShape(lhsShape, rhsShape, lhsView.Batch, rhsView.Batch, out.Rows, out.Cols)
	return assemble(out.Tensor, outShape)
}

// Compute multiplies every batch slice of lhs by the matching slice of rhs,
// following plan, and returns a (plan.EffectiveBatchSize, lhs.Rows, rhs.Cols) view.
//
// Each output slice is written by exactly one call of the kernel, with
// alpha=1 and beta=0, so batch slices may run on any worker in any order.
func Compute[E tensor.Element](cpu *CPUBackend, lhs, rhs BatchView[E], plan BroadcastPlan) (BatchView[E], error) {
	if lhs.Cols != rhs.Rows {
		return BatchView[E]{}, &DimensionMismatchError{
			LhsShape: lhs.Tensor.Shape().Clone(),
			RhsShape: rhs.Tensor.Shape().Clone(),
			LhsCols:  lhs.Cols,
			RhsRows:  rhs.Rows,
		}
	}
	expected, err := ResolveBroadcast(lhs.Batch, rhs.Batch)
	if err != nil || expected != plan {
		return BatchView[E]{}, &UnsupportedBroadcastError{
			LhsShape: lhs.Tensor.Shape().Clone(),
			RhsShape: rhs.Tensor.Shape().Clone(),
			LhsBatch: lhs.Batch,
			RhsBatch: rhs.Batch,
		}
	}

	batch := plan.EffectiveBatchSize
	m, k, n := lhs.Rows, lhs.Cols, rhs.Cols

	out, err := tensor.New[E](tensor.Shape{batch, m, n})
	if err != nil {
		return BatchView[E]{}, errors.WithMessage(err, "failed to create result tensor")
	}

	lhsData, rhsData, outData := lhs.Tensor.Data(), rhs.Tensor.Data(), out.MutableData()
	lhsSize, rhsSize, outSize := m*k, k*n, m*n
	alpha, beta := tensor.FromFloat[E](1), tensor.FromFloat[E](0)

	cpu.exec.Run(func() {
		cpu.exec.For(batch, func(b int) {
			lhsOffset := plan.lhsIndex(b) * lhsSize
			rhsOffset := plan.rhsIndex(b) * rhsSize
			outOffset := b * outSize
			gemm(cpu.kernel, m, n, k, alpha,
				lhsData[lhsOffset:lhsOffset+lhsSize],
				rhsData[rhsOffset:rhsOffset+rhsSize],
				beta,
				outData[outOffset:outOffset+outSize])
		})
	})

	return BatchView[E]{Tensor: out, Batch: batch, Rows: m, Cols: n}, nil
}
