package cpu

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/batchmatmul/internal/tensor"
)

// Kernel selects the dense 2D GEMM implementation used for each batch slice.
type Kernel int

// Available GEMM kernels.
const (
	// KernelBLAS uses gonum's pure Go BLAS (sgemm/dgemm).
	KernelBLAS Kernel = iota
	// KernelNaive uses a straightforward i-k-j triple loop.
	KernelNaive
)

// String returns the kernel name.
func (k Kernel) String() string {
	switch k {
	case KernelBLAS:
		return "blas"
	case KernelNaive:
		return "naive"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// ParseKernel converts a kernel name back into a Kernel.
func ParseKernel(name string) (Kernel, error) {
	switch name {
	case "blas":
		return KernelBLAS, nil
	case "naive":
		return KernelNaive, nil
	default:
		return 0, fmt.Errorf("unknown kernel %q (want \"blas\" or \"naive\")", name)
	}
}

// gemm computes C = alpha*A×B + beta*C for row-major A (m×k), B (k×n), C (m×n).
// With beta == 0 the previous content of C is ignored.
func gemm[E tensor.Element](kernel Kernel, m, n, k int, alpha E, a, b []E, beta E, c []E) {
	if kernel == KernelNaive {
		gemmNaive(m, n, k, alpha, a, b, beta, c)
		return
	}

	switch cData := any(c).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, any(alpha).(float32),
			blas32.General{Rows: m, Cols: k, Stride: k, Data: any(a).([]float32)},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float32)},
			any(beta).(float32),
			blas32.General{Rows: m, Cols: n, Stride: n, Data: cData})
	case []float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, any(alpha).(float64),
			blas64.General{Rows: m, Cols: k, Stride: k, Data: any(a).([]float64)},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float64)},
			any(beta).(float64),
			blas64.General{Rows: m, Cols: n, Stride: n, Data: cData})
	}
}

// gemmNaive is the reference kernel.
// C[i,j] = alpha * sum_k A[i,k] * B[k,j] + beta * C[i,j]
func gemmNaive[T constraints.Float](m, n, k int, alpha T, a, b []T, beta T, c []T) {
	for i := 0; i < m; i++ {
		row := c[i*n : (i+1)*n]
		if beta == 0 {
			clear(row)
		} else {
			for j := range row {
				row[j] *= beta
			}
		}

		// i-k-j order keeps the inner loop on contiguous rows of B and C.
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := alpha * a[i*k+kIdx]
			bRow := b[kIdx*n : (kIdx+1)*n]
			for j, bkj := range bRow {
				row[j] += aik * bkj
			}
		}
	}
}
