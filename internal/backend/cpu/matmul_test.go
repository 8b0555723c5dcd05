package cpu

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemm_KernelsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	m, k, n := 7, 5, 9

	a64 := make([]float64, m*k)
	b64 := make([]float64, k*n)
	for i := range a64 {
		a64[i] = rng.Float64()
	}
	for i := range b64 {
		b64[i] = rng.Float64()
	}

	blasOut := make([]float64, m*n)
	naiveOut := make([]float64, m*n)
	gemm(KernelBLAS, m, n, k, 1.0, a64, b64, 0.0, blasOut)
	gemm(KernelNaive, m, n, k, 1.0, a64, b64, 0.0, naiveOut)
	for i := range blasOut {
		assert.InDelta(t, naiveOut[i], blasOut[i], 1e-12, "element %d", i)
	}

	a32 := make([]float32, m*k)
	b32 := make([]float32, k*n)
	for i := range a32 {
		a32[i] = float32(a64[i])
	}
	for i := range b32 {
		b32[i] = float32(b64[i])
	}
	blas32Out := make([]float32, m*n)
	naive32Out := make([]float32, m*n)
	gemm(KernelBLAS, m, n, k, float32(1), a32, b32, float32(0), blas32Out)
	gemm(KernelNaive, m, n, k, float32(1), a32, b32, float32(0), naive32Out)
	for i := range blas32Out {
		assert.InDelta(t, naive32Out[i], blas32Out[i], 1e-5, "element %d", i)
	}
}

func TestGemm_BetaZeroIgnoresOutput(t *testing.T) {
	a := []float64{1, 2, 3, 4} // 2x2
	b := []float64{5, 6, 7, 8} // 2x2
	for _, kernel := range []Kernel{KernelBLAS, KernelNaive} {
		c := []float64{math.NaN(), 100, -100, math.Inf(1)}
		gemm(kernel, 2, 2, 2, 1.0, a, b, 0.0, c)
		assert.Equal(t, []float64{19, 22, 43, 50}, c, "kernel %s", kernel)
	}
}

func TestGemm_AlphaBeta(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	for _, kernel := range []Kernel{KernelBLAS, KernelNaive} {
		c := []float32{1, 1, 1, 1}
		gemm(kernel, 2, 2, 2, float32(2), a, b, float32(1), c)
		assert.Equal(t, []float32{39, 45, 87, 101}, c, "kernel %s", kernel)
	}
}

func TestParseKernel(t *testing.T) {
	for _, k := range []Kernel{KernelBLAS, KernelNaive} {
		got, err := ParseKernel(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKernel("cublas")
	assert.Error(t, err)
	assert.Equal(t, "Kernel(7)", Kernel(7).String())
}
