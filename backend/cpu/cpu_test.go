// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/batchmatmul/backend/cpu"
	"github.com/born-ml/batchmatmul/tensor"
)

func TestMatMul(t *testing.T) {
	a := must.M1(tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3}))
	b := must.M1(tensor.FromSlice([]float32{
		1, 0,
		0, 1,
		1, 1,

		2, 0,
		0, 2,
		0, 0,
	}, tensor.Shape{2, 3, 2}))

	c, err := cpu.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 2}, c.Shape())
	assert.Equal(t, []float32{4, 5, 10, 11, 2, 4, 8, 10}, c.ToSlice())
}

func TestMatMul_Errors(t *testing.T) {
	a := must.M1(tensor.New[float64](tensor.Shape{2, 3, 4}))

	_, err := cpu.MatMul(a, must.M1(tensor.New[float64](tensor.Shape{3, 4, 5})))
	var broadcastErr *cpu.UnsupportedBroadcastError
	assert.True(t, errors.As(err, &broadcastErr))
	assert.True(t, errors.Is(err, cpu.ErrUnsupportedBroadcast))

	_, err = cpu.MatMul(a, must.M1(tensor.New[float64](tensor.Shape{2, 5, 5})))
	var dimErr *cpu.DimensionMismatchError
	assert.True(t, errors.As(err, &dimErr))

	_, err = cpu.MatMul(a, must.M1(tensor.New[float64](tensor.Shape{4})))
	var shapeErr *cpu.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestBatchMatMul_SequentialMatchesParallel(t *testing.T) {
	lhs := must.M1(tensor.New[float64](tensor.Shape{4, 3, 2}))
	rhs := must.M1(tensor.New[float64](tensor.Shape{4, 2, 3}))
	for i, v := range []*tensor.Tensor[float64]{lhs, rhs} {
		data := v.MutableData()
		for j := range data {
			data[j] = float64((j*7+i)%11) - 5
		}
	}

	seq := cpu.New(cpu.WithParallelConfig(cpu.ParallelConfig{Enabled: false}))
	defer seq.Close()
	par := cpu.New(cpu.WithParallelConfig(cpu.ParallelConfig{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))
	defer par.Close()

	want := must.M1(cpu.BatchMatMul(seq, lhs, rhs))
	got := must.M1(cpu.BatchMatMul(par, lhs, rhs))
	assert.Equal(t, want.ToSlice(), got.ToSlice())
}

func TestDefault(t *testing.T) {
	assert.Same(t, cpu.Default(), cpu.Default())
}

func ExampleMatMul() {
	// [1, 2, 2] broadcast against [3, 2, 2].
	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	b, _ := tensor.FromSlice([]float64{
		1, 0, 0, 1,
		2, 0, 0, 2,
		0, 1, 1, 0,
	}, tensor.Shape{3, 2, 2})

	c, err := cpu.MatMul(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Shape(), c.ToSlice())
	// Output: [3, 2, 2] [1 2 3 4 2 4 6 8 2 1 4 3]
}

func ExampleMatMul_error() {
	a, _ := tensor.New[float32](tensor.Shape{2, 3, 4})
	b, _ := tensor.New[float32](tensor.Shape{3, 4, 5})

	_, err := cpu.MatMul(a, b)
	fmt.Println(errors.Is(err, cpu.ErrUnsupportedBroadcast))
	fmt.Println(err)
	// Output:
	// true
	// broadcast on multiple dimensions is not supported: lhs [2, 3, 4] has batch size 2, rhs [3, 4, 5] has batch size 3
}
