package main

import (
	"fmt"

	"github.com/janpfeifer/must"

	"github.com/born-ml/batchmatmul/backend/cpu"
	"github.com/born-ml/batchmatmul/tensor"
)

// demo multiplies lhs [2,3,4] filled with 0, 1, 2, ... by rhs [2,4,5] holding a
// 4×4 identity padded with a zero column in every batch.
func demo() error {
	lhsData := make([]float32, 2*3*4)
	for i := range lhsData {
		lhsData[i] = float32(i)
	}
	lhs := must.M1(tensor.FromSlice(lhsData, tensor.Shape{2, 3, 4}))

	rhs := must.M1(tensor.New[float32](tensor.Shape{2, 4, 5}))
	for b := 0; b < 2; b++ {
		for i := 0; i < 4; i++ {
			rhs.Set(1, b, i, i)
		}
	}

	kernel, err := cpu.ParseKernel(*flagKernel)
	if err != nil {
		return err
	}
	backend := cpu.New(cpu.WithKernel(kernel))
	defer backend.Close()

	out, err := cpu.BatchMatMul(backend, lhs, rhs)
	if err != nil {
		return err
	}

	fmt.Printf("%v @ %v -> %v\n", lhs, rhs, out)
	shape := out.Shape()
	for b := 0; b < shape[0]; b++ {
		fmt.Printf("batch %d:\n", b)
		for i := 0; i < shape[1]; i++ {
			for j := 0; j < shape[2]; j++ {
				fmt.Printf(" %6g", out.At(b, i, j))
			}
			fmt.Println()
		}
	}
	return nil
}
