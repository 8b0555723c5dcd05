package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/batchmatmul/backend/cpu"
	"github.com/born-ml/batchmatmul/tensor"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	cellStyle  = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func bench() error {
	lhsShape, err := parseShape(*flagLhs)
	if err != nil {
		return err
	}
	rhsShape, err := parseShape(*flagRhs)
	if err != nil {
		return err
	}
	kernel, err := cpu.ParseKernel(*flagKernel)
	if err != nil {
		return err
	}
	if *flagIters < 1 {
		return errors.Errorf("-iters must be at least 1, got %d", *flagIters)
	}

	switch *flagDType {
	case "float32":
		return runBench[float32](lhsShape, rhsShape, kernel)
	case "float64":
		return runBench[float64](lhsShape, rhsShape, kernel)
	default:
		return errors.Errorf("unsupported -dtype %q", *flagDType)
	}
}

type benchResult struct {
	mode    string
	workers int
	perOp   time.Duration
}

func runBench[E tensor.Element](lhsShape, rhsShape tensor.Shape, kernel cpu.Kernel) error {
	rng := rand.New(rand.NewPCG(*flagSeed, *flagSeed+1))
	lhs, err := randomTensor[E](rng, lhsShape)
	if err != nil {
		return err
	}
	rhs, err := randomTensor[E](rng, rhsShape)
	if err != nil {
		return err
	}

	parallelCfg := cpu.DefaultParallelConfig()
	parallelCfg.Enabled = true
	if *flagWorkers > 0 {
		parallelCfg.NumWorkers = *flagWorkers
	}
	modes := []struct {
		name string
		cfg  cpu.ParallelConfig
	}{
		{"sequential", cpu.ParallelConfig{Enabled: false, NumWorkers: 1}},
		{"parallel", parallelCfg},
	}

	var (
		results   []benchResult
		reference []E
		out       *tensor.Tensor[E]
	)
	for _, mode := range modes {
		backend := cpu.New(cpu.WithParallelConfig(mode.cfg), cpu.WithKernel(kernel))
		// Warm-up run, also used for the determinism check.
		out, err = cpu.BatchMatMul(backend, lhs, rhs)
		if err != nil {
			backend.Close()
			return err
		}
		values := out.ToSlice()
		if reference == nil {
			reference = values
		} else if !slices.Equal(reference, values) {
			backend.Close()
			return errors.Errorf("%s results differ from sequential results", mode.name)
		}

		start := time.Now()
		for range *flagIters {
			if _, err = cpu.BatchMatMul(backend, lhs, rhs); err != nil {
				backend.Close()
				return err
			}
		}
		elapsed := time.Since(start)
		backend.Close()

		perOp := elapsed / time.Duration(*flagIters)
		klog.V(1).Infof("%s: %d iterations in %s", mode.name, *flagIters, elapsed)
		results = append(results, benchResult{mode: mode.name, workers: mode.cfg.NumWorkers, perOp: perOp})
	}

	outShape := out.Shape()
	rows, cols := outShape[len(outShape)-2], outShape[len(outShape)-1]
	k := lhsShape[len(lhsShape)-1]
	batch := out.NumElements() / (rows * cols)
	flops := 2 * float64(batch) * float64(rows) * float64(cols) * float64(k)

	fmt.Println(titleStyle.Render(fmt.Sprintf("BatchMatMul %v @ %v -> %v", lhs, rhs, out)))
	summary := newTable()
	summary.Row("Kernel", kernel.String())
	summary.Row("Batch slices", humanize.Comma(int64(batch)))
	summary.Row("Output elements", humanize.Comma(int64(out.NumElements())))
	summary.Row("Operand bytes", humanize.Bytes(uint64(lhs.ByteSize()+rhs.ByteSize())))
	summary.Row("Output bytes", humanize.Bytes(uint64(out.ByteSize())))
	fmt.Println(summary.Render())

	table := newTable().Headers("Mode", "Workers", "Time/op", "GFLOP/s", "Speedup")
	for _, r := range results {
		table.Row(r.mode, fmt.Sprint(r.workers), r.perOp.String(),
			humanize.FormatFloat("#,###.##", flops/r.perOp.Seconds()/1e9),
			fmt.Sprintf("%.2fx", results[0].perOp.Seconds()/r.perOp.Seconds()))
	}
	fmt.Println(table.Render())
	fmt.Println("Results are identical across modes.")
	return nil
}

func newTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
}

func randomTensor[E tensor.Element](rng *rand.Rand, shape tensor.Shape) (*tensor.Tensor[E], error) {
	data := make([]E, shape.NumElements())
	for i := range data {
		data[i] = E(rng.Float64()*2 - 1)
	}
	return tensor.FromSlice(data, shape)
}
