// Package main provides the batchmatmul CLI: a demo of batched products and a
// benchmark comparing sequential and parallel dispatch.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/batchmatmul/tensor"
)

const version = "v0.1.0-dev"

var (
	flagLhs     = flag.String("lhs", "8,64,128", "Comma-separated shape of the left operand.")
	flagRhs     = flag.String("rhs", "8,128,64", "Comma-separated shape of the right operand.")
	flagDType   = flag.String("dtype", "float32", "Element type: float32 or float64.")
	flagKernel  = flag.String("kernel", "blas", "GEMM kernel: blas or naive.")
	flagWorkers = flag.Int("workers", 0, "Number of workers for the parallel run (0 = number of CPUs).")
	flagIters   = flag.Int("iters", 10, "Number of timed iterations per mode.")
	flagSeed    = flag.Uint64("seed", 42, "Seed for the random operands.")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command>\n\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  demo       Multiply [2,3,4] consecutive integers by identity-padded [2,4,5]")
	fmt.Fprintln(out, "  bench      Time sequential vs parallel BatchMatMul on -lhs x -rhs")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("batchmatmul %s\n", version)
	case "demo":
		err = demo()
	case "bench":
		err = bench()
	default:
		klog.Errorf("Unknown command %q. See '%s -help'.", args[0], os.Args[0])
		os.Exit(1)
	}
	if err != nil {
		klog.Errorf("%s failed: %+v", args[0], err)
		os.Exit(1)
	}
}

// parseShape parses "2,3,4" into a tensor.Shape.
func parseShape(s string) (tensor.Shape, error) {
	parts := strings.Split(s, ",")
	shape := make(tensor.Shape, 0, len(parts))
	for _, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dimension %q in shape %q", part, s)
		}
		shape = append(shape, dim)
	}
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid shape %q", s)
	}
	return shape, nil
}
