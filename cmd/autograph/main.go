// Package main provides the autograph CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/autodiff/ops"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	var err error
	switch flag.Arg(0) {
	case "version":
		fmt.Printf("autograph %s\n", version)
	case "devices":
		devices()
	case "ops":
		fmt.Println(strings.Join(ops.Names(), "\n"))
	case "selftest":
		err = selftest()
	default:
		usage()
	}
	if err != nil {
		klog.Errorf("%+v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("autograph - differentiable activation operators for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    Show CPU features and the resolved accelerator")
	fmt.Println("  ops        List registered operators")
	fmt.Println("  selftest   Run every operator on the primary and accelerator paths")
	fmt.Println("")
	fmt.Printf("Accelerator selection: %s, %s, %s\n",
		backend.EnvAccelerator, backend.EnvWorkers, backend.EnvMinChunk)
}

func devices() {
	fmt.Printf("CPU:         %s\n", cpuid.CPU.BrandName)
	fmt.Printf("Cores:       %d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Printf("AVX2:        %v\n", cpuid.CPU.Supports(cpuid.AVX2))
	fmt.Printf("AVX512F:     %v\n", cpuid.CPU.Supports(cpuid.AVX512F))

	cfg, err := backend.ConfigFromEnv()
	if err != nil {
		klog.Warningf("invalid configuration, using defaults: %v", err)
		cfg = backend.DefaultConfig()
	}
	fmt.Printf("Config:      accelerator=%s workers=%d min_chunk=%d\n", cfg.Accelerator, cfg.Workers, cfg.MinChunk)
	fmt.Printf("Accelerator: %s\n", backend.Default().Name())
}

// selftest evaluates each activation on a small input with both selectors.
// Capability gaps are reported, not treated as failures.
func selftest() error {
	in, err := tensor.FromFloat32([]float32{-2, -1, 0, 1, 2, 3}, tensor.Shape{2, 3})
	if err != nil {
		return err
	}
	x := autodiff.Placeholder("x", in.Shape(), in.DType())

	nodes := []*autodiff.Node{
		ops.Relu.Apply(x),
		ops.ReluGradient.Apply(x, x),
		ops.Sigmoid.Apply(x),
		ops.Softmax.Apply(x),
	}
	for _, sel := range []backend.Selector{backend.Select(backend.Primary), backend.Select(backend.Accelerator)} {
		for _, n := range nodes {
			inputs := make([]*tensor.RawTensor, n.NumInputs())
			for i := range inputs {
				inputs[i] = in
			}
			out := tensor.Like(in)
			err := n.Op().Compute(n, inputs, out, sel)
			switch {
			case err == nil:
				fmt.Printf("%-12s %-20s %v\n", sel, n.Name(), out.AsFloat32())
			case autodiff.IsNotImplemented(err), errors.Is(err, backend.ErrNoAccelerator):
				fmt.Printf("%-12s %-20s unavailable: %v\n", sel, n.Name(), err)
			default:
				return errors.WithMessagef(err, "selftest %s on %s", n.Name(), sel)
			}
		}
	}
	return nil
}
