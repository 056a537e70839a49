// Package cpu implements the accelerator kernel set on the host CPU, splitting
// element-wise work and softmax rows across goroutines.
package cpu

import (
	"github.com/born-ml/autograph/internal/parallel"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Kernels runs relu, relu-gradient and softmax on all cores.
type Kernels struct {
	cfg parallel.Config
}

// New creates a CPU kernel set using the given worker count and minimum
// number of elements per goroutine.
func New(workers, minChunk int) *Kernels {
	cfg := parallel.Config{
		Enabled:      workers > 1,
		NumWorkers:   workers,
		MinChunkSize: minChunk,
	}
	if klog.V(2).Enabled() {
		klog.Infof("cpu kernels: %s, %d workers, min chunk %d, AVX2=%v",
			cpuid.CPU.BrandName, workers, minChunk, cpuid.CPU.Supports(cpuid.AVX2))
	}
	return &Kernels{cfg: cfg}
}

// Name returns "cpu".
func (k *Kernels) Name() string {
	return "cpu"
}

// Release is a no-op: the CPU kernel set holds no resources.
func (k *Kernels) Release() {}

// Config returns the parallel configuration in use.
func (k *Kernels) Config() parallel.Config {
	return k.cfg
}

// checkOut verifies every input matches out's shape and dtype.
func checkOut(op string, out *tensor.RawTensor, inputs ...*tensor.RawTensor) error {
	if out == nil {
		return errors.Errorf("cpu.%s: output tensor is nil", op)
	}
	for _, in := range inputs {
		if in == nil {
			return errors.Errorf("cpu.%s: input tensor is nil", op)
		}
		if !in.Shape().Equal(out.Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch, "cpu.%s: %s vs %s", op, in.Shape(), out.Shape())
		}
		if in.DType() != out.DType() {
			return errors.Wrapf(tensor.ErrUnsupportedDType, "cpu.%s: mixed dtypes %s and %s", op, in.DType(), out.DType())
		}
	}
	return nil
}
