package cpu

import (
	"github.com/born-ml/autograph/internal/parallel"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Relu computes out = max(in, 0).
func (k *Kernels) Relu(in, out *tensor.RawTensor) error {
	if err := checkOut("Relu", out, in); err != nil {
		return err
	}
	switch in.DType() {
	case tensor.Float32:
		reluChunks(in.AsFloat32(), out.AsFloat32(), k.cfg)
	case tensor.Float64:
		reluChunks(in.AsFloat64(), out.AsFloat64(), k.cfg)
	default:
		return errors.Wrapf(tensor.ErrUnsupportedDType, "cpu.Relu: %s", in.DType())
	}
	return nil
}

// ReluGradient computes out = grad where in > 0, else 0.
func (k *Kernels) ReluGradient(in, grad, out *tensor.RawTensor) error {
	if err := checkOut("ReluGradient", out, in, grad); err != nil {
		return err
	}
	switch in.DType() {
	case tensor.Float32:
		reluGradChunks(in.AsFloat32(), grad.AsFloat32(), out.AsFloat32(), k.cfg)
	case tensor.Float64:
		reluGradChunks(in.AsFloat64(), grad.AsFloat64(), out.AsFloat64(), k.cfg)
	default:
		return errors.Wrapf(tensor.ErrUnsupportedDType, "cpu.ReluGradient: %s", in.DType())
	}
	return nil
}

// Softmax computes the softmax of in over its last axis, one row per task.
func (k *Kernels) Softmax(in, out *tensor.RawTensor) error {
	if err := checkOut("Softmax", out, in); err != nil {
		return err
	}
	rowLen := in.Shape().LastDim()
	if rowLen == 0 || in.NumElements() == 0 {
		return nil
	}
	numRows := in.NumElements() / rowLen

	// Rows are the unit of work, so scale the chunk threshold down by row length.
	cfg := k.cfg
	cfg.MinChunkSize = max(1, cfg.MinChunkSize/rowLen)

	switch in.DType() {
	case tensor.Float32:
		softmaxChunks(in.AsFloat32(), out.AsFloat32(), rowLen, numRows, cfg)
	case tensor.Float64:
		softmaxChunks(in.AsFloat64(), out.AsFloat64(), rowLen, numRows, cfg)
	default:
		return errors.Wrapf(tensor.ErrUnsupportedDType, "cpu.Softmax: %s", in.DType())
	}
	return nil
}

func reluChunks[T constraints.Float](in, out []T, cfg parallel.Config) {
	parallel.ForChunks(len(in), func(s, e int) {
		for i := s; i < e; i++ {
			if in[i] > 0 || in[i] != in[i] {
				out[i] = in[i]
			} else {
				out[i] = 0
			}
		}
	}, cfg)
}

func reluGradChunks[T constraints.Float](in, grad, out []T, cfg parallel.Config) {
	parallel.ForChunks(len(in), func(s, e int) {
		for i := s; i < e; i++ {
			switch {
			case in[i] > 0:
				out[i] = grad[i]
			case in[i] != in[i]: // NaN
				out[i] = in[i]
			default:
				out[i] = 0
			}
		}
	}, cfg)
}

func softmaxChunks[T constraints.Float](in, out []T, rowLen, numRows int, cfg parallel.Config) {
	parallel.ForChunks(numRows, func(s, e int) {
		for r := s; r < e; r++ {
			off := r * rowLen
			tensor.SoftmaxRow(in[off:off+rowLen], out[off:off+rowLen])
		}
	}, cfg)
}
