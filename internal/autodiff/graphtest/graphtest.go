// Package graphtest holds test utilities for packages that build autodiff graphs.
package graphtest

import (
	"sync"
	"testing"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Feeds maps placeholder nodes to their values.
type Feeds map[*autodiff.Node]*tensor.RawTensor

// Eval evaluates root by recursively evaluating its inputs, memoizing each
// node's value for the duration of the call. Output buffers are allocated from
// InferShape and the first input's dtype.
func Eval(root *autodiff.Node, feeds Feeds, sel backend.Selector) (*tensor.RawTensor, error) {
	memo := make(map[*autodiff.Node]*tensor.RawTensor, len(feeds))
	for n, v := range feeds {
		memo[n] = v
	}
	return eval(root, memo, sel)
}

func eval(n *autodiff.Node, memo map[*autodiff.Node]*tensor.RawTensor, sel backend.Selector) (*tensor.RawTensor, error) {
	if v, ok := memo[n]; ok {
		return v, nil
	}
	if n.NumInputs() == 0 {
		return nil, errors.Errorf("graphtest: no value fed for leaf node %q", n.Name())
	}

	inputs := make([]*tensor.RawTensor, n.NumInputs())
	for i, in := range n.Inputs() {
		v, err := eval(in, memo, sel)
		if err != nil {
			return nil, err
		}
		inputs[i] = v
	}

	shape, err := n.Op().InferShape(n, autodiff.InputShapes(inputs))
	if err != nil {
		return nil, errors.WithMessagef(err, "graphtest: inferring shape of %q", n.Name())
	}
	out, err := tensor.NewRaw(shape, inputs[0].DType(), tensor.CPU)
	if err != nil {
		return nil, err
	}
	if err := n.Op().Compute(n, inputs, out, sel); err != nil {
		return nil, errors.WithMessagef(err, "graphtest: computing %q", n.Name())
	}
	memo[n] = out
	return out, nil
}

// MustEval is Eval on the primary path, failing t on error.
func MustEval(t *testing.T, root *autodiff.Node, feeds Feeds) *tensor.RawTensor {
	t.Helper()
	v, err := Eval(root, feeds, backend.PrimarySelector())
	require.NoError(t, err)
	return v
}

// Float32 builds a float32 tensor, panicking on a data/shape mismatch.
func Float32(data []float32, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromFloat32(data, tensor.Shape(shape)))
}

// Float64 builds a float64 tensor, panicking on a data/shape mismatch.
func Float64(data []float64, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromFloat64(data, tensor.Shape(shape)))
}

// RecordingKernels wraps a Kernels and records which kernels were invoked.
type RecordingKernels struct {
	backend.Kernels

	mu    sync.Mutex
	calls []string
}

// NewRecordingKernels wraps inner.
func NewRecordingKernels(inner backend.Kernels) *RecordingKernels {
	return &RecordingKernels{Kernels: inner}
}

func (r *RecordingKernels) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

// Calls returns the kernel names invoked so far, in order.
func (r *RecordingKernels) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Relu records and delegates.
func (r *RecordingKernels) Relu(in, out *tensor.RawTensor) error {
	r.record("Relu")
	return r.Kernels.Relu(in, out)
}

// ReluGradient records and delegates.
func (r *RecordingKernels) ReluGradient(in, grad, out *tensor.RawTensor) error {
	r.record("ReluGradient")
	return r.Kernels.ReluGradient(in, grad, out)
}

// Softmax records and delegates.
func (r *RecordingKernels) Softmax(in, out *tensor.RawTensor) error {
	r.record("Softmax")
	return r.Kernels.Softmax(in, out)
}
