// Package backend selects where operators execute their forward computation.
//
// Every operator has a primary implementation built from the element-wise
// primitives in internal/tensor. Some also offer an accelerator path that
// delegates to a Kernels implementation (WebGPU shaders or the multi-core CPU
// kernel set). Which accelerator, if any, is present is resolved once per
// process (see Default) and consulted by value afterwards.
package backend

import (
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
)

// Kind enumerates the execution paths an operator can be asked to use.
type Kind int

const (
	// Primary computes with the portable tensor primitives. Always available.
	Primary Kind = iota

	// Accelerator delegates to the resolved accelerator Kernels.
	Accelerator
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Accelerator:
		return "accelerator"
	default:
		return "unknown"
	}
}

// ErrNoAccelerator is returned when the accelerator path is requested but the
// process has no accelerator Kernels.
var ErrNoAccelerator = errors.New("no accelerator available")

// Kernels is the accelerator kernel set. Each kernel writes its result into a
// caller-allocated out tensor of the input's shape and dtype.
type Kernels interface {
	// Name identifies the implementation, e.g. "cpu" or "webgpu".
	Name() string

	// Relu computes out = max(in, 0).
	Relu(in, out *tensor.RawTensor) error

	// ReluGradient computes out = grad where in > 0, else 0.
	ReluGradient(in, grad, out *tensor.RawTensor) error

	// Softmax computes the softmax of in over its last axis.
	Softmax(in, out *tensor.RawTensor) error

	// Release frees device resources held by the kernel set.
	Release()
}

// Selector is passed to every Compute call. The zero value selects Primary.
type Selector struct {
	Kind    Kind
	Kernels Kernels
}

// PrimarySelector returns the selector for the primary path.
func PrimarySelector() Selector {
	return Selector{Kind: Primary}
}

// WithKernels returns an accelerator selector bound to k.
func WithKernels(k Kernels) Selector {
	return Selector{Kind: Accelerator, Kernels: k}
}

// Select returns a selector for kind. Accelerator selectors are bound to the
// process-wide capability; when none was resolved, the selector carries no
// Kernels and operators report ErrNoAccelerator.
func Select(kind Kind) Selector {
	if kind == Primary {
		return PrimarySelector()
	}
	return Selector{Kind: Accelerator, Kernels: Default().Kernels}
}

// Accelerated reports whether the accelerator path was requested.
func (s Selector) Accelerated() bool {
	return s.Kind == Accelerator
}

// AcceleratorKernels returns the bound kernels, or ErrNoAccelerator.
func (s Selector) AcceleratorKernels() (Kernels, error) {
	if s.Kernels == nil {
		return nil, errors.WithStack(ErrNoAccelerator)
	}
	return s.Kernels, nil
}

// String returns e.g. "primary" or "accelerator(webgpu)".
func (s Selector) String() string {
	if s.Kind == Accelerator && s.Kernels != nil {
		return s.Kind.String() + "(" + s.Kernels.Name() + ")"
	}
	return s.Kind.String()
}
