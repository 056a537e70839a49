//go:build !windows

// Package webgpu implements the accelerator kernel set with WGSL compute shaders.
// The WebGPU bindings are only built on Windows; elsewhere the kernel set
// reports itself unavailable and the primary backend is used.
package webgpu

import (
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
)

var errUnsupportedPlatform = errors.New("webgpu: not supported on this platform")

// Kernels is never constructed on this platform.
type Kernels struct{}

// New always fails on this platform.
func New() (*Kernels, error) {
	return nil, errors.WithStack(errUnsupportedPlatform)
}

// IsAvailable always reports false on this platform.
func IsAvailable() bool {
	return false
}

// Name returns "webgpu".
func (k *Kernels) Name() string {
	return "webgpu"
}

// Release is a no-op.
func (k *Kernels) Release() {}

// Relu fails: WebGPU is unsupported here.
func (k *Kernels) Relu(_, _ *tensor.RawTensor) error {
	return errors.WithStack(errUnsupportedPlatform)
}

// ReluGradient fails: WebGPU is unsupported here.
func (k *Kernels) ReluGradient(_, _, _ *tensor.RawTensor) error {
	return errors.WithStack(errUnsupportedPlatform)
}

// Softmax fails: WebGPU is unsupported here.
func (k *Kernels) Softmax(_, _ *tensor.RawTensor) error {
	return errors.WithStack(errUnsupportedPlatform)
}
