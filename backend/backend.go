// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend chooses where operators run their forward computation.
//
// Every operator has a primary implementation that always works. Relu,
// ReluGradient and Softmax can also run on an accelerator: WebGPU compute
// shaders where a GPU adapter is present, or the multi-core CPU kernel set.
// The accelerator is resolved once per process from the environment:
//
//	AUTOGRAPH_ACCELERATOR  auto (default) | webgpu | cpu | none
//	AUTOGRAPH_WORKERS      CPU kernel goroutines (default: logical cores)
//	AUTOGRAPH_MIN_CHUNK    minimum elements per goroutine (default: 1024)
//
// Example:
//
//	sel := backend.Select(backend.Accelerator)
//	err := nn.Relu.Compute(node, inputs, out, sel)
//	if errors.Is(err, backend.ErrNoAccelerator) {
//	    err = nn.Relu.Compute(node, inputs, out, backend.Select(backend.Primary))
//	}
package backend

import (
	"github.com/born-ml/autograph/internal/backend"
)

// Kind selects the primary or accelerator execution path.
type Kind = backend.Kind

// Execution paths.
const (
	Primary     Kind = backend.Primary
	Accelerator Kind = backend.Accelerator
)

// Selector is passed to every Compute call. The zero value selects Primary.
type Selector = backend.Selector

// Kernels is the accelerator kernel set.
type Kernels = backend.Kernels

// Config controls accelerator resolution.
type Config = backend.Config

// Capability is the outcome of accelerator resolution.
type Capability = backend.Capability

// ErrNoAccelerator is returned when the accelerator path is requested but no
// accelerator was resolved.
var ErrNoAccelerator = backend.ErrNoAccelerator

// Select returns a selector for kind bound to the process-wide capability.
func Select(kind Kind) Selector {
	return backend.Select(kind)
}

// WithKernels returns an accelerator selector bound to k.
func WithKernels(k Kernels) Selector {
	return backend.WithKernels(k)
}

// Default returns the process-wide capability, resolving it on first use.
func Default() Capability {
	return backend.Default()
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return backend.DefaultConfig()
}

// ConfigFromEnv reads the AUTOGRAPH_* environment variables.
func ConfigFromEnv() (Config, error) {
	return backend.ConfigFromEnv()
}

// Resolve builds a capability from cfg. Call Release on it when done.
func Resolve(cfg Config) Capability {
	return backend.Resolve(cfg)
}
