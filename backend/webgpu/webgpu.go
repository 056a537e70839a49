// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU accelerator kernels.
//
// The kernels run WGSL compute shaders through go-webgpu. They are built on
// Windows; on other platforms New fails and IsAvailable reports false.
// Only float32 tensors are supported.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//	    sel := backend.WithKernels(gpu)
//	}
package webgpu

import (
	"github.com/born-ml/autograph/backend"
	internalwebgpu "github.com/born-ml/autograph/internal/backend/webgpu"
)

// Kernels is the WebGPU accelerator kernel set.
type Kernels = internalwebgpu.Kernels

// Compile-time check that Kernels implements backend.Kernels.
var _ backend.Kernels = (*Kernels)(nil)

// New initializes a WebGPU device. Call Release when done.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Kernels, error) {
	return internalwebgpu.New()
}

// IsAvailable checks whether a WebGPU adapter can be obtained, for graceful
// fallback to the CPU kernels or the primary path.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
