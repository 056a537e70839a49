// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the multi-core CPU accelerator kernels.
//
// # Overview
//
// The kernels split element-wise work and softmax rows across goroutines:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - Worker count detected with cpuid
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograph/backend"
//	    "github.com/born-ml/autograph/backend/cpu"
//	)
//
//	func main() {
//	    sel := backend.WithKernels(cpu.New(8, 4096))
//	    // pass sel to Compute
//	}
//
// # Thread Safety
//
// A kernel set is safe for concurrent use. It holds no mutable state.
package cpu
