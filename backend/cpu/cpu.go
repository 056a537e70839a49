// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/autograph/backend"
	internalcpu "github.com/born-ml/autograph/internal/backend/cpu"
	"github.com/born-ml/autograph/internal/parallel"
)

// Kernels is the CPU accelerator kernel set.
type Kernels = internalcpu.Kernels

// Compile-time check that Kernels implements backend.Kernels.
var _ backend.Kernels = (*Kernels)(nil)

// New creates a kernel set using workers goroutines, each handling at least
// minChunk elements.
func New(workers, minChunk int) *Kernels {
	return internalcpu.New(workers, minChunk)
}

// NewDefault creates a kernel set sized to the machine's logical cores.
func NewDefault() *Kernels {
	cfg := parallel.DefaultConfig()
	return internalcpu.New(cfg.NumWorkers, cfg.MinChunkSize)
}
