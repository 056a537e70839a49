package backend

import (
	"sync"

	"github.com/born-ml/autograph/internal/backend/cpu"
	"github.com/born-ml/autograph/internal/backend/webgpu"
	"k8s.io/klog/v2"
)

// Compile-time checks that the accelerators implement Kernels.
var (
	_ Kernels = (*cpu.Kernels)(nil)
	_ Kernels = (*webgpu.Kernels)(nil)
)

// Capability is the outcome of accelerator resolution.
// Kernels is nil when no accelerator is present.
type Capability struct {
	Kernels Kernels
}

// Available reports whether an accelerator was resolved.
func (c Capability) Available() bool {
	return c.Kernels != nil
}

// Name returns the accelerator name, or "none".
func (c Capability) Name() string {
	if c.Kernels == nil {
		return AcceleratorNone
	}
	return c.Kernels.Name()
}

// Release frees the accelerator's resources, if any.
func (c Capability) Release() {
	if c.Kernels != nil {
		c.Kernels.Release()
	}
}

// Resolve probes for the accelerator named by cfg. A missing or failing
// accelerator is not an error: the capability is simply absent and the
// primary path keeps working.
func Resolve(cfg Config) Capability {
	switch cfg.Accelerator {
	case AcceleratorNone:
		return Capability{}

	case AcceleratorCPU:
		k := cpu.New(cfg.Workers, cfg.MinChunk)
		klog.Infof("accelerator: %s (%d workers)", k.Name(), cfg.Workers)
		return Capability{Kernels: k}

	case AcceleratorWebGPU, AcceleratorAuto:
		if cfg.Accelerator == AcceleratorAuto && !webgpu.IsAvailable() {
			klog.V(1).Infof("accelerator: no WebGPU adapter found, using primary backend only")
			return Capability{}
		}
		k, err := webgpu.New()
		if err != nil {
			if cfg.Accelerator == AcceleratorWebGPU {
				klog.Warningf("accelerator: webgpu requested but unavailable: %v", err)
			} else {
				klog.V(1).Infof("accelerator: webgpu probe failed: %v", err)
			}
			return Capability{}
		}
		klog.Infof("accelerator: %s", k.Name())
		return Capability{Kernels: k}

	default:
		klog.Warningf("accelerator: unknown choice %q, using primary backend only", cfg.Accelerator)
		return Capability{}
	}
}

var (
	defaultOnce sync.Once
	defaultCap  Capability
)

// Default returns the process-wide capability, resolving it from the
// environment on first use. Later calls return the same value.
func Default() Capability {
	defaultOnce.Do(func() {
		cfg, err := ConfigFromEnv()
		if err != nil {
			klog.Warningf("accelerator: invalid configuration, using defaults: %v", err)
			cfg = DefaultConfig()
		}
		defaultCap = Resolve(cfg)
	})
	return defaultCap
}
