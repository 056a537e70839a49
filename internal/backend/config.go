package backend

import (
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/autograph/internal/parallel"
	"github.com/pkg/errors"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAccelerator = "AUTOGRAPH_ACCELERATOR"
	EnvWorkers     = "AUTOGRAPH_WORKERS"
	EnvMinChunk    = "AUTOGRAPH_MIN_CHUNK"
)

// Accelerator choices.
const (
	AcceleratorAuto   = "auto"
	AcceleratorWebGPU = "webgpu"
	AcceleratorCPU    = "cpu"
	AcceleratorNone   = "none"
)

// Config controls capability resolution.
type Config struct {
	// Accelerator is one of "auto", "webgpu", "cpu" or "none".
	// "auto" picks WebGPU when an adapter is present and no accelerator otherwise.
	Accelerator string

	// Workers and MinChunk size the multi-core CPU kernel set.
	Workers  int
	MinChunk int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	p := parallel.DefaultConfig()
	return Config{
		Accelerator: AcceleratorAuto,
		Workers:     p.NumWorkers,
		MinChunk:    p.MinChunkSize,
	}
}

// Validate checks the accelerator name and sizes.
func (c Config) Validate() error {
	switch c.Accelerator {
	case AcceleratorAuto, AcceleratorWebGPU, AcceleratorCPU, AcceleratorNone:
	default:
		return errors.Errorf("unknown accelerator %q (want auto, webgpu, cpu or none)", c.Accelerator)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.MinChunk < 1 {
		return errors.Errorf("min chunk must be >= 1, got %d", c.MinChunk)
	}
	return nil
}

// ConfigFromEnv overlays the AUTOGRAPH_* environment variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvAccelerator); ok && v != "" {
		cfg.Accelerator = strings.ToLower(strings.TrimSpace(v))
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{{EnvWorkers, &cfg.Workers}, {EnvMinChunk, &cfg.MinChunk}} {
		v, ok := lookup(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", e.name)
		}
		*e.dst = n
	}
	return cfg, cfg.Validate()
}
