// Package cpu implements the host executor for element-wise kernels.
package cpu

import (
	"context"

	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// CPUBackend runs kernels on host goroutines.
type CPUBackend struct {
	cfg parallel.Config
}

// Compile-time check that CPUBackend implements stream.Executor.
var _ stream.Executor = (*CPUBackend)(nil)

// New creates a new CPU backend with the default launch configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit launch configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		cfg: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Config returns the launch configuration kernels run with.
func (cpu *CPUBackend) Config() parallel.Config {
	return cpu.cfg
}

// Execute runs k to completion across the host worker pool.
func (cpu *CPUBackend) Execute(ctx context.Context, k stream.Kernel) error {
	return k.Host(ctx, cpu.cfg)
}

// NewStream creates a stream bound to this backend.
func (cpu *CPUBackend) NewStream() *stream.Stream {
	return stream.New(cpu)
}
