//go:build !windows

package webgpu

import (
	"context"

	"github.com/born-ml/eltwise/internal/stream"
)

// Backend is unavailable on this platform; New always fails.
type Backend struct{}

// Compile-time check that Backend implements stream.Executor.
var _ stream.Executor = (*Backend)(nil)

// New returns ErrUnavailable.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// NewWithFallback returns ErrUnavailable.
func NewWithFallback(stream.Executor) (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false.
func IsAvailable() bool {
	return false
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// NewStream creates a stream bound to this backend.
func (b *Backend) NewStream() *stream.Stream {
	return stream.New(b)
}

// Execute returns ErrUnavailable.
func (b *Backend) Execute(context.Context, stream.Kernel) error {
	return ErrUnavailable
}

// Release is a no-op.
func (b *Backend) Release() {}
