// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated element-wise kernels.
//
// Cataloged float32 operations (add, sub, mul, divide-with-zero-guard,
// scalar add and scalar multiply) run as WGSL compute shaders when the buffers
// fit the default device limits. Any other kernel, such as plain division, a
// custom function or a float64 buffer, runs on the host.
// The GPU path is built on Windows; elsewhere New returns ErrUnavailable.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	s := gpu.NewStream()
//	linalg.EltwiseDivideCheckZero(out, a, b, int32(len(a)), s)
//	err = s.Synchronize()
package webgpu

import (
	internalwebgpu "github.com/born-ml/eltwise/internal/backend/webgpu"
	"github.com/born-ml/eltwise/stream"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// ErrUnavailable is returned by New when no WebGPU device can be opened.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Backend implements stream.Executor.
var _ stream.Executor = (*Backend)(nil)

// New creates a new WebGPU backend. Call Release when done to free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// NewWithFallback creates a WebGPU backend that runs non-offloadable kernels on host.
func NewWithFallback(host stream.Executor) (*Backend, error) {
	return internalwebgpu.NewWithFallback(host)
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
