// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stream provides the execution stream element-wise operations are enqueued on.
//
// A Stream is an explicit handle bound to one executor (see backend/cpu and
// backend/webgpu). Operations launched on it run asynchronously, in launch
// order. Errors are sticky: the first failing kernel faults the stream, later
// kernels are skipped, and Synchronize reports the fault.
package stream

import (
	"github.com/born-ml/eltwise/internal/parallel"
	internalstream "github.com/born-ml/eltwise/internal/stream"
)

// Stream is an in-order asynchronous work queue.
type Stream = internalstream.Stream

// Event marks a point in a stream's queue.
type Event = internalstream.Event

// Config holds optional stream settings.
type Config = internalstream.Config

// Executor runs kernels on some device.
type Executor = internalstream.Executor

// Kernel is one unit of element-wise work.
type Kernel = internalstream.Kernel

// Fault is the sticky error a stream enters when a kernel fails.
type Fault = internalstream.Fault

// LaunchConfig controls how a host executor splits a kernel across goroutines.
type LaunchConfig = parallel.Config

// ErrClosed is recorded when work is launched on a closed stream.
var ErrClosed = internalstream.ErrClosed

// ErrKernelPanic is wrapped by faults caused by a panicking kernel.
var ErrKernelPanic = parallel.ErrKernelPanic

// New creates a stream that runs kernels on exec.
func New(exec Executor) *Stream {
	return internalstream.New(exec)
}

// NewWithConfig creates a stream with explicit settings.
func NewWithConfig(exec Executor, cfg Config) *Stream {
	return internalstream.NewWithConfig(exec, cfg)
}

// DefaultLaunchConfig returns the host launch defaults for this machine.
func DefaultLaunchConfig() LaunchConfig {
	return parallel.DefaultConfig()
}
