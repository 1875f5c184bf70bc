// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/eltwise/internal/backend/cpu"
	"github.com/born-ml/eltwise/stream"
)

// Backend represents the CPU backend implementation.
//
// It runs every kernel on host goroutines, splitting each buffer into
// contiguous blocks across the worker pool.
type Backend = internalcpu.CPUBackend

// Info describes the host a Backend runs on.
type Info = internalcpu.Info

// Compile-time check that Backend implements stream.Executor.
var _ stream.Executor = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/eltwise/backend/cpu"
//	    "github.com/born-ml/eltwise/linalg"
//	)
//
//	func main() {
//	    s := cpu.New().NewStream()
//	    defer s.Close()
//	    linalg.EltwiseAdd(out, a, b, int32(len(a)), s)
//	    if err := s.Synchronize(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit launch configuration.
func NewWithConfig(cfg stream.LaunchConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
