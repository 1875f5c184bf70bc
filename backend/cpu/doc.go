// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host executor for element-wise kernels.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Block-partitioned launches over any integer index width
//   - Every numeric element type
//
// Kernels that panic (an integer division by zero, a buffer shorter than the
// element count) fault the stream they were launched on instead of crashing
// the process.
package cpu
