// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides element-wise transforms over numeric buffers.
//
// # Overview
//
// Two primitives apply a per-element function across buffers:
//   - Map: out[i] = f(in[i])
//   - Zip: out[i] = f(in1[i], in2[i])
//
// and a catalog of arithmetic operations is built on them: ScalarAdd,
// ScalarMultiply, EltwiseAdd, EltwiseSub, EltwiseMultiply, EltwiseDivide and
// EltwiseDivideCheckZero.
//
// # Basic Usage
//
//	s := cpu.New().NewStream()
//	defer s.Close()
//
//	in1 := []float32{1, 2, 3, 4}
//	in2 := []float32{0, 1, 2, 0}
//	out := make([]float32, 4)
//	linalg.EltwiseDivideCheckZero(out, in1, in2, int32(4), s)
//	if err := s.Synchronize(); err != nil {
//	    log.Fatal(err)
//	}
//	// out == [0 2 1.5 0]
//
// Every call only enqueues work; read out after the stream is synchronized.
// The element type and the index width are type parameters; the index width
// bounds how many elements one call can address.
package linalg

import (
	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/linalg"
	"github.com/born-ml/eltwise/stream"
)

// Number is the constraint on buffer element types.
type Number = dtype.Number

// Index is the constraint on the integer width used to count elements.
type Index = dtype.Index

// DefaultIndex is the 32-bit signed index width callers use by default.
type DefaultIndex = dtype.DefaultIndex

// UnaryFunc is a pure per-element transform of one value.
type UnaryFunc[T Number] = linalg.UnaryFunc[T]

// BinaryFunc is a pure per-element transform of two values.
type BinaryFunc[T Number] = linalg.BinaryFunc[T]

// TernaryFunc is a pure per-element transform of three values.
type TernaryFunc[T Number] = linalg.TernaryFunc[T]

// IndexFunc produces the value for an element from its index.
type IndexFunc[T Number, I Index] = linalg.IndexFunc[T, I]

// UnaryFn adapts a plain function to UnaryFunc.
type UnaryFn[T Number] = linalg.UnaryFn[T]

// BinaryFn adapts a plain function to BinaryFunc.
type BinaryFn[T Number] = linalg.BinaryFn[T]

// TernaryFn adapts a plain function to TernaryFunc.
type TernaryFn[T Number] = linalg.TernaryFn[T]

// IndexFn adapts a plain function to IndexFunc.
type IndexFn[T Number, I Index] = linalg.IndexFn[T, I]

// Map enqueues out[i] = f(in[i]) for every i in [0, n) on s.
func Map[T Number, I Index](out, in []T, n I, f UnaryFunc[T], s *stream.Stream) {
	linalg.Map(out, in, n, f, s)
}

// Zip enqueues out[i] = f(in1[i], in2[i]) for every i in [0, n) on s.
func Zip[T Number, I Index](out, in1, in2 []T, n I, f BinaryFunc[T], s *stream.Stream) {
	linalg.Zip(out, in1, in2, n, f, s)
}

// Zip3 enqueues out[i] = f(in1[i], in2[i], in3[i]) for every i in [0, n) on s.
func Zip3[T Number, I Index](out, in1, in2, in3 []T, n I, f TernaryFunc[T], s *stream.Stream) {
	linalg.Zip3(out, in1, in2, in3, n, f, s)
}

// Generate enqueues out[i] = f(i) for every i in [0, n) on s.
func Generate[T Number, I Index](out []T, n I, f IndexFunc[T, I], s *stream.Stream) {
	linalg.Generate(out, n, f, s)
}

// ScalarAdd enqueues out[i] = in[i] + scalar.
func ScalarAdd[T Number, I Index](out, in []T, scalar T, n I, s *stream.Stream) {
	linalg.ScalarAdd(out, in, scalar, n, s)
}

// ScalarMultiply enqueues out[i] = in[i] * scalar.
func ScalarMultiply[T Number, I Index](out, in []T, scalar T, n I, s *stream.Stream) {
	linalg.ScalarMultiply(out, in, scalar, n, s)
}

// ScalarSubtract enqueues out[i] = in[i] - scalar.
func ScalarSubtract[T Number, I Index](out, in []T, scalar T, n I, s *stream.Stream) {
	linalg.ScalarSubtract(out, in, scalar, n, s)
}

// ScalarDivide enqueues out[i] = in[i] / scalar.
func ScalarDivide[T Number, I Index](out, in []T, scalar T, n I, s *stream.Stream) {
	linalg.ScalarDivide(out, in, scalar, n, s)
}

// EltwiseAdd enqueues out[i] = in1[i] + in2[i].
func EltwiseAdd[T Number, I Index](out, in1, in2 []T, n I, s *stream.Stream) {
	linalg.EltwiseAdd(out, in1, in2, n, s)
}

// EltwiseSub enqueues out[i] = in1[i] - in2[i].
func EltwiseSub[T Number, I Index](out, in1, in2 []T, n I, s *stream.Stream) {
	linalg.EltwiseSub(out, in1, in2, n, s)
}

// EltwiseMultiply enqueues out[i] = in1[i] * in2[i].
func EltwiseMultiply[T Number, I Index](out, in1, in2 []T, n I, s *stream.Stream) {
	linalg.EltwiseMultiply(out, in1, in2, n, s)
}

// EltwiseDivide enqueues out[i] = in1[i] / in2[i] with native division.
// A float zero divisor yields ±Inf or NaN on every backend; an integer zero
// divisor faults the stream.
func EltwiseDivide[T Number, I Index](out, in1, in2 []T, n I, s *stream.Stream) {
	linalg.EltwiseDivide(out, in1, in2, n, s)
}

// EltwiseDivideCheckZero enqueues out[i] = in1[i] / in2[i], or zero where in2[i] is zero.
func EltwiseDivideCheckZero[T Number, I Index](out, in1, in2 []T, n I, s *stream.Stream) {
	linalg.EltwiseDivideCheckZero(out, in1, in2, n, s)
}
