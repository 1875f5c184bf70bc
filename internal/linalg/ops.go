// Package linalg implements element-wise transforms over numeric buffers.
//
// Every operation enqueues one kernel on the caller's stream and returns
// without waiting. Results are visible once the stream is synchronized; any
// failure is reported by the stream, never by these functions.
package linalg

import (
	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/stream"
)

// ScalarAdd enqueues out[i] = in[i] + scalar.
func ScalarAdd[T dtype.Number, I dtype.Index](out, in []T, scalar T, n I, s *stream.Stream) {
	Map(out, in, n, AddScalar[T]{S: scalar}, s)
}

// ScalarMultiply enqueues out[i] = in[i] * scalar.
func ScalarMultiply[T dtype.Number, I dtype.Index](out, in []T, scalar T, n I, s *stream.Stream) {
	Map(out, in, n, MulScalar[T]{S: scalar}, s)
}

// ScalarSubtract enqueues out[i] = in[i] - scalar.
func ScalarSubtract[T dtype.Number, I dtype.Index](out, in []T, scalar T, n I, s *stream.Stream) {
	// x + (-s) equals x - s for floats and, modulo wraparound, for integers.
	Map(out, in, n, AddScalar[T]{S: -scalar}, s)
}

// ScalarDivide enqueues out[i] = in[i] / scalar.
func ScalarDivide[T dtype.Number, I dtype.Index](out, in []T, scalar T, n I, s *stream.Stream) {
	Map(out, in, n, DivScalar[T]{S: scalar}, s)
}

// EltwiseAdd enqueues out[i] = in1[i] + in2[i].
func EltwiseAdd[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, s *stream.Stream) {
	Zip(out, in1, in2, n, Add[T]{}, s)
}

// EltwiseSub enqueues out[i] = in1[i] - in2[i].
func EltwiseSub[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, s *stream.Stream) {
	Zip(out, in1, in2, n, Sub[T]{}, s)
}

// EltwiseMultiply enqueues out[i] = in1[i] * in2[i].
func EltwiseMultiply[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, s *stream.Stream) {
	Zip(out, in1, in2, n, Mul[T]{}, s)
}

// EltwiseDivide enqueues out[i] = in1[i] / in2[i].
//
// Zero divisors are not special-cased. Float types produce ±Inf or NaN on
// every executor; accelerators keep this op on the host because shader
// division by zero is indeterminate. For integer types a zero divisor is a
// precondition violation: the kernel panics and the stream faults.
func EltwiseDivide[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, s *stream.Stream) {
	Zip(out, in1, in2, n, Div[T]{}, s)
}

// EltwiseDivideCheckZero enqueues out[i] = in1[i] / in2[i], writing zero
// wherever in2[i] is zero.
func EltwiseDivideCheckZero[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, s *stream.Stream) {
	Zip(out, in1, in2, n, DivCheckZero[T]{}, s)
}
