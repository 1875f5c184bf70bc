package linalg

import (
	"context"
	"math"

	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// Zip enqueues out[i] = f(in1[i], in2[i]) for every i in [0, n) on s.
//
// Any of out, in1 and in2 may alias each other: every index reads its inputs
// before writing its own output and touches no other index.
func Zip[T dtype.Number, I dtype.Index](out, in1, in2 []T, n I, f BinaryFunc[T], s *stream.Stream) {
	if n <= 0 {
		return
	}
	s.Launch(&zipKernel[T, I]{out: out, in1: in1, in2: in2, n: n, f: f})
}

// Zip3 enqueues out[i] = f(in1[i], in2[i], in3[i]) for every i in [0, n) on s.
func Zip3[T dtype.Number, I dtype.Index](out, in1, in2, in3 []T, n I, f TernaryFunc[T], s *stream.Stream) {
	if n <= 0 {
		return
	}
	s.Launch(&zip3Kernel[T, I]{out: out, in1: in1, in2: in2, in3: in3, n: n, f: f})
}

type zipKernel[T dtype.Number, I dtype.Index] struct {
	out, in1, in2 []T
	n             I
	f             BinaryFunc[T]
}

func (k *zipKernel[T, I]) Name() string {
	return kernelName("zip", k.f)
}

func (k *zipKernel[T, I]) Host(ctx context.Context, cfg parallel.Config) error {
	out, in1, in2, f := k.out, k.in1, k.in2, k.f
	return parallel.Launch(ctx, k.n, cfg, func(lo, hi I) {
		for i := lo; i < hi; i++ {
			out[i] = f.Apply(in1[i], in2[i])
		}
	})
}

func (k *zipKernel[T, I]) Offload() (stream.Dispatch, bool) {
	op, ok := k.f.(namedOp)
	if !ok || dtype.Of[T]() != dtype.Float32 || uint64(k.n) > math.MaxUint32 {
		return stream.Dispatch{}, false
	}
	out := any(k.out).([]float32)
	in1 := any(k.in1).([]float32)
	in2 := any(k.in2).([]float32)

	return stream.Dispatch{
		Op:     op.Op(),
		N:      uint32(k.n),
		Out:    out[:k.n],
		Inputs: [][]float32{in1[:k.n], in2[:k.n]},
	}, true
}

type zip3Kernel[T dtype.Number, I dtype.Index] struct {
	out, in1, in2, in3 []T
	n                  I
	f                  TernaryFunc[T]
}

func (k *zip3Kernel[T, I]) Name() string {
	return "zip3"
}

func (k *zip3Kernel[T, I]) Host(ctx context.Context, cfg parallel.Config) error {
	out, in1, in2, in3, f := k.out, k.in1, k.in2, k.in3, k.f
	return parallel.Launch(ctx, k.n, cfg, func(lo, hi I) {
		for i := lo; i < hi; i++ {
			out[i] = f.Apply(in1[i], in2[i], in3[i])
		}
	})
}
