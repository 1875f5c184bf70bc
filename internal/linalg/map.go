package linalg

import (
	"context"
	"math"

	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// Map enqueues out[i] = f(in[i]) for every i in [0, n) on s and returns at once.
//
// out and in must hold at least n elements and may be the same buffer.
// n <= 0 enqueues nothing. Buffers are not validated: an out-of-range access
// faults the stream rather than returning an error here.
func Map[T dtype.Number, I dtype.Index](out, in []T, n I, f UnaryFunc[T], s *stream.Stream) {
	if n <= 0 {
		return
	}
	s.Launch(&mapKernel[T, I]{out: out, in: in, n: n, f: f})
}

// Generate enqueues out[i] = f(i) for every i in [0, n) on s.
func Generate[T dtype.Number, I dtype.Index](out []T, n I, f IndexFunc[T, I], s *stream.Stream) {
	if n <= 0 {
		return
	}
	s.Launch(&generateKernel[T, I]{out: out, n: n, f: f})
}

type mapKernel[T dtype.Number, I dtype.Index] struct {
	out, in []T
	n       I
	f       UnaryFunc[T]
}

func (k *mapKernel[T, I]) Name() string {
	return kernelName("map", k.f)
}

func (k *mapKernel[T, I]) Host(ctx context.Context, cfg parallel.Config) error {
	out, in, f := k.out, k.in, k.f
	return parallel.Launch(ctx, k.n, cfg, func(lo, hi I) {
		for i := lo; i < hi; i++ {
			out[i] = f.Apply(in[i])
		}
	})
}

func (k *mapKernel[T, I]) Offload() (stream.Dispatch, bool) {
	op, ok := k.f.(namedOp)
	if !ok || dtype.Of[T]() != dtype.Float32 || uint64(k.n) > math.MaxUint32 {
		return stream.Dispatch{}, false
	}
	out := any(k.out).([]float32)
	in := any(k.in).([]float32)

	d := stream.Dispatch{
		Op:     op.Op(),
		N:      uint32(k.n),
		Out:    out[:k.n],
		Inputs: [][]float32{in[:k.n]},
	}
	if sc, ok := k.f.(scalarOp); ok {
		d.Scalar, d.HasScalar = sc.scalar().(float32), true
	}
	return d, true
}

type generateKernel[T dtype.Number, I dtype.Index] struct {
	out []T
	n   I
	f   IndexFunc[T, I]
}

func (k *generateKernel[T, I]) Name() string {
	return "generate"
}

func (k *generateKernel[T, I]) Host(ctx context.Context, cfg parallel.Config) error {
	out, f := k.out, k.f
	return parallel.Launch(ctx, k.n, cfg, func(lo, hi I) {
		for i := lo; i < hi; i++ {
			out[i] = f.Apply(i)
		}
	})
}

func kernelName(kind string, f any) string {
	if op, ok := f.(namedOp); ok {
		return op.Op()
	}
	return kind
}
