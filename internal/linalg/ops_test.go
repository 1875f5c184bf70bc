package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/eltwise/internal/backend/cpu"
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// newTestStream returns a stream over a small parallel CPU backend so that
// even short buffers are split across several blocks.
func newTestStream(t *testing.T) *stream.Stream {
	t.Helper()
	backend := cpu.NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8})
	s := backend.NewStream()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func randomFloat32(r *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.Float32()*200 - 100
	}
	return out
}

func TestBinaryOps_MatchReference(t *testing.T) {
	const n = 1000
	r := rand.New(rand.NewSource(1))
	a := randomFloat32(r, n)
	b := randomFloat32(r, n)

	tests := []struct {
		name string
		op   func(out, in1, in2 []float32, n int32, s *stream.Stream)
		ref  func(a, b float32) float32
	}{
		{"EltwiseAdd", EltwiseAdd[float32, int32], func(a, b float32) float32 { return a + b }},
		{"EltwiseSub", EltwiseSub[float32, int32], func(a, b float32) float32 { return a - b }},
		{"EltwiseMultiply", EltwiseMultiply[float32, int32], func(a, b float32) float32 { return a * b }},
		{"EltwiseDivide", EltwiseDivide[float32, int32], func(a, b float32) float32 { return a / b }},
		{"EltwiseDivideCheckZero", EltwiseDivideCheckZero[float32, int32], func(a, b float32) float32 {
			if b == 0 {
				return 0
			}
			return a / b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStream(t)
			out := make([]float32, n)

			tt.op(out, a, b, n, s)
			require.NoError(t, s.Synchronize())

			for i := range out {
				if out[i] != tt.ref(a[i], b[i]) {
					t.Fatalf("index %d: got %v, want %v", i, out[i], tt.ref(a[i], b[i]))
				}
			}
		})
	}
}

func TestEltwiseAdd_Idempotent(t *testing.T) {
	s := newTestStream(t)
	r := rand.New(rand.NewSource(2))
	a := randomFloat32(r, 513)
	b := randomFloat32(r, 513)

	first := make([]float32, len(a))
	second := make([]float32, len(a))
	EltwiseAdd(first, a, b, int32(len(a)), s)
	EltwiseAdd(second, a, b, int32(len(a)), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, first, second)
}

func TestZeroLength_IsNoop(t *testing.T) {
	s := newTestStream(t)
	out := []float32{7, 7, 7}
	a := []float32{1, 2, 3}

	EltwiseAdd(out, a, a, int32(0), s)
	EltwiseDivide(out, a, a, int64(0), s)
	ScalarMultiply(out, a, 5, uint32(0), s)
	// Nothing is read, so nil buffers are fine.
	EltwiseSub[float32](nil, nil, nil, 0, s)

	assert.True(t, s.Query(), "zero-length calls must not enqueue work")
	require.NoError(t, s.Synchronize())
	assert.Equal(t, []float32{7, 7, 7}, out)
}

func TestEltwiseMultiply_FullAliasing(t *testing.T) {
	s := newTestStream(t)
	a := make([]float64, 300)
	old := make([]float64, len(a))
	for i := range a {
		a[i] = float64(i) - 150.5
		old[i] = a[i]
	}

	EltwiseMultiply(a, a, a, int32(len(a)), s)
	require.NoError(t, s.Synchronize())

	for i := range a {
		assert.Equal(t, old[i]*old[i], a[i], "index %d", i)
	}
}

func TestDivideCheckZero_Scenario(t *testing.T) {
	s := newTestStream(t)
	in1 := []float32{1, 2, 3, 4}
	in2 := []float32{0, 1, 2, 0}

	guarded := make([]float32, 4)
	native := make([]float32, 4)
	EltwiseDivideCheckZero(guarded, in1, in2, int32(4), s)
	EltwiseDivide(native, in1, in2, int32(4), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []float32{0, 2, 1.5, 0}, guarded)

	for i := range in2 {
		if in2[i] == 0 {
			assert.True(t, math.IsInf(float64(native[i]), 1), "native divide at %d: %v", i, native[i])
			assert.NotEqual(t, native[i], guarded[i], "ops must diverge at zero divisor %d", i)
		} else {
			assert.Equal(t, native[i], guarded[i], "ops must agree at %d", i)
		}
	}
}

func TestDivideCheckZero_ZeroOverZero(t *testing.T) {
	s := newTestStream(t)
	in1 := []float64{0, math.Inf(1), -3}
	in2 := []float64{0, 0, math.Copysign(0, -1)}

	guarded := make([]float64, 3)
	native := make([]float64, 3)
	EltwiseDivideCheckZero(guarded, in1, in2, 3, s)
	EltwiseDivide(native, in1, in2, 3, s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []float64{0, 0, 0}, guarded)
	assert.True(t, math.IsNaN(native[0]))
	assert.True(t, math.IsInf(native[1], 1))
	assert.True(t, math.IsInf(native[2], 1))
}

func TestDivideCheckZero_Integers(t *testing.T) {
	s := newTestStream(t)
	in1 := []int32{10, 9, -8, 7}
	in2 := []int32{0, 3, 2, 0}
	out := make([]int32, 4)

	EltwiseDivideCheckZero(out, in1, in2, int32(4), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []int32{0, 3, -4, 0}, out)
}

func TestEltwiseDivide_IntegerZeroFaultsStream(t *testing.T) {
	s := newTestStream(t)
	in1 := []int64{1, 2, 3}
	in2 := []int64{1, 0, 1}
	out := make([]int64, 3)

	EltwiseDivide(out, in1, in2, int64(3), s)
	err := s.Synchronize()

	require.Error(t, err)
	assert.ErrorIs(t, err, parallel.ErrKernelPanic)

	var fault *stream.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, stream.OpDiv, fault.Kernel)
}

func TestScalarOps(t *testing.T) {
	s := newTestStream(t)
	in := make([]int32, 100)
	for i := range in {
		in[i] = int32(i*3 - 50)
	}

	added := make([]int32, len(in))
	scaled := make([]int32, len(in))
	subbed := make([]int32, len(in))
	divided := make([]int32, len(in))
	ScalarAdd(added, in, 7, int32(len(in)), s)
	ScalarMultiply(scaled, in, -2, int32(len(in)), s)
	ScalarSubtract(subbed, in, 7, int32(len(in)), s)
	ScalarDivide(divided, in, 4, int32(len(in)), s)
	require.NoError(t, s.Synchronize())

	for i, x := range in {
		assert.Equal(t, x+7, added[i])
		assert.Equal(t, x*-2, scaled[i])
		assert.Equal(t, x-7, subbed[i])
		assert.Equal(t, x/4, divided[i])
	}
}

func TestScalarSubtract_Unsigned(t *testing.T) {
	s := newTestStream(t)
	in := []uint8{10, 3, 0}
	out := make([]uint8, 3)

	ScalarSubtract(out, in, 5, 3, s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []uint8{5, 254, 251}, out)
}

func TestStreamOrdering_ChainedOps(t *testing.T) {
	s := newTestStream(t)
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}
	b := make([]float32, len(a))
	n := int32(len(a))

	// b = (a + 1) * 2, then b = b - a; each step reads the previous result.
	ScalarAdd(b, a, 1, n, s)
	ScalarMultiply(b, b, 2, n, s)
	EltwiseSub(b, b, a, n, s)
	require.NoError(t, s.Synchronize())

	for i := range a {
		assert.Equal(t, a[i]+2, b[i])
	}
}

func TestIndexWidths(t *testing.T) {
	s := newTestStream(t)
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{5, 4, 3, 2, 1}
	want := []float32{6, 6, 6, 6, 6}

	outs := make([][]float32, 4)
	for i := range outs {
		outs[i] = make([]float32, len(a))
	}
	EltwiseAdd(outs[0], a, b, int32(5), s)
	EltwiseAdd(outs[1], a, b, int64(5), s)
	EltwiseAdd(outs[2], a, b, uint32(5), s)
	EltwiseAdd(outs[3], a, b, uint64(5), s)
	require.NoError(t, s.Synchronize())

	for _, out := range outs {
		assert.Equal(t, want, out)
	}
}

func TestPrefixOnly(t *testing.T) {
	s := newTestStream(t)
	a := []float32{1, 2, 3, 4}
	out := []float32{-1, -1, -1, -1}

	ScalarMultiply(out, a, 10, int32(2), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []float32{10, 20, -1, -1}, out)
}

func TestShortBuffer_FaultsStream(t *testing.T) {
	s := newTestStream(t)
	a := []float32{1, 2}
	out := make([]float32, 2)

	EltwiseAdd(out, a, a, int32(64), s)

	err := s.Synchronize()
	require.Error(t, err)
	assert.ErrorIs(t, err, parallel.ErrKernelPanic)
}

func BenchmarkEltwiseAdd(b *testing.B) {
	backend := cpu.New()
	s := backend.NewStream()
	defer s.Close()

	n := int32(1 << 20)
	x := make([]float32, n)
	y := make([]float32, n)
	out := make([]float32, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EltwiseAdd(out, x, y, n, s)
	}
	_ = s.Synchronize()
}
