package webgpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/eltwise/internal/linalg"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	if err != nil {
		assert.ErrorIs(t, err, ErrUnavailable)
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func TestBackend_OffloadedOps(t *testing.T) {
	b := newTestBackend(t)
	s := b.NewStream()
	defer s.Close()

	in1 := []float32{1, 2, 3, 4}
	in2 := []float32{0, 1, 2, 0}
	guarded := make([]float32, 4)
	sum := make([]float32, 4)
	scaled := make([]float32, 4)

	linalg.EltwiseDivideCheckZero(guarded, in1, in2, int32(4), s)
	linalg.EltwiseAdd(sum, in1, in2, int32(4), s)
	linalg.ScalarMultiply(scaled, in1, 0.5, int32(4), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []float32{0, 2, 1.5, 0}, guarded)
	assert.Equal(t, []float32{1, 3, 5, 4}, sum)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2}, scaled)
}

func TestBackend_HostFallback(t *testing.T) {
	b := newTestBackend(t)
	s := b.NewStream()
	defer s.Close()

	a := []float64{1, 2, 3}
	out := make([]float64, 3)
	linalg.EltwiseMultiply(out, a, a, int32(3), s)
	require.NoError(t, s.Synchronize())

	assert.Equal(t, []float64{1, 4, 9}, out)
}

func TestBackend_DivideByZeroMatchesHost(t *testing.T) {
	b := newTestBackend(t)
	s := b.NewStream()
	defer s.Close()

	in1 := []float32{1, 2, 3, 4}
	in2 := []float32{0, 1, 2, 0}
	quot := make([]float32, 4)
	guarded := make([]float32, 4)

	linalg.EltwiseDivide(quot, in1, in2, int32(4), s)
	linalg.EltwiseDivideCheckZero(guarded, in1, in2, int32(4), s)
	require.NoError(t, s.Synchronize())

	assert.True(t, math.IsInf(float64(quot[0]), 1))
	assert.True(t, math.IsInf(float64(quot[3]), 1))
	assert.Equal(t, []float32{2, 1.5}, quot[1:3])
	assert.Equal(t, []float32{0, 2, 1.5, 0}, guarded)
}
