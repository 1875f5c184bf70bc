package webgpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/eltwise/internal/stream"
)

func TestShaderFor(t *testing.T) {
	tests := []struct {
		name string
		d    stream.Dispatch
		ok   bool
		expr string
	}{
		{"add", stream.Dispatch{Op: stream.OpAdd, Inputs: make([][]float32, 2)}, true, "a[idx] + b[idx]"},
		{"divCheckZero", stream.Dispatch{Op: stream.OpDivCheckZero, Inputs: make([][]float32, 2)}, true, "b[idx] == 0.0"},
		{"scalarMul", stream.Dispatch{Op: stream.OpScalarMul, Inputs: make([][]float32, 1), HasScalar: true}, true, "params.scalar"},
		{"scalar op without scalar", stream.Dispatch{Op: stream.OpScalarAdd, Inputs: make([][]float32, 1)}, false, ""},
		{"binary op with one input", stream.Dispatch{Op: stream.OpSub, Inputs: make([][]float32, 1)}, false, ""},
		{"div stays on host", stream.Dispatch{Op: stream.OpDiv, Inputs: make([][]float32, 2)}, false, ""},
		{"unknown", stream.Dispatch{Op: "pow", Inputs: make([][]float32, 2)}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := shaderFor(tt.d)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Contains(t, code, tt.expr)
			}
		})
	}
}

func TestShaders_WorkgroupSize(t *testing.T) {
	for op, code := range shaders {
		assert.True(t, strings.Contains(code, "@workgroup_size(256)"), op)
		assert.Contains(t, code, "idx < params.size", op)
	}
	assert.Equal(t, 256, workgroupSize)
}
