// Package webgpu implements the WebGPU executor for element-wise kernels.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"errors"

	"github.com/born-ml/eltwise/internal/stream"
)

// ErrUnavailable is returned by New when no WebGPU device can be opened.
var ErrUnavailable = errors.New("webgpu: not available")

// workgroupSize is the number of invocations per workgroup in every shader.
const workgroupSize = 256

// binaryShader builds a shader computing result[idx] = expr over a and b.
func binaryShader(expr string) string {
	return `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = ` + expr + `;
    }
}
`
}

// scalarShader builds a shader computing result[idx] = expr over input and params.scalar.
func scalarShader(expr string) string {
	return `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    scalar: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = ` + expr + `;
    }
}
`
}

// shaders maps each offloadable op to its WGSL source.
// Plain division is absent: WGSL leaves f32 x/0 indeterminate, so it runs on
// the host where a zero divisor gives ±Inf or NaN. divCheckZero selects 0 for
// that lane and never exposes the quotient.
var shaders = map[string]string{
	stream.OpAdd:          binaryShader("a[idx] + b[idx]"),
	stream.OpSub:          binaryShader("a[idx] - b[idx]"),
	stream.OpMul:          binaryShader("a[idx] * b[idx]"),
	stream.OpDivCheckZero: binaryShader("select(a[idx] / b[idx], 0.0, b[idx] == 0.0)"),
	stream.OpScalarAdd:    scalarShader("input[idx] + params.scalar"),
	stream.OpScalarMul:    scalarShader("input[idx] * params.scalar"),
}

// shaderFor returns the shader for d, checking that its operand count matches.
func shaderFor(d stream.Dispatch) (string, bool) {
	code, ok := shaders[d.Op]
	if !ok {
		return "", false
	}
	want := 2
	if d.HasScalar {
		want = 1
	}
	return code, len(d.Inputs) == want
}
