//go:build windows

package webgpu

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/eltwise/internal/backend/cpu"
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// Backend runs offloadable kernels as WGSL compute shaders and everything
// else on the host.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Device access is serialized; streams on one backend share the queue.
	// submitMu also guards the shader and pipeline cache.
	submitMu  sync.Mutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	limits    deviceLimits

	host stream.Executor
}

// Compile-time check that Backend implements stream.Executor.
var _ stream.Executor = (*Backend)(nil)

// New creates a new WebGPU backend with a default CPU fallback.
// Returns an error wrapping ErrUnavailable if no adapter or device can be opened.
func New() (*Backend, error) {
	return NewWithFallback(cpu.New())
}

// NewWithFallback creates a WebGPU backend that runs non-offloadable kernels on host.
func NewWithFallback(host stream.Executor) (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("%w: native library: %v", ErrUnavailable, r)
		}
	}()

	if err := wgpu.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrUnavailable, err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %w", ErrUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %w", ErrUnavailable, err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: no queue", ErrUnavailable)
	}

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		limits:    defaultLimits,
		host:      host,
	}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// NewStream creates a stream bound to this backend.
func (b *Backend) NewStream() *stream.Stream {
	return stream.New(b)
}

// Execute dispatches k to the GPU when it describes a known float32 op that
// fits the device limits, otherwise runs it on the host executor.
func (b *Backend) Execute(ctx context.Context, k stream.Kernel) error {
	if o, ok := k.(stream.Offloadable); ok {
		if d, ok := o.Offload(); ok && fitsDevice(d, b.limits) {
			if code, ok := shaderFor(d); ok {
				return b.dispatch(d, code)
			}
		}
	}
	return b.host.Execute(ctx, k)
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.submitMu.Lock()
	defer b.submitMu.Unlock()

	for name, pipeline := range b.pipelines {
		pipeline.Release()
		delete(b.pipelines, name)
	}
	for name, shader := range b.shaders {
		shader.Release()
		delete(b.shaders, name)
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// IsAvailable reports whether a WebGPU device can be opened.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached by op name. Callers hold submitMu.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	if shader, exists := b.shaders[name]; exists {
		return shader
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	b.shaders[name] = shader
	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
// Callers hold submitMu.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	if pipeline, exists := b.pipelines[name]; exists {
		return pipeline
	}
	// Auto layout (nil layout).
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.pipelines[name] = pipeline
	return pipeline
}

// createBuffer creates a GPU buffer initialised with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies size bytes of src into dst through a staging buffer,
// since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(src *wgpu.Buffer, dst []byte) error {
	size := uint64(len(dst))
	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("webgpu: map staging buffer: %w", err)
	}
	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(dst, unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()

	return nil
}

// dispatch uploads the inputs, runs the shader over d.N invocations and
// copies the result into d.Out. The call returns once d.Out holds the result,
// which keeps stream FIFO order intact.
func (b *Backend) dispatch(d stream.Dispatch, code string) error {
	if d.N == 0 {
		return nil
	}
	b.submitMu.Lock()
	defer b.submitMu.Unlock()

	shader := b.compileShader(d.Op, code)
	pipeline := b.getOrCreatePipeline(d.Op, shader)

	size := uint64(d.N) * 4
	entries := make([]wgpu.BindGroupEntry, 0, len(d.Inputs)+2)
	for i, in := range d.Inputs {
		buf := b.createBuffer(float32Bytes(in), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		//nolint:gosec // G115: binding index is 0 or 1
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, size))
	}

	result := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer result.Release()
	//nolint:gosec // G115: binding index is 1 or 2
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(d.Inputs)), result, 0, size))

	// Params: size u32, scalar f32; padded to 16 bytes for uniform alignment.
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], d.N)
	binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(d.Scalar))
	uniform := b.createBuffer(params, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer uniform.Release()
	//nolint:gosec // G115: binding index is 2 or 3
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(d.Inputs)+1), uniform, 0, 16))

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(parallel.Grid(d.N, workgroupSize), 1, 1)
	pass.End()
	b.queue.Submit(encoder.Finish(nil))

	return b.readBuffer(result, float32Bytes(d.Out))
}

// float32Bytes views f as raw little-endian bytes without copying.
func float32Bytes(f []float32) []byte {
	if len(f) == 0 {
		return nil
	}
	//nolint:gosec // reinterpreting float32 storage as bytes
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}
