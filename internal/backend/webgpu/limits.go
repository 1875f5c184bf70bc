package webgpu

import (
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

// deviceLimits holds the WebGPU limits a single dispatch must respect.
type deviceLimits struct {
	maxWorkgroupsPerDimension uint32
	maxStorageBindingSize     uint64
	maxBufferSize             uint64
}

// defaultLimits are the WebGPU spec defaults every adapter guarantees.
// The device is requested without raised limits, so these are the ones in force.
var defaultLimits = deviceLimits{
	maxWorkgroupsPerDimension: 65535,
	maxStorageBindingSize:     128 << 20,
	maxBufferSize:             256 << 20,
}

// fitsDevice reports whether d can run as one 1-D dispatch with every
// operand bound whole.
func fitsDevice(d stream.Dispatch, l deviceLimits) bool {
	if d.N == 0 {
		return true
	}
	if parallel.Grid(d.N, workgroupSize) > l.maxWorkgroupsPerDimension {
		return false
	}
	size := uint64(d.N) * 4
	return size <= l.maxStorageBindingSize && size <= l.maxBufferSize
}
