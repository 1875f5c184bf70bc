package stream

import (
	"context"

	"github.com/born-ml/eltwise/internal/parallel"
)

// Kernel is one unit of element-wise work enqueued on a Stream.
type Kernel interface {
	// Name identifies the kernel in faults.
	Name() string
	// Host runs the kernel to completion on the calling goroutine's host,
	// fanning out per cfg.
	Host(ctx context.Context, cfg parallel.Config) error
}

// Ops an accelerator may recognise in a Dispatch.
const (
	OpAdd          = "add"
	OpSub          = "sub"
	OpMul          = "mul"
	OpDiv          = "div"
	OpDivCheckZero = "divCheckZero"
	OpScalarAdd    = "scalarAdd"
	OpScalarMul    = "scalarMul"
)

// Dispatch describes a kernel an accelerator can run without calling back into Go.
// Inputs holds one slice for unary ops and two for binary ops.
type Dispatch struct {
	Op        string
	N         uint32
	Out       []float32
	Inputs    [][]float32
	Scalar    float32
	HasScalar bool
}

// Offloadable is implemented by kernels that can describe themselves as a Dispatch.
// ok is false when the element type, index range or function has no
// accelerator form.
type Offloadable interface {
	Offload() (d Dispatch, ok bool)
}

// Executor runs kernels on some device.
type Executor interface {
	Name() string
	Execute(ctx context.Context, k Kernel) error
}
