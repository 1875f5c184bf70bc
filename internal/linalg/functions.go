package linalg

import (
	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/stream"
)

// UnaryFunc is a per-element transform of one value.
// Implementations must be pure: they are called concurrently, possibly more
// than once per index, in no particular order.
type UnaryFunc[T dtype.Number] interface {
	Apply(x T) T
}

// BinaryFunc is a per-element transform of two values. Same purity rules as UnaryFunc.
type BinaryFunc[T dtype.Number] interface {
	Apply(a, b T) T
}

// TernaryFunc is a per-element transform of three values.
type TernaryFunc[T dtype.Number] interface {
	Apply(a, b, c T) T
}

// IndexFunc produces the value for an element from its index alone.
type IndexFunc[T dtype.Number, I dtype.Index] interface {
	Apply(i I) T
}

// UnaryFn adapts a plain function to UnaryFunc.
type UnaryFn[T dtype.Number] func(x T) T

// Apply calls f(x).
func (f UnaryFn[T]) Apply(x T) T { return f(x) }

// BinaryFn adapts a plain function to BinaryFunc.
type BinaryFn[T dtype.Number] func(a, b T) T

// Apply calls f(a, b).
func (f BinaryFn[T]) Apply(a, b T) T { return f(a, b) }

// TernaryFn adapts a plain function to TernaryFunc.
type TernaryFn[T dtype.Number] func(a, b, c T) T

// Apply calls f(a, b, c).
func (f TernaryFn[T]) Apply(a, b, c T) T { return f(a, b, c) }

// IndexFn adapts a plain function to IndexFunc.
type IndexFn[T dtype.Number, I dtype.Index] func(i I) T

// Apply calls f(i).
func (f IndexFn[T, I]) Apply(i I) T { return f(i) }

// namedOp is implemented by cataloged functions an accelerator can recognise.
type namedOp interface {
	Op() string
}

// scalarOp is implemented by cataloged functions that capture one scalar.
type scalarOp interface {
	scalar() any
}

// AddScalar computes x + S.
type AddScalar[T dtype.Number] struct{ S T }

func (f AddScalar[T]) Apply(x T) T { return x + f.S }
func (f AddScalar[T]) Op() string  { return stream.OpScalarAdd }
func (f AddScalar[T]) scalar() any { return f.S }

// MulScalar computes x * S.
type MulScalar[T dtype.Number] struct{ S T }

func (f MulScalar[T]) Apply(x T) T { return x * f.S }
func (f MulScalar[T]) Op() string  { return stream.OpScalarMul }
func (f MulScalar[T]) scalar() any { return f.S }

// DivScalar computes x / S with the element type's native division.
type DivScalar[T dtype.Number] struct{ S T }

func (f DivScalar[T]) Apply(x T) T { return x / f.S }

// Add computes a + b.
type Add[T dtype.Number] struct{}

func (Add[T]) Apply(a, b T) T { return a + b }
func (Add[T]) Op() string     { return stream.OpAdd }

// Sub computes a - b.
type Sub[T dtype.Number] struct{}

func (Sub[T]) Apply(a, b T) T { return a - b }
func (Sub[T]) Op() string     { return stream.OpSub }

// Mul computes a * b.
type Mul[T dtype.Number] struct{}

func (Mul[T]) Apply(a, b T) T { return a * b }
func (Mul[T]) Op() string     { return stream.OpMul }

// Div computes a / b with the element type's native division.
// Floats yield ±Inf or NaN for a zero divisor; integers panic.
// Executors must not offload Div to hardware that leaves x/0 undefined.
type Div[T dtype.Number] struct{}

func (Div[T]) Apply(a, b T) T { return a / b }
func (Div[T]) Op() string     { return stream.OpDiv }

// DivCheckZero computes a / b, or zero where b is zero.
type DivCheckZero[T dtype.Number] struct{}

func (DivCheckZero[T]) Apply(a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}
func (DivCheckZero[T]) Op() string { return stream.OpDivCheckZero }
