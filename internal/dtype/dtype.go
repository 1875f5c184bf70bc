// Package dtype provides the element and index type constraints for the eltwise engine.
package dtype

// Number is a constraint for element types a buffer may hold.
// It uses Go generics so that operations are resolved at compile time.
type Number interface {
	~float32 | ~float64 |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Index is a constraint for the integer width used to count and address elements.
type Index interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// DefaultIndex is the index width callers use when they have no reason to pick another.
type DefaultIndex = int32

// DataType represents runtime type information for element types.
// Only executors consult it, to decide whether a kernel can be offloaded.
type DataType int

// Known data types. Other covers every Number kind without an accelerator mapping.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Other
)

// Size returns the byte size of the data type, or 0 for Other.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	default:
		return "other"
	}
}

// Of infers the DataType of T. Named types (e.g. type Celsius float32) map to Other.
func Of[T Number]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	default:
		return Other
	}
}

// IsFloat reports whether T is a floating-point kind.
func IsFloat[T Number]() bool {
	// 1/2 truncates to zero for every integer kind.
	one := T(1)
	return one/2 != 0
}
