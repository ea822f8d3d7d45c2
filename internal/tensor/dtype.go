// Package tensor provides the dense host tensors used by the covgraph
// compiler: constant payloads carried inside graphs, and the values the
// reference evaluator computes with.
package tensor

// DataType represents runtime type information for tensors.
//
// The compiler only materializes floating constants in Float32 or Float64;
// Int64 exists for shape arithmetic (Shape, Gather, Concat operands).
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}
