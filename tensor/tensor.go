// Package tensor provides the public API for the dense host tensors used
// across covgraph: constant payloads embedded in compiled graphs, numeric
// training sets handed to the compiler, and the values the reference
// evaluator consumes and produces.
//
// Example:
//
//	x, err := tensor.FromFloat64s([]float64{0, 1, 2}, tensor.Shape{3, 1}, tensor.Float64)
package tensor

import (
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation: a contiguous row-major
// buffer plus shape and runtime type information.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype)
}

// Full creates a floating tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	return tensor.Full(shape, value, dtype)
}

// FromFloat64s creates a floating tensor from host values, cast to dtype.
func FromFloat64s(values []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.FromFloat64s(values, shape, dtype)
}

// FromInt64s creates an int64 tensor from host values.
func FromInt64s(values []int64, shape Shape) (*RawTensor, error) {
	return tensor.FromInt64s(values, shape)
}

// Eye creates an n×n identity matrix.
func Eye(n int, dtype DataType) (*RawTensor, error) {
	return tensor.Eye(n, dtype)
}
