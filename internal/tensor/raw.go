package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is the low-level tensor representation: a contiguous row-major
// byte buffer plus shape and runtime type information. Tensors are never
// mutated once handed to a graph; the evaluator allocates fresh outputs.
type RawTensor struct {
	data  []byte
	shape Shape
	dtype DataType
}

// NewRaw creates a new zero-initialized RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()
	return &RawTensor{
		data:  make([]byte, byteSize),
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the raw byte slice.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{data: data, shape: r.shape.Clone(), dtype: r.dtype}
}

// FloatAt returns the element at flat index i as a float64, for any
// floating dtype.
func (r *RawTensor) FloatAt(i int) float64 {
	switch r.dtype {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	default:
		panic(fmt.Sprintf("FloatAt on %s tensor", r.dtype))
	}
}

// SetFloat stores v at flat index i, rounding to the tensor's dtype.
func (r *RawTensor) SetFloat(i int, v float64) {
	switch r.dtype {
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Float64:
		r.AsFloat64()[i] = v
	default:
		panic(fmt.Sprintf("SetFloat on %s tensor", r.dtype))
	}
}

// Float64s returns all elements converted to float64.
// Panics if the tensor is not a floating tensor.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = r.FloatAt(i)
	}
	return out
}

// String renders a short description for diagnostics.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(%v, %s)", r.shape, r.dtype)
}
