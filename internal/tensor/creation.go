package tensor

import "fmt"

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRaw(shape, dtype)
}

// Full creates a floating tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	if !dtype.IsFloat() {
		return nil, fmt.Errorf("Full requires a floating dtype, got %s", dtype)
	}
	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.NumElements(); i++ {
		t.SetFloat(i, value)
	}
	return t, nil
}

// FromFloat64s creates a floating tensor from host values, cast to dtype.
func FromFloat64s(values []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	if !dtype.IsFloat() {
		return nil, fmt.Errorf("FromFloat64s requires a floating dtype, got %s", dtype)
	}
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, shape.NumElements(), len(values))
	}
	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		t.SetFloat(i, v)
	}
	return t, nil
}

// FromInt64s creates an int64 tensor from host values.
func FromInt64s(values []int64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, shape.NumElements(), len(values))
	}
	t, err := NewRaw(shape, Int64)
	if err != nil {
		return nil, err
	}
	copy(t.AsInt64(), values)
	return t, nil
}

// Eye creates an n×n identity matrix.
func Eye(n int, dtype DataType) (*RawTensor, error) {
	t, err := NewRaw(Shape{n, n}, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		t.SetFloat(i*n+i, 1)
	}
	return t, nil
}
