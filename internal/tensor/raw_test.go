package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw_ZeroInitialized(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float64)
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, r.Shape())
	assert.Equal(t, Float64, r.DType())
	assert.Equal(t, 6, r.NumElements())
	for _, v := range r.AsFloat64() {
		assert.Zero(t, v)
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{2, 0}, Float32)
	require.Error(t, err)
}

func TestFromFloat64s_CastsToDType(t *testing.T) {
	r, err := FromFloat64s([]float64{1.5, -2.25, 0.125}, Shape{3}, Float32)
	require.NoError(t, err)

	data := r.AsFloat32()
	assert.Equal(t, []float32{1.5, -2.25, 0.125}, data)
}

func TestFromFloat64s_LengthMismatch(t *testing.T) {
	_, err := FromFloat64s([]float64{1, 2}, Shape{3}, Float64)
	require.Error(t, err)
}

func TestFromFloat64s_RejectsInt64(t *testing.T) {
	_, err := FromFloat64s([]float64{1}, Shape{1}, Int64)
	require.Error(t, err)
}

func TestFloatAtSetFloat(t *testing.T) {
	for _, dtype := range []DataType{Float32, Float64} {
		r, err := NewRaw(Shape{2}, dtype)
		require.NoError(t, err)

		r.SetFloat(1, 3.5)
		assert.Equal(t, 0.0, r.FloatAt(0))
		assert.Equal(t, 3.5, r.FloatAt(1))
	}
}

func TestClone_Independent(t *testing.T) {
	r, err := FromFloat64s([]float64{1, 2}, Shape{2}, Float64)
	require.NoError(t, err)

	c := r.Clone()
	c.SetFloat(0, 9)
	assert.Equal(t, 1.0, r.FloatAt(0))
	assert.Equal(t, 9.0, c.FloatAt(0))
}

func TestFull(t *testing.T) {
	r, err := Full(Shape{2, 2}, 0.5, Float32)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5}, r.AsFloat32())
}

func TestEye(t *testing.T) {
	r, err := Eye(3, Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, r.AsFloat64())
}

func TestFromInt64s(t *testing.T) {
	r, err := FromInt64s([]int64{3, 1}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, Int64, r.DType())
	assert.Equal(t, []int64{3, 1}, r.AsInt64())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}},
		{Shape{3, 5}, Shape{1, 5}, Shape{3, 5}},
		{Shape{3, 5}, Shape{5}, Shape{3, 5}},
		{Shape{3, 5}, Shape{1}, Shape{3, 5}},
		{Shape{4}, Shape{4}, Shape{4}},
	}
	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := BroadcastShapes(Shape{3, 2}, Shape{3, 5})
	require.Error(t, err)
}
