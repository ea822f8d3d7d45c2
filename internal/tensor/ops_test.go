package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat(t *testing.T, values []float64, shape Shape) *RawTensor {
	t.Helper()
	r, err := FromFloat64s(values, shape, Float64)
	require.NoError(t, err)
	return r
}

func TestAdd_Broadcast(t *testing.T) {
	a := mat(t, []float64{1, 2, 3}, Shape{3, 1})
	b := mat(t, []float64{10, 20}, Shape{1, 2})

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, got.Shape())
	assert.Equal(t, []float64{11, 21, 12, 22, 13, 23}, got.AsFloat64())
}

func TestAdd_ScalarBroadcast(t *testing.T) {
	a := mat(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	b := mat(t, []float64{0.5}, Shape{1})

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, got.AsFloat64())
}

func TestAdd_DTypeMismatch(t *testing.T) {
	a := mat(t, []float64{1}, Shape{1})
	b, err := FromFloat64s([]float64{1}, Shape{1}, Float32)
	require.NoError(t, err)

	_, err = Add(a, b)
	require.Error(t, err)
}

func TestMulDivSubPow(t *testing.T) {
	a := mat(t, []float64{2, 4}, Shape{2})
	b := mat(t, []float64{3, 2}, Shape{2})

	got, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 8}, got.AsFloat64())

	got, err = Div(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0 / 3.0, 2}, got.AsFloat64())

	got, err = Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2}, got.AsFloat64())

	got, err = Pow(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 16}, got.AsFloat64())
}

func TestUnaryOps(t *testing.T) {
	a := mat(t, []float64{0, 1, 4}, Shape{3})

	got, err := Neg(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1, -4}, got.AsFloat64())

	got, err = Exp(a)
	require.NoError(t, err)
	assert.InDelta(t, math.E, got.AsFloat64()[1], 1e-15)

	got, err = Sqrt(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, got.AsFloat64())

	b := mat(t, []float64{-2, 3}, Shape{2})
	got, err = Relu(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3}, got.AsFloat64())

	got, err = Sin(mat(t, []float64{math.Pi / 2}, Shape{1}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.AsFloat64()[0], 1e-15)
}

func TestMatMul(t *testing.T) {
	a := mat(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := mat(t, []float64{7, 8, 9, 10, 11, 12}, Shape{3, 2})

	got, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, got.AsFloat64())
}

func TestMatMul_InnerMismatch(t *testing.T) {
	a := mat(t, []float64{1, 2}, Shape{1, 2})
	b := mat(t, []float64{1, 2, 3}, Shape{3, 1})
	_, err := MatMul(a, b)
	require.Error(t, err)
}

func TestTranspose(t *testing.T) {
	a := mat(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	got, err := Transpose(a, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, got.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.AsFloat64())

	// identity permutation
	got, err = Transpose(a, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, a.AsFloat64(), got.AsFloat64())
}

func TestTranspose_Int64(t *testing.T) {
	a, err := FromInt64s([]int64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)

	got, err := Transpose(a, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2, 4}, got.AsInt64())
}

func TestReduceSumSquare(t *testing.T) {
	a := mat(t, []float64{1, 2, 3, 4}, Shape{2, 2})

	got, err := ReduceSumSquare(a, []int{1}, true)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, got.Shape())
	assert.Equal(t, []float64{5, 25}, got.AsFloat64())

	got, err = ReduceSumSquare(a, []int{1}, false)
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, got.Shape())
}

func TestReduceL2(t *testing.T) {
	a := mat(t, []float64{3, 4, 0, 5}, Shape{2, 2})

	got, err := ReduceL2(a, []int{1}, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, got.AsFloat64())
}

func TestReduce_UnsupportedAxes(t *testing.T) {
	a := mat(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	_, err := ReduceSumSquare(a, []int{0}, true)
	require.Error(t, err)
}

func TestSqueeze(t *testing.T) {
	a := mat(t, []float64{1, 2, 3}, Shape{3, 1})

	got, err := Squeeze(a, []int{1})
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, got.Shape())
	assert.Equal(t, []float64{1, 2, 3}, got.AsFloat64())

	_, err = Squeeze(mat(t, []float64{1, 2}, Shape{2, 1}), []int{0})
	require.Error(t, err)
}

func TestGather(t *testing.T) {
	data, err := FromInt64s([]int64{10, 20, 30}, Shape{3})
	require.NoError(t, err)
	idx, err := FromInt64s([]int64{1}, Shape{1})
	require.NoError(t, err)

	got, err := Gather(data, idx)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, got.AsInt64())

	badIdx, err := FromInt64s([]int64{5}, Shape{1})
	require.NoError(t, err)
	_, err = Gather(data, badIdx)
	require.Error(t, err)
}

func TestConcat(t *testing.T) {
	a, err := FromInt64s([]int64{3}, Shape{1})
	require.NoError(t, err)
	b, err := FromInt64s([]int64{1}, Shape{1})
	require.NoError(t, err)

	got, err := Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, got.AsInt64())
}

func TestEyeLike(t *testing.T) {
	a := mat(t, make([]float64, 9), Shape{3, 3})

	got, err := EyeLike(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, got.AsFloat64())
}

func TestConstantOfShape(t *testing.T) {
	shape, err := FromInt64s([]int64{2, 3}, Shape{2})
	require.NoError(t, err)
	value := mat(t, []float64{0}, Shape{1})

	got, err := ConstantOfShape(shape, value)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, got.Shape())
	for _, v := range got.AsFloat64() {
		assert.Zero(t, v)
	}
}

func TestCDist(t *testing.T) {
	x := mat(t, []float64{0, 0, 3, 4}, Shape{2, 2})
	y := mat(t, []float64{0, 0}, Shape{1, 2})

	got, err := CDist(x, y, "euclidean")
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, got.Shape())
	assert.InDelta(t, 0.0, got.AsFloat64()[0], 1e-15)
	assert.InDelta(t, 5.0, got.AsFloat64()[1], 1e-15)

	got, err = CDist(x, y, "sqeuclidean")
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.AsFloat64()[1], 1e-15)

	_, err = CDist(x, y, "cityblock")
	require.Error(t, err)
}

func TestCDist_FeatureMismatch(t *testing.T) {
	x := mat(t, []float64{0, 0}, Shape{1, 2})
	y := mat(t, []float64{0, 0, 0}, Shape{1, 3})
	_, err := CDist(x, y, "euclidean")
	require.Error(t, err)
}
