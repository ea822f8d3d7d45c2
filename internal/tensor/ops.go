package tensor

import (
	"fmt"
	"math"
)

// The routines below are the CPU implementations backing the graph
// evaluator. They cover exactly the elementary-operation vocabulary the
// kernel compiler emits: broadcasted elementwise arithmetic, 2-D matrix
// multiply, axis-1 reductions, shape manipulation, and the fused pairwise
// distance primitive.

func sameFloatDType(a, b *RawTensor) error {
	if !a.DType().IsFloat() || !b.DType().IsFloat() {
		return fmt.Errorf("operands must be floating tensors, got %s and %s", a.DType(), b.DType())
	}
	if a.DType() != b.DType() {
		return fmt.Errorf("operand dtypes differ: %s vs %s", a.DType(), b.DType())
	}
	return nil
}

// broadcastBinary applies f elementwise over broadcasted operands.
func broadcastBinary(a, b *RawTensor, f func(x, y float64) float64) (*RawTensor, error) {
	if err := sameFloatDType(a, b); err != nil {
		return nil, err
	}
	outShape, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	out, err := NewRaw(outShape, a.DType())
	if err != nil {
		return nil, err
	}

	outStrides := outShape.ComputeStrides()
	aIdx := broadcastIndexer(a.Shape(), outShape)
	bIdx := broadcastIndexer(b.Shape(), outShape)

	coords := make([]int, len(outShape))
	for i := 0; i < out.NumElements(); i++ {
		rem := i
		for d := range outShape {
			coords[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		out.SetFloat(i, f(a.FloatAt(aIdx(coords)), b.FloatAt(bIdx(coords))))
	}
	return out, nil
}

// broadcastIndexer maps output coordinates back to a flat index of a
// (possibly lower-rank, possibly size-1-dimension) input.
func broadcastIndexer(in, out Shape) func(coords []int) int {
	strides := in.ComputeStrides()
	offset := len(out) - len(in)
	return func(coords []int) int {
		idx := 0
		for d := range in {
			c := coords[d+offset]
			if in[d] == 1 {
				c = 0
			}
			idx += c * strides[d]
		}
		return idx
	}
}

// Add performs elementwise addition with broadcasting.
func Add(a, b *RawTensor) (*RawTensor, error) {
	return broadcastBinary(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs elementwise subtraction with broadcasting.
func Sub(a, b *RawTensor) (*RawTensor, error) {
	return broadcastBinary(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs elementwise multiplication with broadcasting.
func Mul(a, b *RawTensor) (*RawTensor, error) {
	return broadcastBinary(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs elementwise division with broadcasting.
func Div(a, b *RawTensor) (*RawTensor, error) {
	return broadcastBinary(a, b, func(x, y float64) float64 { return x / y })
}

// Pow raises a to the elementwise power b, with broadcasting.
func Pow(a, b *RawTensor) (*RawTensor, error) {
	return broadcastBinary(a, b, math.Pow)
}

func unary(t *RawTensor, f func(x float64) float64) (*RawTensor, error) {
	if !t.DType().IsFloat() {
		return nil, fmt.Errorf("operand must be a floating tensor, got %s", t.DType())
	}
	out, err := NewRaw(t.Shape(), t.DType())
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.NumElements(); i++ {
		out.SetFloat(i, f(t.FloatAt(i)))
	}
	return out, nil
}

// Neg returns the elementwise negation.
func Neg(t *RawTensor) (*RawTensor, error) {
	return unary(t, func(x float64) float64 { return -x })
}

// Exp returns the elementwise exponential.
func Exp(t *RawTensor) (*RawTensor, error) {
	return unary(t, math.Exp)
}

// Sin returns the elementwise sine.
func Sin(t *RawTensor) (*RawTensor, error) {
	return unary(t, math.Sin)
}

// Sqrt returns the elementwise square root.
func Sqrt(t *RawTensor) (*RawTensor, error) {
	return unary(t, math.Sqrt)
}

// Relu returns the elementwise max(x, 0).
func Relu(t *RawTensor) (*RawTensor, error) {
	return unary(t, func(x float64) float64 { return math.Max(x, 0) })
}

// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func MatMul(a, b *RawTensor) (*RawTensor, error) {
	if err := sameFloatDType(a, b); err != nil {
		return nil, err
	}
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		return nil, fmt.Errorf("matmul requires 2-D operands, got %v and %v", as, bs)
	}
	if as[1] != bs[0] {
		return nil, fmt.Errorf("matmul inner dimensions mismatch: %v and %v", as, bs)
	}
	m, k, n := as[0], as[1], bs[1]
	out, err := NewRaw(Shape{m, n}, a.DType())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			acc := 0.0
			for p := 0; p < k; p++ {
				acc += a.FloatAt(i*k+p) * b.FloatAt(p*n+j)
			}
			out.SetFloat(i*n+j, acc)
		}
	}
	return out, nil
}

// Transpose permutes a 2-D tensor's dimensions according to perm.
func Transpose(t *RawTensor, perm []int) (*RawTensor, error) {
	s := t.Shape()
	if len(s) != 2 {
		return nil, fmt.Errorf("transpose requires a 2-D operand, got %v", s)
	}
	if len(perm) != 2 || perm[0] < 0 || perm[0] > 1 || perm[1] < 0 || perm[1] > 1 || perm[0] == perm[1] {
		return nil, fmt.Errorf("invalid transpose permutation %v", perm)
	}
	if perm[0] == 0 {
		return t.Clone(), nil
	}
	rows, cols := s[0], s[1]
	out, err := NewRaw(Shape{cols, rows}, t.DType())
	if err != nil {
		return nil, err
	}
	if t.DType() == Int64 {
		src, dst := t.AsInt64(), out.AsInt64()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[j*rows+i] = src[i*cols+j]
			}
		}
		return out, nil
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.SetFloat(j*rows+i, t.FloatAt(i*cols+j))
		}
	}
	return out, nil
}

// reduceRows reduces axis 1 of a 2-D floating tensor with the given
// per-element accumulator and finisher.
func reduceRows(t *RawTensor, axes []int, keepdims bool, acc func(sum, x float64) float64, finish func(sum float64) float64) (*RawTensor, error) {
	s := t.Shape()
	if len(s) != 2 {
		return nil, fmt.Errorf("reduction requires a 2-D operand, got %v", s)
	}
	if len(axes) != 1 || axes[0] != 1 {
		return nil, fmt.Errorf("reduction supports axes=[1] only, got %v", axes)
	}
	rows, cols := s[0], s[1]
	outShape := Shape{rows}
	if keepdims {
		outShape = Shape{rows, 1}
	}
	out, err := NewRaw(outShape, t.DType())
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum = acc(sum, t.FloatAt(i*cols+j))
		}
		out.SetFloat(i, finish(sum))
	}
	return out, nil
}

// ReduceSumSquare sums the squares of elements along the given axes.
func ReduceSumSquare(t *RawTensor, axes []int, keepdims bool) (*RawTensor, error) {
	return reduceRows(t, axes, keepdims,
		func(sum, x float64) float64 { return sum + x*x },
		func(sum float64) float64 { return sum })
}

// ReduceL2 computes the L2 norm of elements along the given axes.
func ReduceL2(t *RawTensor, axes []int, keepdims bool) (*RawTensor, error) {
	return reduceRows(t, axes, keepdims,
		func(sum, x float64) float64 { return sum + x*x },
		math.Sqrt)
}

// Squeeze removes the given size-1 axes from the tensor's shape.
func Squeeze(t *RawTensor, axes []int) (*RawTensor, error) {
	s := t.Shape()
	drop := make(map[int]bool, len(axes))
	for _, a := range axes {
		if a < 0 || a >= len(s) {
			return nil, fmt.Errorf("squeeze axis %d out of range for shape %v", a, s)
		}
		if s[a] != 1 {
			return nil, fmt.Errorf("squeeze axis %d has size %d, not 1", a, s[a])
		}
		drop[a] = true
	}
	newShape := make(Shape, 0, len(s))
	for i, dim := range s {
		if !drop[i] {
			newShape = append(newShape, dim)
		}
	}
	out := t.Clone()
	out.shape = newShape
	return out, nil
}

// Gather selects entries of a 1-D tensor by int64 indices (axis 0).
func Gather(t, indices *RawTensor) (*RawTensor, error) {
	if len(t.Shape()) != 1 {
		return nil, fmt.Errorf("gather supports 1-D data only, got shape %v", t.Shape())
	}
	if indices.DType() != Int64 {
		return nil, fmt.Errorf("gather indices must be int64, got %s", indices.DType())
	}
	idx := indices.AsInt64()
	out, err := NewRaw(indices.Shape().Clone(), t.DType())
	if err != nil {
		return nil, err
	}
	n := t.NumElements()
	for i, j := range idx {
		if j < 0 || int(j) >= n {
			return nil, fmt.Errorf("gather index %d out of range [0, %d)", j, n)
		}
		if t.DType() == Int64 {
			out.AsInt64()[i] = t.AsInt64()[j]
		} else {
			out.SetFloat(i, t.FloatAt(int(j)))
		}
	}
	return out, nil
}

// Concat concatenates 1-D tensors of the same dtype along axis 0.
func Concat(inputs ...*RawTensor) (*RawTensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("concat requires at least 1 input")
	}
	total := 0
	for _, in := range inputs {
		if len(in.Shape()) != 1 {
			return nil, fmt.Errorf("concat supports 1-D inputs only, got shape %v", in.Shape())
		}
		if in.DType() != inputs[0].DType() {
			return nil, fmt.Errorf("concat dtype mismatch: %s vs %s", in.DType(), inputs[0].DType())
		}
		total += in.NumElements()
	}
	out, err := NewRaw(Shape{total}, inputs[0].DType())
	if err != nil {
		return nil, err
	}
	pos := 0
	for _, in := range inputs {
		copy(out.data[pos:], in.data)
		pos += len(in.data)
	}
	return out, nil
}

// EyeLike returns an identity matrix with the shape and dtype of a 2-D input.
func EyeLike(t *RawTensor) (*RawTensor, error) {
	s := t.Shape()
	if len(s) != 2 {
		return nil, fmt.Errorf("eyeLike requires a 2-D operand, got %v", s)
	}
	out, err := NewRaw(s.Clone(), t.DType())
	if err != nil {
		return nil, err
	}
	n := s[0]
	if s[1] < n {
		n = s[1]
	}
	for i := 0; i < n; i++ {
		out.SetFloat(i*s[1]+i, 1)
	}
	return out, nil
}

// ConstantOfShape builds a tensor of the given shape filled with the single
// element of value, in value's dtype.
func ConstantOfShape(shape *RawTensor, value *RawTensor) (*RawTensor, error) {
	if shape.DType() != Int64 || len(shape.Shape()) != 1 {
		return nil, fmt.Errorf("constantOfShape requires a 1-D int64 shape tensor, got %s %v", shape.DType(), shape.Shape())
	}
	if value.NumElements() != 1 {
		return nil, fmt.Errorf("constantOfShape value must hold 1 element, got %d", value.NumElements())
	}
	dims := shape.AsInt64()
	target := make(Shape, len(dims))
	for i, d := range dims {
		target[i] = int(d)
	}
	return Full(target, value.FloatAt(0), value.DType())
}

// CDist computes pairwise distances between the rows of two 2-D point sets.
// Supported metrics: "euclidean" and "sqeuclidean".
func CDist(x, y *RawTensor, metric string) (*RawTensor, error) {
	if err := sameFloatDType(x, y); err != nil {
		return nil, err
	}
	xs, ys := x.Shape(), y.Shape()
	if len(xs) != 2 || len(ys) != 2 {
		return nil, fmt.Errorf("cdist requires 2-D operands, got %v and %v", xs, ys)
	}
	if xs[1] != ys[1] {
		return nil, fmt.Errorf("cdist feature counts differ: %v and %v", xs, ys)
	}
	if metric != "euclidean" && metric != "sqeuclidean" {
		return nil, fmt.Errorf("cdist metric %q is not supported", metric)
	}
	n, m, f := xs[0], ys[0], xs[1]
	out, err := NewRaw(Shape{n, m}, x.DType())
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			d := 0.0
			for p := 0; p < f; p++ {
				diff := x.FloatAt(i*f+p) - y.FloatAt(j*f+p)
				d += diff * diff
			}
			if metric == "euclidean" {
				d = math.Sqrt(d)
			}
			out.SetFloat(i*m+j, d)
		}
	}
	return out, nil
}
