package compile

import (
	"math"

	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
	"github.com/covgraph-ml/covgraph/kernel"
)

// trainValue resolves the second point set for a formula: x itself when no
// training set was given, an initializer for a numeric operand, the graph
// value otherwise.
func (c *compiler) trainValue(x *graph.Value, xTrain *Operand) (*graph.Value, error) {
	if xTrain == nil {
		return x, nil
	}
	if xTrain.isNumeric() {
		return c.numericConst(xTrain.num)
	}
	return xTrain.value, nil
}

// compileRationalQuadratic emits (1 + d²/(2αℓ²))^(-α) over squared-
// Euclidean distances.
func (c *compiler) compileRationalQuadratic(k *kernel.RationalQuadraticKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	y, err := c.trainValue(x, xTrain)
	if err != nil {
		return nil, err
	}
	dists, err := c.pairwiseDistance(x, y, metricSqEuclidean)
	if err != nil {
		return nil, err
	}

	cst, err := c.scalar(k.LengthScale * k.LengthScale * k.Alpha * 2)
	if err != nil {
		return nil, err
	}
	one, err := c.scalar(1)
	if err != nil {
		return nil, err
	}
	negAlpha, err := c.scalar(-k.Alpha)
	if err != nil {
		return nil, err
	}

	base := c.b.Add(c.b.Div(dists, cst), one)
	return c.b.Pow(base, negAlpha, name), nil
}

// compileExpSineSquared emits exp(-2·(sin(π·d/p)/ℓ)²) over Euclidean
// distances.
func (c *compiler) compileExpSineSquared(k *kernel.ExpSineSquaredKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	y, err := c.trainValue(x, xTrain)
	if err != nil {
		return nil, err
	}
	dists, err := c.pairwiseDistance(x, y, metricEuclidean)
	if err != nil {
		return nil, err
	}

	pi, err := c.scalar(math.Pi)
	if err != nil {
		return nil, err
	}
	periodicity, err := c.scalar(k.Periodicity)
	if err != nil {
		return nil, err
	}
	lengthScale, err := c.scalar(k.LengthScale)
	if err != nil {
		return nil, err
	}
	two, err := c.scalar(2)
	if err != nil {
		return nil, err
	}
	minusTwo, err := c.scalar(-2)
	if err != nil {
		return nil, err
	}

	sinOfArg := c.b.Sin(c.b.Mul(c.b.Div(dists, periodicity), pi))
	sq := c.b.Pow(c.b.Div(sinOfArg, lengthScale), two)
	return c.b.Exp(c.b.Mul(sq, minusTwo), name), nil
}

// compileDotProduct emits X·Yᵗ + σ0². Both operands must be 2-D; the
// transpose of a numeric training set is folded into an initializer.
func (c *compiler) compileDotProduct(k *kernel.DotProductKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	sigma, err := c.scalar(k.Sigma0 * k.Sigma0)
	if err != nil {
		return nil, err
	}

	var tr *graph.Value
	switch {
	case xTrain == nil:
		tr = c.b.Transpose(x, []int64{1, 0})

	case xTrain.isNumeric():
		if len(xTrain.num.Shape()) != 2 {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"DotProduct requires a 2-D training set, got %d-D", len(xTrain.num.Shape()))
		}
		folded, err := tensor.Transpose(xTrain.num, []int{1, 0})
		if err != nil {
			return nil, errors.Wrap(err, "fold DotProduct transpose")
		}
		if tr, err = c.numericConst(folded); err != nil {
			return nil, err
		}

	default:
		if dims := xTrain.dims(); dims != nil && len(dims) != 2 {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"DotProduct requires a 2-D training set, got %d-D", len(dims))
		}
		tr = c.b.Transpose(xTrain.value, []int64{1, 0})
	}

	return c.b.Add(c.b.MatMul(x, tr), sigma, name), nil
}

// compilePairwise emits the cosine-similarity kernel
// (X/‖X‖)·(Y/‖Y‖)ᵗ with row-wise L2 normalization. Every other pairwise
// metric is unsupported.
func (c *compiler) compilePairwise(k *kernel.PairwiseKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	if k.Metric != "cosine" {
		return nil, errors.Wrapf(ErrUnsupported, "pairwise metric %q", k.Metric)
	}

	var normYT *graph.Value
	if xTrain != nil && xTrain.isNumeric() {
		folded, err := hostCosineNormalize(xTrain.num)
		if err != nil {
			return nil, err
		}
		if normYT, err = c.numericConst(folded); err != nil {
			return nil, err
		}
	} else {
		y := x
		if xTrain != nil {
			y = xTrain.value
		}
		ny := c.b.ReduceL2(y, []int64{1}, true)
		normYT = c.b.Transpose(c.b.Div(y, ny), []int64{1, 0})
	}

	nx := c.b.ReduceL2(x, []int64{1}, true)
	normX := c.b.Div(x, nx)
	return c.b.MatMul(normX, normYT, name), nil
}

// hostCosineNormalize row-normalizes a numeric point set and transposes it,
// all in host code.
func hostCosineNormalize(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	s := t.Shape()
	if len(s) != 2 {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"cosine kernel requires a 2-D training set, got %d-D", len(s))
	}
	rows, cols := s[0], s[1]
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		norm := 0.0
		for j := 0; j < cols; j++ {
			v := t.FloatAt(i*cols + j)
			norm += v * v
		}
		norm = math.Sqrt(norm)
		for j := 0; j < cols; j++ {
			// transposed layout
			out[j*rows+i] = t.FloatAt(i*cols+j) / norm
		}
	}
	return tensor.FromFloat64s(out, tensor.Shape{cols, rows}, tensor.Float64)
}
