package compile

import (
	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// Trailing-dimension choices for zeroVectorOfSize. The choice is mandatory:
// there is no sane default for keeping or dropping the trailing dimension.
const (
	dropDim = 0
	keepDim = 1
)

// zeroVectorOfSize emits a subgraph producing a zero-filled tensor whose
// length equals x's runtime row count (axis 0) or column count (axis 1).
// With keepdims=keepDim the result has shape [n, 1] (axis 0) or [1, n]
// (axis 1); with dropDim it is a flat vector. The count is read from the
// runtime shape of x, never assumed statically.
//
// Kernels whose value depends only on point counts (Constant, WhiteKernel)
// are built on this.
func (c *compiler) zeroVectorOfSize(x *graph.Value, axis, keepdims int) (*graph.Value, error) {
	if axis != 0 && axis != 1 {
		return nil, errors.Wrapf(ErrConfiguration, "axis must be 0 or 1, got %d", axis)
	}
	if keepdims != dropDim && keepdims != keepDim {
		return nil, errors.Wrapf(ErrConfiguration, "no default for keepdims is allowed, got %d", keepdims)
	}

	shape := c.b.Shape(x)
	axisIdx, err := tensor.FromInt64s([]int64{int64(axis)}, tensor.Shape{1})
	if err != nil {
		return nil, errors.Wrap(err, "zero vector")
	}
	dim := c.b.Gather(shape, c.b.Constant(axisIdx))

	newShape := dim
	if keepdims == keepDim {
		oneT, err := tensor.FromInt64s([]int64{1}, tensor.Shape{1})
		if err != nil {
			return nil, errors.Wrap(err, "zero vector")
		}
		one := c.b.Constant(oneT)
		if axis == 0 {
			newShape = c.b.Concat([]*graph.Value{dim, one})
		} else {
			newShape = c.b.Concat([]*graph.Value{one, dim})
		}
	}

	zero, err := floatTensor([]float64{0}, tensor.Shape{1}, c.dtype)
	if err != nil {
		return nil, err
	}
	return c.b.ConstantOfShape(newShape, zero), nil
}

// zeroColumn returns a [n, 1] zero tensor for an operand: emitted from the
// runtime shape for symbolic operands, constant-folded for numeric ones.
func (c *compiler) zeroColumn(o *Operand) (*graph.Value, error) {
	if o.isNumeric() {
		rows := o.num.Shape()[0]
		z, err := tensor.Zeros(tensor.Shape{rows, 1}, c.dtype)
		if err != nil {
			return nil, errors.Wrap(err, "zero column")
		}
		return c.b.Constant(z), nil
	}
	return c.zeroVectorOfSize(o.value, 0, keepDim)
}
