package compile

import (
	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// The constant materializer: every numeric parameter a formula uses enters
// the graph through here, in the configured precision. Host literals are
// never mixed directly with subgraph operands.

// floatTensor builds a host tensor from values in the given precision.
// Only the two supported floating kinds are accepted.
func floatTensor(values []float64, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if dtype != tensor.Float32 && dtype != tensor.Float64 {
		return nil, errors.Wrapf(ErrConfiguration, "a float constant must be float32 or float64, got %s", dtype)
	}
	t, err := tensor.FromFloat64s(values, shape, dtype)
	if err != nil {
		return nil, errors.Wrap(err, "materialize constant")
	}
	return t, nil
}

// scalar materializes a single scalar constant as a graph initializer.
func (c *compiler) scalar(v float64) (*graph.Value, error) {
	t, err := floatTensor([]float64{v}, tensor.Shape{1}, c.dtype)
	if err != nil {
		return nil, err
	}
	return c.b.Constant(t), nil
}

// vector materializes a 1-D constant (e.g. per-feature length-scales).
func (c *compiler) vector(values []float64) (*graph.Value, error) {
	t, err := floatTensor(values, tensor.Shape{len(values)}, c.dtype)
	if err != nil {
		return nil, err
	}
	return c.b.Constant(t), nil
}

// numericConst registers a compile-time-known point set as an initializer,
// cast to the configured precision.
func (c *compiler) numericConst(t *tensor.RawTensor) (*graph.Value, error) {
	cast, err := floatTensor(t.Float64s(), t.Shape(), c.dtype)
	if err != nil {
		return nil, err
	}
	return c.b.Constant(cast), nil
}
