package compile

import (
	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/graph"
)

// Distance metrics understood by the strategy selector.
const (
	metricEuclidean   = "euclidean"
	metricSqEuclidean = "sqeuclidean"
)

// pairwiseDistance compiles the pairwise distance matrix between the rows
// of x and y under the configured strategy. The fused and unfused forms
// compute the same mathematical quantity up to floating rounding.
func (c *compiler) pairwiseDistance(x, y *graph.Value, metric string) (*graph.Value, error) {
	switch c.optim {
	case OptimNone:
		return c.cdistGraph(x, y, metric)
	case OptimCDist:
		return c.b.CDist(x, y, metric), nil
	default:
		return nil, errors.Wrapf(ErrConfiguration, "unknown optimization %q", c.optim)
	}
}

// selfDistance compiles the pairwise distance of a point set against
// itself, producing the full n×n matrix with a zero diagonal.
func (c *compiler) selfDistance(x *graph.Value, metric string) (*graph.Value, error) {
	return c.cdistGraph(x, x, metric)
}

// cdistGraph composes the distance purely from elementary operations:
// d²(x_i, y_j) = ‖x_i‖² - 2·x_i·y_j + ‖y_j‖², clamped at zero against
// rounding before any square root.
func (c *compiler) cdistGraph(x, y *graph.Value, metric string) (*graph.Value, error) {
	if metric != metricEuclidean && metric != metricSqEuclidean {
		return nil, errors.Wrapf(ErrUnsupported, "distance metric %q", metric)
	}

	rx := c.b.ReduceSumSquare(x, []int64{1}, true)
	ry := c.b.ReduceSumSquare(y, []int64{1}, true)
	cross := c.b.MatMul(x, c.b.Transpose(y, []int64{1, 0}))

	minusTwo, err := c.scalar(-2)
	if err != nil {
		return nil, err
	}
	d2 := c.b.Add(c.b.Add(c.b.Mul(cross, minusTwo), rx), c.b.Transpose(ry, []int64{1, 0}))
	d2 = c.b.Relu(d2)

	if metric == metricEuclidean {
		return c.b.Sqrt(d2), nil
	}
	return d2, nil
}
