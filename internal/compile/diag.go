package compile

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/kernel"
)

// CompileDiag emits a subgraph computing only the diagonal of the kernel
// matrix of X against itself, as a vector of length n_X. For the stationary
// closed forms the self-distance is zero, so the diagonal collapses to a
// shape-driven constant and the full pairwise computation is never paid.
//
// For every supported variant the result equals the diagonal of
// Compile(k, X, X) exactly.
func CompileDiag(b *graph.Builder, k kernel.Kernel, x *graph.Value, opts Options) (*graph.Value, error) {
	if err := opts.validate(b); err != nil {
		return nil, err
	}
	if name := opts.outputName(); name != "" {
		if err := b.Reserve(name); err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}
	}

	c := &compiler{b: b, dtype: opts.DType, optim: opts.Optim}
	out, err := c.compileDiag(k, x, opts.outputName())
	if err != nil {
		return nil, err
	}
	if err := b.Err(); err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}
	return out, nil
}

func (c *compiler) compileDiag(k kernel.Kernel, x *graph.Value, name string) (*graph.Value, error) {
	klog.V(1).Infof("compile diag of kernel %s", k)

	switch k := k.(type) {
	case *kernel.SumKernel:
		k1, err := c.compileDiag(k.K1, x, "")
		if err != nil {
			return nil, err
		}
		k2, err := c.compileDiag(k.K2, x, "")
		if err != nil {
			return nil, err
		}
		return c.b.Add(k1, k2, name), nil

	case *kernel.ProductKernel:
		k1, err := c.compileDiag(k.K1, x, "")
		if err != nil {
			return nil, err
		}
		k2, err := c.compileDiag(k.K2, x, "")
		if err != nil {
			return nil, err
		}
		return c.b.Mul(k1, k2, name), nil

	case *kernel.ConstantKernel:
		return c.diagConstant(k.Value, x, name)

	// The diagonal of each of these closed forms is the constant 1:
	// the distance of a point to itself is zero in every formula.
	case *kernel.RBFKernel:
		return c.diagConstant(1, x, name)
	case *kernel.MaternKernel:
		return c.diagConstant(1, x, name)
	case *kernel.RationalQuadraticKernel:
		return c.diagConstant(1, x, name)
	case *kernel.ExpSineSquaredKernel:
		return c.diagConstant(1, x, name)

	case *kernel.DotProductKernel:
		return c.diagDotProduct(k, x, name)

	default:
		return nil, errors.Wrapf(ErrUnsupported, "diag of kernel type %T", k)
	}
}

// diagConstant emits a flat zero vector sized by X's runtime row count,
// shifted by value.
func (c *compiler) diagConstant(value float64, x *graph.Value, name string) (*graph.Value, error) {
	zeros, err := c.zeroVectorOfSize(x, 0, dropDim)
	if err != nil {
		return nil, err
	}
	cv, err := c.scalar(value)
	if err != nil {
		return nil, err
	}
	return c.b.Add(zeros, cv, name), nil
}

// diagDotProduct emits ‖x_i‖² + σ0² per row, with no matrix multiply.
func (c *compiler) diagDotProduct(k *kernel.DotProductKernel, x *graph.Value, name string) (*graph.Value, error) {
	sigma, err := c.scalar(k.Sigma0 * k.Sigma0)
	if err != nil {
		return nil, err
	}
	sums := c.b.ReduceSumSquare(x, []int64{1}, true)
	return c.b.Squeeze(c.b.Add(sums, sigma), []int64{1}, name), nil
}
