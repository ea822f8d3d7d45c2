package compile

import (
	"math"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
	"github.com/covgraph-ml/covgraph/kernel"
)

// compiler carries the top-down compile state: the target builder, the
// configured precision, and the distance strategy. It is created per
// compilation and never shared.
type compiler struct {
	b     *graph.Builder
	dtype tensor.DataType
	optim Optim
}

// Compile walks the kernel expression tree and emits a subgraph computing
// the full kernel matrix between X and the training set (X paired with
// itself when xTrain is nil). The returned value is the subgraph root,
// named after opts.OutputNames when provided.
//
// Compilation is all-or-nothing: on error no usable subgraph is returned
// and the builder must be discarded.
func Compile(b *graph.Builder, k kernel.Kernel, x *graph.Value, xTrain *Operand, opts Options) (*graph.Value, error) {
	if err := opts.validate(b); err != nil {
		return nil, err
	}
	if name := opts.outputName(); name != "" {
		if err := b.Reserve(name); err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}
	}

	c := &compiler{b: b, dtype: opts.DType, optim: opts.Optim}
	out, err := c.compile(k, x, xTrain, opts.outputName())
	if err != nil {
		return nil, err
	}
	if err := b.Err(); err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}
	return out, nil
}

// compile dispatches on the exact kernel variant. Sum and Product recurse;
// every other variant compiles through its formula with already-resolved
// scalar parameters.
func (c *compiler) compile(k kernel.Kernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	klog.V(1).Infof("compile kernel %s", k)

	switch k := k.(type) {
	case *kernel.SumKernel:
		k1, err := c.compile(k.K1, x, xTrain, "")
		if err != nil {
			return nil, err
		}
		k2, err := c.compile(k.K2, x, xTrain, "")
		if err != nil {
			return nil, err
		}
		return c.b.Add(k1, k2, name), nil

	case *kernel.ProductKernel:
		k1, err := c.compile(k.K1, x, xTrain, "")
		if err != nil {
			return nil, err
		}
		k2, err := c.compile(k.K2, x, xTrain, "")
		if err != nil {
			return nil, err
		}
		return c.b.Mul(k1, k2, name), nil

	case *kernel.ConstantKernel:
		return c.compileConstant(k, x, xTrain, name)

	case *kernel.RBFKernel:
		return c.compileRBF(k, x, xTrain, name)

	case *kernel.MaternKernel:
		return c.compileMatern(k, x, xTrain, name)

	case *kernel.RationalQuadraticKernel:
		return c.compileRationalQuadratic(k, x, xTrain, name)

	case *kernel.ExpSineSquaredKernel:
		return c.compileExpSineSquared(k, x, xTrain, name)

	case *kernel.DotProductKernel:
		return c.compileDotProduct(k, x, xTrain, name)

	case *kernel.PairwiseKernel:
		return c.compilePairwise(k, x, xTrain, name)

	case *kernel.WhiteKernel:
		return c.compileWhite(k, x, xTrain, name)

	default:
		return nil, errors.Wrapf(ErrUnsupported, "kernel type %T", k)
	}
}

// compileConstant broadcasts the constant to shape [n_X, n_Y] with the
// outer product of two zero columns, so the output shape follows the
// runtime point counts and nothing else.
func (c *compiler) compileConstant(k *kernel.ConstantKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	zx, err := c.zeroVectorOfSize(x, 0, keepDim)
	if err != nil {
		return nil, err
	}
	zy := zx
	if xTrain != nil {
		if zy, err = c.zeroColumn(xTrain); err != nil {
			return nil, err
		}
	}

	mat := c.b.MatMul(zx, c.b.Transpose(zy, []int64{1, 0}))
	cv, err := c.scalar(k.Value)
	if err != nil {
		return nil, err
	}
	return c.b.Add(mat, cv, name), nil
}

// compileWhite emits noise_level·I when the set is paired with itself, and
// a zero matrix between two distinct sets.
func (c *compiler) compileWhite(k *kernel.WhiteKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	zx, err := c.zeroVectorOfSize(x, 0, keepDim)
	if err != nil {
		return nil, err
	}
	zy := zx
	if xTrain != nil {
		if zy, err = c.zeroColumn(xTrain); err != nil {
			return nil, err
		}
	}
	mat := c.b.MatMul(zx, c.b.Transpose(zy, []int64{1, 0}))

	if xTrain != nil {
		return c.b.Identity(mat, name), nil
	}

	nl, err := c.scalar(k.NoiseLevel)
	if err != nil {
		return nil, err
	}
	return c.b.Mul(c.b.EyeLike(mat), nl, name), nil
}

// scaledDistance divides both point sets by the length-scale and compiles
// their pairwise distance under the configured strategy.
func (c *compiler) scaledDistance(lengthScale []float64, metric string, x *graph.Value, xTrain *Operand) (*graph.Value, error) {
	if len(lengthScale) == 0 {
		return nil, errors.Wrap(ErrUnsupported, "empty length-scale")
	}
	lv, err := c.vector(lengthScale)
	if err != nil {
		return nil, err
	}
	xScaled := c.b.Div(x, lv)

	if xTrain == nil {
		return c.selfDistance(xScaled, metric)
	}

	var y *graph.Value
	if xTrain.isNumeric() {
		if y, err = c.numericConst(xTrain.num); err != nil {
			return nil, err
		}
	} else {
		y = xTrain.value
	}
	return c.pairwiseDistance(xScaled, c.b.Div(y, lv), metric)
}

// compileRBF emits exp(-0.5·d²) over squared-Euclidean distances of the
// scaled points.
func (c *compiler) compileRBF(k *kernel.RBFKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	dist, err := c.scaledDistance(k.LengthScale, metricSqEuclidean, x, xTrain)
	if err != nil {
		return nil, err
	}
	half, err := c.scalar(0.5)
	if err != nil {
		return nil, err
	}
	return c.b.Exp(c.b.Neg(c.b.Mul(dist, half)), name), nil
}

// compileMatern emits the half-integer closed forms of the Matérn kernel
// over Euclidean distances of the scaled points. Smoothness values without
// a closed form are unsupported.
func (c *compiler) compileMatern(k *kernel.MaternKernel, x *graph.Value, xTrain *Operand, name string) (*graph.Value, error) {
	switch k.Nu {
	case 0.5, 1.5, 2.5, kernel.NuInf:
	default:
		return nil, errors.Wrapf(ErrUnsupported, "Matern kernel with nu=%g", k.Nu)
	}

	dist, err := c.scaledDistance(k.LengthScale, metricEuclidean, x, xTrain)
	if err != nil {
		return nil, err
	}

	switch k.Nu {
	case 0.5:
		// K = exp(-d)
		return c.b.Exp(c.b.Neg(dist), name), nil

	case 1.5:
		// K = d·√3; (1 + K)·exp(-K)
		sqrt3, err := c.scalar(math.Sqrt(3))
		if err != nil {
			return nil, err
		}
		one, err := c.scalar(1)
		if err != nil {
			return nil, err
		}
		kd := c.b.Mul(dist, sqrt3)
		expK := c.b.Exp(c.b.Neg(kd))
		return c.b.Mul(c.b.Add(kd, one), expK, name), nil

	case 2.5:
		// K = d·√5; (1 + K + K²/3)·exp(-K)
		sqrt5, err := c.scalar(math.Sqrt(5))
		if err != nil {
			return nil, err
		}
		one, err := c.scalar(1)
		if err != nil {
			return nil, err
		}
		three, err := c.scalar(3)
		if err != nil {
			return nil, err
		}
		kd := c.b.Mul(dist, sqrt5)
		expK := c.b.Exp(c.b.Neg(kd))
		poly := c.b.Add(c.b.Add(kd, one), c.b.Div(c.b.Mul(kd, kd), three))
		return c.b.Mul(poly, expK, name), nil

	default: // kernel.NuInf, reduces to RBF
		two, err := c.scalar(2)
		if err != nil {
			return nil, err
		}
		return c.b.Exp(c.b.Neg(c.b.Div(c.b.Mul(dist, dist), two)), name), nil
	}
}
