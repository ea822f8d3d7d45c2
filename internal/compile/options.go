// Package compile implements the kernel-expression-to-graph compiler: a
// recursive walk over a covariance-kernel expression tree that emits an
// equivalent subgraph of elementary tensor operations.
package compile

import (
	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// Error kinds. Every error returned by Compile and CompileDiag wraps one of
// these; callers test with errors.Is.
var (
	// ErrConfiguration marks a missing or invalid compile parameter
	// (precision, operation-set version, optimization mode, flags).
	ErrConfiguration = errors.New("invalid compiler configuration")

	// ErrUnsupported marks a kernel variant or parameterization the
	// compiler has no formula for.
	ErrUnsupported = errors.New("unsupported kernel construct")

	// ErrShapeMismatch marks operands whose dimensionality a formula
	// cannot accept.
	ErrShapeMismatch = errors.New("operand shape mismatch")
)

// Optim selects the pairwise-distance compilation strategy.
type Optim string

// Distance strategies.
const (
	// OptimNone composes distances purely from elementary operations,
	// portable to any runtime implementing the core vocabulary.
	OptimNone Optim = ""

	// OptimCDist emits the single fused pairwise-distance primitive.
	OptimCDist Optim = "cdist"
)

// Options configures one compilation. The same options propagate top-down
// through the whole expression tree; nothing is inferred bottom-up.
type Options struct {
	// DType is the floating precision of every constant and operation
	// in the compiled subgraph. Float32 or Float64.
	DType tensor.DataType

	// Opset is the operation-set version the emitted nodes target. It is
	// required and must match the builder's version.
	Opset int

	// Optim selects the distance strategy for distance-based kernels.
	Optim Optim

	// OutputNames, when set, names the final node's output. At most one
	// name is accepted; intermediate names are builder-allocated.
	OutputNames []string
}

func (o *Options) validate(b *graph.Builder) error {
	if o.Opset <= 0 {
		return errors.Wrap(ErrConfiguration, "operation-set version must not be zero")
	}
	if o.Opset != b.Opset() {
		return errors.Wrapf(ErrConfiguration, "operation-set version %d does not match builder version %d",
			o.Opset, b.Opset())
	}
	if o.DType != tensor.Float32 && o.DType != tensor.Float64 {
		return errors.Wrapf(ErrConfiguration, "precision must be float32 or float64, got %s", o.DType)
	}
	switch o.Optim {
	case OptimNone, OptimCDist:
	default:
		return errors.Wrapf(ErrConfiguration, "unknown optimization %q", o.Optim)
	}
	if len(o.OutputNames) > 1 {
		return errors.Wrapf(ErrConfiguration, "at most one output name is supported, got %d", len(o.OutputNames))
	}
	return nil
}

func (o *Options) outputName() string {
	if len(o.OutputNames) == 1 {
		return o.OutputNames[0]
	}
	return ""
}
