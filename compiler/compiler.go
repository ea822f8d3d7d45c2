// Package compiler provides the public API for compiling covariance-kernel
// expressions into elementary-operation graphs.
//
// A hosting framework supplies a kernel expression tree, a symbolic input
// point set, an optional training set (symbolic or compile-time-known), a
// floating precision, an operation-set version, and optionally a distance
// optimization mode and an output name. The compiler returns a handle to
// the emitted subgraph's root.
//
// Example:
//
//	b, _ := graph.NewBuilder("gp", graph.DefaultOpset)
//	x, _ := b.Input("X", tensor.Float64, []int64{-1, 1})
//	k := kernel.Sum(kernel.RBF(1.0), kernel.White(0.1))
//	out, err := compiler.Compile(b, k, x, nil, compiler.Options{
//		DType:       tensor.Float64,
//		Opset:       graph.DefaultOpset,
//		OutputNames: []string{"K"},
//	})
package compiler

import (
	"github.com/covgraph-ml/covgraph/graph"
	"github.com/covgraph-ml/covgraph/internal/compile"
	"github.com/covgraph-ml/covgraph/kernel"
	"github.com/covgraph-ml/covgraph/tensor"
)

// Options configures one compilation. See compile.Options.
type Options = compile.Options

// Optim selects the pairwise-distance compilation strategy.
type Optim = compile.Optim

// Distance strategies.
const (
	// OptimNone composes distances purely from elementary operations.
	OptimNone Optim = compile.OptimNone

	// OptimCDist emits the single fused pairwise-distance primitive.
	OptimCDist Optim = compile.OptimCDist
)

// Error kinds, for errors.Is.
var (
	ErrConfiguration = compile.ErrConfiguration
	ErrUnsupported   = compile.ErrUnsupported
	ErrShapeMismatch = compile.ErrShapeMismatch
)

// Operand is a point set supplied to the compiler: symbolic or
// compile-time-known.
type Operand = compile.Operand

// Symbolic wraps a graph value as an operand.
func Symbolic(v *graph.Value) *Operand {
	return compile.Symbolic(v)
}

// Numeric wraps a compile-time-known host tensor as an operand.
func Numeric(t *tensor.RawTensor) *Operand {
	return compile.Numeric(t)
}

// Compile emits a subgraph computing the full kernel matrix between X and
// the training set (X paired with itself when xTrain is nil) and returns
// the subgraph root.
func Compile(b *graph.Builder, k kernel.Kernel, x *graph.Value, xTrain *Operand, opts Options) (*graph.Value, error) {
	return compile.Compile(b, k, x, xTrain, opts)
}

// CompileDiag emits a subgraph computing only the diagonal of the kernel
// matrix of X against itself, as a vector of length n_X.
func CompileDiag(b *graph.Builder, k kernel.Kernel, x *graph.Value, opts Options) (*graph.Value, error) {
	return compile.CompileDiag(b, k, x, opts)
}
