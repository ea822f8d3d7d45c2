package compile

import (
	"github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// Operand is a point set supplied to the compiler: either a graph-time
// symbolic value of unknown row count, or a compile-time-known host tensor.
// Formulas constant-fold the numeric case (transposing or normalizing in
// host code) and emit the equivalent ops for the symbolic case; both
// branches produce the same mathematical result.
type Operand struct {
	value *graph.Value
	num   *tensor.RawTensor
}

// Symbolic wraps a graph value as an operand.
func Symbolic(v *graph.Value) *Operand {
	return &Operand{value: v}
}

// Numeric wraps a compile-time-known host tensor as an operand.
func Numeric(t *tensor.RawTensor) *Operand {
	return &Operand{num: t}
}

func (o *Operand) isNumeric() bool {
	return o.num != nil
}

// dims returns the operand's dimensionality if known: always known for
// numeric operands, declared dims (possibly nil) for symbolic ones.
func (o *Operand) dims() []int64 {
	if o.num != nil {
		dims := make([]int64, len(o.num.Shape()))
		for i, d := range o.num.Shape() {
			dims[i] = int64(d)
		}
		return dims
	}
	return o.value.Dims()
}
