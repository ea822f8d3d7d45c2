package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

func feed(t *testing.T, values []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromFloat64s(values, shape, tensor.Float64)
	require.NoError(t, err)
	return r
}

func TestEvaluate_SimpleChain(t *testing.T) {
	b, err := NewBuilder("g", 18)
	require.NoError(t, err)
	x, err := b.Input("X", tensor.Float64, []int64{-1})
	require.NoError(t, err)

	out := b.Exp(b.Neg(x), "Y")
	b.MarkOutput(out)

	got, err := Evaluate(b.Graph(), map[string]*tensor.RawTensor{
		"X": feed(t, []float64{0, 1}, tensor.Shape{2}),
	})
	require.NoError(t, err)

	y := got["Y"].AsFloat64()
	assert.InDelta(t, 1.0, y[0], 1e-15)
	assert.InDelta(t, 0.36787944117144233, y[1], 1e-15)
}

func TestEvaluate_WithInitializer(t *testing.T) {
	b, err := NewBuilder("g", 18)
	require.NoError(t, err)
	x, err := b.Input("X", tensor.Float64, nil)
	require.NoError(t, err)

	c, err := tensor.FromFloat64s([]float64{10}, tensor.Shape{1}, tensor.Float64)
	require.NoError(t, err)
	out := b.Add(x, b.Constant(c), "Y")
	b.MarkOutput(out)

	got, err := Evaluate(b.Graph(), map[string]*tensor.RawTensor{
		"X": feed(t, []float64{1, 2}, tensor.Shape{2}),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12}, got["Y"].AsFloat64())
}

func TestEvaluate_ShapeDrivenZeros(t *testing.T) {
	// Shape -> Gather -> Concat -> ConstantOfShape, the dynamic zero-column
	// idiom the compiler leans on.
	b, err := NewBuilder("g", 18)
	require.NoError(t, err)
	x, err := b.Input("X", tensor.Float64, []int64{-1, 3})
	require.NoError(t, err)

	shape := b.Shape(x)
	axis, err := tensor.FromInt64s([]int64{0}, tensor.Shape{1})
	require.NoError(t, err)
	one, err := tensor.FromInt64s([]int64{1}, tensor.Shape{1})
	require.NoError(t, err)
	dim := b.Gather(shape, b.Constant(axis))
	newShape := b.Concat([]*Value{dim, b.Constant(one)})

	zero, err := tensor.FromFloat64s([]float64{0}, tensor.Shape{1}, tensor.Float64)
	require.NoError(t, err)
	out := b.ConstantOfShape(newShape, zero, "Z")
	b.MarkOutput(out)

	got, err := Evaluate(b.Graph(), map[string]*tensor.RawTensor{
		"X": feed(t, make([]float64, 12), tensor.Shape{4, 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 1}, got["Z"].Shape())
}

func TestEvaluate_TopologicalOrder(t *testing.T) {
	// Hand-build a graph whose node list is reversed relative to dataflow.
	g := &Graph{
		Name:  "g",
		Opset: 18,
		Nodes: []Node{
			{Name: "y", OpType: "Exp", Inputs: []string{"mid"}, Outputs: []string{"y"}, Opset: 18},
			{Name: "mid", OpType: "Neg", Inputs: []string{"X"}, Outputs: []string{"mid"}, Opset: 18},
		},
		Inputs:  []ValueInfo{{Name: "X", DataType: tensor.Float64}},
		Outputs: []ValueInfo{{Name: "y", DataType: tensor.Float64}},
	}

	got, err := Evaluate(g, map[string]*tensor.RawTensor{
		"X": feed(t, []float64{0}, tensor.Shape{1}),
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got["y"].AsFloat64()[0], 1e-15)
}

func TestEvaluate_MissingInput(t *testing.T) {
	b, err := NewBuilder("g", 18)
	require.NoError(t, err)
	x, err := b.Input("X", tensor.Float64, nil)
	require.NoError(t, err)
	b.MarkOutput(b.Neg(x, "Y"))

	_, err = Evaluate(b.Graph(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing input")
}

func TestEvaluate_OpsetMismatch(t *testing.T) {
	g := &Graph{
		Name:  "g",
		Opset: 18,
		Nodes: []Node{
			{Name: "y", OpType: "Neg", Inputs: []string{"X"}, Outputs: []string{"y"}, Opset: 11},
		},
		Inputs:  []ValueInfo{{Name: "X", DataType: tensor.Float64}},
		Outputs: []ValueInfo{{Name: "y", DataType: tensor.Float64}},
	}

	_, err := Evaluate(g, map[string]*tensor.RawTensor{
		"X": feed(t, []float64{0}, tensor.Shape{1}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation-set version")
}

func TestEvaluate_UnsupportedOp(t *testing.T) {
	g := &Graph{
		Name:  "g",
		Opset: 18,
		Nodes: []Node{
			{Name: "y", OpType: "Conv", Inputs: []string{"X"}, Outputs: []string{"y"}, Opset: 18},
		},
		Inputs:  []ValueInfo{{Name: "X", DataType: tensor.Float64}},
		Outputs: []ValueInfo{{Name: "y", DataType: tensor.Float64}},
	}

	_, err := Evaluate(g, map[string]*tensor.RawTensor{
		"X": feed(t, []float64{0}, tensor.Shape{1}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operator")
}
