package graph

import (
	"fmt"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// registerMathOps adds arithmetic operators to the registry.
func (r *Registry) registerMathOps() {
	r.Register("Add", handleAdd)
	r.Register("Sub", handleSub)
	r.Register("Mul", handleMul)
	r.Register("Div", handleDiv)
	r.Register("Pow", handlePow)
	r.Register("Neg", handleNeg)
	r.Register("Exp", handleExp)
	r.Register("Sin", handleSin)
	r.Register("Sqrt", handleSqrt)
	r.Register("Relu", handleRelu)
	r.Register("MatMul", handleMatMul)
	r.Register("CDist", handleCDist)
}

func handleAdd(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("add requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.Add(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleSub(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("sub requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.Sub(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleMul(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("mul requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.Mul(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleDiv(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("div requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.Div(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handlePow(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("pow requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.Pow(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleNeg(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("neg requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.Neg(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleExp(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("exp requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.Exp(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleSin(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("sin requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.Sin(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleSqrt(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("sqrt requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.Sqrt(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleRelu(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("relu requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.Relu(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleMatMul(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("matMul requires 2 inputs, got %d", len(inputs))
	}
	result, err := tensor.MatMul(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleCDist(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("cdist requires 2 inputs, got %d", len(inputs))
	}
	metric := GetAttrString(node, "metric", "euclidean")
	result, err := tensor.CDist(inputs[0], inputs[1], metric)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}
