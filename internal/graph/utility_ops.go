package graph

import (
	"fmt"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// registerUtilityOps adds pass-through and constant-construction operators.
func (r *Registry) registerUtilityOps() {
	r.Register("Identity", handleIdentity)
	r.Register("Shape", handleShape)
	r.Register("ConstantOfShape", handleConstantOfShape)
	r.Register("EyeLike", handleEyeLike)
}

func handleIdentity(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("identity requires 1 input, got %d", len(inputs))
	}
	return inputs, nil
}

func handleShape(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("shape requires 1 input, got %d", len(inputs))
	}
	shape := inputs[0].Shape()
	dims := make([]int64, len(shape))
	for i, d := range shape {
		dims[i] = int64(d)
	}
	result, err := tensor.FromInt64s(dims, tensor.Shape{len(dims)})
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	return []*tensor.RawTensor{result}, nil
}

func handleConstantOfShape(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("constantOfShape requires 1 input (shape), got %d", len(inputs))
	}
	value := GetAttrTensor(node, "value")
	if value == nil {
		return nil, fmt.Errorf("constantOfShape: missing value attribute")
	}
	result, err := tensor.ConstantOfShape(inputs[0], value)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleEyeLike(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("eyeLike requires 1 input, got %d", len(inputs))
	}
	result, err := tensor.EyeLike(inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}
