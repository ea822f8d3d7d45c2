package graph

import (
	"fmt"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// registerShapeOps adds shape-manipulation operators to the registry.
func (r *Registry) registerShapeOps() {
	r.Register("Transpose", handleTranspose)
	r.Register("Squeeze", handleSqueeze)
	r.Register("Gather", handleGather)
	r.Register("Concat", handleConcat)
	r.Register("ReduceSumSquare", handleReduceSumSquare)
	r.Register("ReduceL2", handleReduceL2)
}

func handleTranspose(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("transpose requires 1 input, got %d", len(inputs))
	}
	perm64 := GetAttrInts(node, "perm")
	perm := make([]int, len(perm64))
	for i, p := range perm64 {
		perm[i] = int(p)
	}
	result, err := tensor.Transpose(inputs[0], perm)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleSqueeze(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("squeeze requires 1 input, got %d", len(inputs))
	}
	axes64 := GetAttrInts(node, "axes")
	axes := make([]int, len(axes64))
	for i, a := range axes64 {
		axes[i] = int(a)
	}
	result, err := tensor.Squeeze(inputs[0], axes)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleGather(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("gather requires 2 inputs (data, indices), got %d", len(inputs))
	}
	result, err := tensor.Gather(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleConcat(_ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("concat requires at least 1 input")
	}
	result, err := tensor.Concat(inputs...)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleReduceSumSquare(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("reduceSumSquare requires 1 input, got %d", len(inputs))
	}
	axes, keepdims := reductionAttrs(node)
	result, err := tensor.ReduceSumSquare(inputs[0], axes, keepdims)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func handleReduceL2(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("reduceL2 requires 1 input, got %d", len(inputs))
	}
	axes, keepdims := reductionAttrs(node)
	result, err := tensor.ReduceL2(inputs[0], axes, keepdims)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{result}, nil
}

func reductionAttrs(node *Node) ([]int, bool) {
	axes64 := GetAttrInts(node, "axes")
	axes := make([]int, len(axes64))
	for i, a := range axes64 {
		axes[i] = int(a)
	}
	keepdims := GetAttrInt(node, "keepdims", 1) != 0
	return axes, keepdims
}
