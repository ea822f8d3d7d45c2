package graph

import (
	"testing"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	essentialOps := []string{
		"Add", "Sub", "Mul", "Div", "Pow", "Neg", "Exp", "Sin", "Sqrt",
		"MatMul", "Transpose", "Squeeze", "Gather", "Concat",
		"ReduceSumSquare", "ReduceL2",
		"Identity", "Shape", "ConstantOfShape", "EyeLike", "CDist",
	}

	for _, op := range essentialOps {
		if _, ok := r.Get(op); !ok {
			t.Errorf("Expected operator %s to be registered", op)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("UnknownOp"); ok {
		t.Error("Expected unknown operator to not be found")
	}
}

func TestRegisterCustomOp(t *testing.T) {
	r := NewRegistry()

	r.Register("MyCustomOp", func(_ *Node, _ []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
		return nil, nil
	})

	if _, ok := r.Get("MyCustomOp"); !ok {
		t.Error("Expected custom operator to be registered")
	}
}

func TestRegistryExecuteUnsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Execute(&Node{OpType: "Conv"}, nil)
	if err == nil {
		t.Error("Expected error for unsupported operator")
	}
}
