package graph

import (
	"fmt"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// OpHandler processes a node and returns its output tensors.
type OpHandler func(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error)

// Registry maps operator types to handler functions.
type Registry struct {
	handlers map[string]OpHandler
}

// NewRegistry creates a registry covering the elementary operation set the
// kernel compiler emits.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]OpHandler),
	}

	r.registerMathOps()
	r.registerShapeOps()
	r.registerUtilityOps()

	return r
}

// Register adds a custom operator handler.
func (r *Registry) Register(opType string, handler OpHandler) {
	r.handlers[opType] = handler
}

// Get returns the handler for an operator type.
func (r *Registry) Get(opType string) (OpHandler, bool) {
	h, ok := r.handlers[opType]
	return h, ok
}

// Execute runs an operator with the given inputs.
func (r *Registry) Execute(node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	handler, ok := r.handlers[node.OpType]
	if !ok {
		return nil, fmt.Errorf("unsupported operator: %s", node.OpType)
	}
	return handler(node, inputs)
}

// SupportedOps returns a list of all supported operator types.
func (r *Registry) SupportedOps() []string {
	ops := make([]string, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, op)
	}
	return ops
}
