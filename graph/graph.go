// Package graph provides the public API for the elementary-operation
// dataflow graphs the covgraph compiler emits: the graph model, the
// builder that hosting frameworks splice compiled subgraphs into, and a
// CPU reference evaluator.
//
// Example:
//
//	b, err := graph.NewBuilder("gp_kernel", graph.DefaultOpset)
//	x, err := b.Input("X", tensor.Float64, []int64{-1, 2})
//	// ... compile kernels against x, then:
//	outs, err := graph.Evaluate(b.Graph(), feeds)
package graph

import (
	internalgraph "github.com/covgraph-ml/covgraph/internal/graph"
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// DefaultOpset is the current revision of the elementary-operation
// vocabulary.
const DefaultOpset = 18

// Graph represents a compiled computation graph.
type Graph = internalgraph.Graph

// Node represents a single operation node.
type Node = internalgraph.Node

// Attribute represents a node attribute.
type Attribute = internalgraph.Attribute

// ValueInfo describes a graph input or output value.
type ValueInfo = internalgraph.ValueInfo

// Value is an opaque handle to a named value in a graph under construction.
type Value = internalgraph.Value

// Builder constructs a Graph by appending nodes.
type Builder = internalgraph.Builder

// Registry maps operator types to evaluator handlers.
type Registry = internalgraph.Registry

// NewBuilder creates a Builder targeting the given operation-set version.
// A zero or negative version is a configuration error.
func NewBuilder(name string, opset int) (*Builder, error) {
	return internalgraph.NewBuilder(name, opset)
}

// NewRegistry creates a registry covering the elementary operation set.
func NewRegistry() *Registry {
	return internalgraph.NewRegistry()
}

// Evaluate executes a graph on the CPU reference registry and returns the
// tensors for the graph's declared outputs.
func Evaluate(g *Graph, feeds map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	return internalgraph.Evaluate(g, feeds)
}
