// Package graph defines the elementary-operation dataflow graph the kernel
// compiler targets: named-value nodes over a small tensor-op vocabulary, a
// builder that allocates collision-free names, and a reference evaluator.
package graph

import (
	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// Attribute types.
const (
	AttrUndefined = 0
	AttrFloat     = 1
	AttrInt       = 2
	AttrString    = 3
	AttrTensor    = 4
	AttrFloats    = 6
	AttrInts      = 7
)

// Graph represents a compiled computation graph.
type Graph struct {
	Name         string      // Graph name
	Opset        int         // Operation-set version the nodes target
	Nodes        []Node      // Operation nodes
	Inputs       []ValueInfo // Graph inputs
	Outputs      []ValueInfo // Graph outputs
	Initializers []Tensor    // Constant tensors
}

// Node represents a single operation.
type Node struct {
	Name       string      // Node name
	OpType     string      // Operation type (e.g. "MatMul", "Exp")
	Domain     string      // Custom domain (empty for the core vocabulary)
	Inputs     []string    // Input value names
	Outputs    []string    // Output value names
	Attributes []Attribute // Operation attributes
	Opset      int         // Operation-set version tag
}

// Tensor is a named constant embedded in the graph.
type Tensor struct {
	Name  string
	Value *tensor.RawTensor
}

// ValueInfo describes an input or output value.
// A dimension of -1 means unknown at compile time.
type ValueInfo struct {
	Name     string
	DataType tensor.DataType
	Dims     []int64
}

// Attribute represents a node attribute.
type Attribute struct {
	Name   string
	Type   int32
	F      float64
	I      int64
	S      string
	Floats []float64
	Ints   []int64
	T      *tensor.RawTensor
}

// GetAttrInt returns an integer attribute or a default value.
func GetAttrInt(node *Node, name string, defaultVal int64) int64 {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return node.Attributes[i].I
		}
	}
	return defaultVal
}

// GetAttrInts returns an integer array attribute.
func GetAttrInts(node *Node, name string) []int64 {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return node.Attributes[i].Ints
		}
	}
	return nil
}

// GetAttrString returns a string attribute or a default value.
func GetAttrString(node *Node, name, defaultVal string) string {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return string(node.Attributes[i].S)
		}
	}
	return defaultVal
}

// GetAttrTensor returns a tensor attribute, or nil.
func GetAttrTensor(node *Node, name string) *tensor.RawTensor {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return node.Attributes[i].T
		}
	}
	return nil
}
