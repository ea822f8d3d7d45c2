package graph

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// Evaluate executes a graph on the CPU reference registry, feeding the given
// input tensors, and returns the tensors for the graph's declared outputs.
// It is the in-repo stand-in for any runtime understanding the elementary
// operation set.
func Evaluate(g *Graph, feeds map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	registry := NewRegistry()

	values := make(map[string]*tensor.RawTensor)
	for i := range g.Initializers {
		values[g.Initializers[i].Name] = g.Initializers[i].Value
	}
	for name, t := range feeds {
		values[name] = t
	}

	for i := range g.Inputs {
		if _, ok := values[g.Inputs[i].Name]; !ok {
			return nil, fmt.Errorf("missing input: %s", g.Inputs[i].Name)
		}
	}

	// Execute nodes in topological order.
	sorted := topologicalSort(g.Nodes)
	for nodeIdx := range sorted {
		node := &sorted[nodeIdx]
		if node.Opset != g.Opset {
			return nil, fmt.Errorf("node %s: operation-set version %d does not match graph version %d",
				node.Name, node.Opset, g.Opset)
		}

		nodeInputs := make([]*tensor.RawTensor, len(node.Inputs))
		for i, inputName := range node.Inputs {
			t, ok := values[inputName]
			if !ok {
				return nil, fmt.Errorf("node %s: missing input %s", node.Name, inputName)
			}
			nodeInputs[i] = t
		}

		klog.V(2).Infof("eval node %s (%s)", node.Name, node.OpType)
		outputs, err := registry.Execute(node, nodeInputs)
		if err != nil {
			return nil, fmt.Errorf("node %s (%s): %w", node.Name, node.OpType, err)
		}

		for i, outputName := range node.Outputs {
			if i < len(outputs) {
				values[outputName] = outputs[i]
			}
		}
	}

	result := make(map[string]*tensor.RawTensor)
	for i := range g.Outputs {
		name := g.Outputs[i].Name
		t, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("missing output: %s", name)
		}
		result[name] = t
	}

	return result, nil
}

// topologicalSort orders nodes so dependencies execute before dependents.
func topologicalSort(nodes []Node) []Node {
	outputToNode := make(map[string]int)
	for i := range nodes {
		for _, output := range nodes[i].Outputs {
			outputToNode[output] = i
		}
	}

	visited := make([]bool, len(nodes))
	result := make([]Node, 0, len(nodes))

	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true

		for _, input := range nodes[i].Inputs {
			if depIdx, ok := outputToNode[input]; ok {
				visit(depIdx)
			}
		}

		result = append(result, nodes[i])
	}

	for i := range nodes {
		visit(i)
	}

	return result
}
