// Package main provides the covgraph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/covgraph-ml/covgraph/compiler"
	"github.com/covgraph-ml/covgraph/graph"
	"github.com/covgraph-ml/covgraph/kernel"
	"github.com/covgraph-ml/covgraph/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("covgraph %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("covgraph - covariance-kernel to computation-graph compiler")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Compile a sample kernel and print the emitted graph")
}

// demo compiles Sum(RBF, WhiteKernel) and lists the emitted nodes.
func demo() error {
	b, err := graph.NewBuilder("demo", graph.DefaultOpset)
	if err != nil {
		return err
	}
	x, err := b.Input("X", tensor.Float64, []int64{-1, 2})
	if err != nil {
		return err
	}

	k := kernel.Sum(kernel.RBF(1.0), kernel.White(0.1))
	out, err := compiler.Compile(b, k, x, nil, compiler.Options{
		DType:       tensor.Float64,
		Opset:       graph.DefaultOpset,
		OutputNames: []string{"K"},
	})
	if err != nil {
		return err
	}
	b.MarkOutput(out)

	g := b.Graph()
	fmt.Printf("kernel:  %s\n", k)
	fmt.Printf("opset:   %d\n", g.Opset)
	fmt.Printf("output:  %s\n\n", out.Name())
	for _, n := range g.Nodes {
		fmt.Printf("  %-20s %-16s %v -> %v\n", n.Name, n.OpType, n.Inputs, n.Outputs)
	}
	return nil
}
