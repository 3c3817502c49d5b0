package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
)

func ExampleBuild() {
	records := []depgraph.Record{
		{Name: "app", Dependencies: []string{"lib", "react"}},
		{Name: "lib", Dependencies: []string{"core"}},
		{Name: "core"},
	}

	g := depgraph.Build(records, depgraph.Options{RootPackage: "app", MaxDepth: 1})

	for _, n := range g.Nodes() {
		fmt.Println(n.Name, n.IsRoot)
	}
	for _, e := range g.Edges() {
		fmt.Println(e)
	}
	// Output:
	// app true
	// lib false
	// app -> lib
}

func ExampleBuild_cycle() {
	records := []depgraph.Record{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"a"}},
	}

	g := depgraph.Build(records, depgraph.Options{RootPackage: "a", MaxDepth: depgraph.DefaultMaxDepth})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.Edges())
	// Output:
	// Nodes: 2
	// Edges: [a -> b b -> a]
}
