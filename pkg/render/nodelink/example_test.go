package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := depgraph.Build([]depgraph.Record{
		{Name: "app", Dependencies: []string{"auth", "db"}},
		{Name: "auth", Dependencies: []string{"db"}},
		{Name: "db"},
	}, depgraph.Options{RootPackage: "app", MaxDepth: depgraph.DefaultMaxDepth})

	dot, _ := nodelink.ToDOT(g, nodelink.Options{RankDir: "LR"})
	fmt.Print(dot)
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   node [shape=box, style=rounded];
	//
	//   "app" [style="rounded,filled"];
	//   "auth";
	//   "db";
	//
	//   "app" -> "auth";
	//   "app" -> "db";
	//   "auth" -> "db";
	// }
}
