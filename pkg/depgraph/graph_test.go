package depgraph

import (
	"errors"
	"slices"
	"testing"
)

func TestGraphAccessorsSorted(t *testing.T) {
	g := Build([]Record{
		{Name: "web", Dependencies: []string{"ui", "api"}},
		{Name: "api", Dependencies: []string{"db"}},
		{Name: "ui"},
		{Name: "db"},
	}, Options{RootPackage: "web", MaxDepth: DefaultMaxDepth})

	if got := nodeNames(g); !slices.Equal(got, []string{"api", "db", "ui", "web"}) {
		t.Errorf("Nodes() = %v, want sorted names", got)
	}

	want := []Edge{{"api", "db"}, {"web", "api"}, {"web", "ui"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	if got := g.Dependencies("web"); !slices.Equal(got, []string{"api", "ui"}) {
		t.Errorf("Dependencies(web) = %v", got)
	}
	if got := g.Roots(); !slices.Equal(got, []string{"web"}) {
		t.Errorf("Roots() = %v", got)
	}
}

func TestGraphNodeReturnsCopy(t *testing.T) {
	g := Build(chain(), Options{RootPackage: "app", MaxDepth: 1})

	n, ok := g.Node("lib")
	if !ok {
		t.Fatal("Node(lib) not found")
	}
	n.IsRoot = true

	again, _ := g.Node("lib")
	if again.IsRoot {
		t.Error("mutating a returned node changed the graph")
	}
}

func TestGraphValidate(t *testing.T) {
	g := newGraph()
	g.nodes["a"] = &Node{Name: "a"}
	g.edges[Edge{From: "a", To: "ghost"}] = struct{}{}

	if err := g.Validate(); !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("Validate() = %v, want ErrDanglingEdge", err)
	}
}

func TestEdgeString(t *testing.T) {
	if got := (Edge{From: "a", To: "b"}).String(); got != "a -> b" {
		t.Errorf("String() = %q", got)
	}
}
