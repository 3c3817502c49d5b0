package depgraph

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrDanglingEdge is returned by [Graph.Validate] when an edge references a
// node that is not in the graph.
var ErrDanglingEdge = errors.New("edge endpoint not in graph")

// Record is one package of the workspace as seen by the builder.
type Record struct {
	Name         string   // Unique package name
	Dependencies []string // Names of packages this one depends on, in declared order
}

// Node is a package in the graph.
type Node struct {
	Name   string
	IsRoot bool // Traversal entry point; presentation hint only
}

// Edge is a dependency from one package to another.
type Edge struct {
	From string // Dependent package
	To   string // Dependency
}

func (e Edge) String() string { return e.From + " -> " + e.To }

// Stats describes the work done while building a graph.
type Stats struct {
	Visits  int // traverse calls that passed the depth check
	Skipped int // visits that did not re-expand an already expanded package
}

// Graph is the result of [Build]. It is immutable: accessors return copies.
type Graph struct {
	nodes map[string]*Node
	edges map[Edge]struct{}
	stats Stats
}

func newGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[Edge]struct{}),
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Stats returns traversal statistics.
func (g *Graph) Stats() Stats { return g.stats }

// Node returns the node with the given name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all nodes sorted by name.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, name := range slices.Sorted(maps.Keys(g.nodes)) {
		out = append(out, *g.nodes[name])
	}
	return out
}

// Edges returns all edges sorted by source, then target.
func (g *Graph) Edges() []Edge {
	out := slices.Collect(maps.Keys(g.edges))
	slices.SortFunc(out, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return out
}

// Roots returns the names of root nodes, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for _, n := range g.Nodes() {
		if n.IsRoot {
			roots = append(roots, n.Name)
		}
	}
	return roots
}

// Dependencies returns the sorted targets of edges leaving name.
func (g *Graph) Dependencies(name string) []string {
	var out []string
	for e := range g.edges {
		if e.From == name {
			out = append(out, e.To)
		}
	}
	slices.Sort(out)
	return out
}

// Validate checks that every edge endpoint is a node of the graph.
func (g *Graph) Validate() error {
	for _, e := range g.Edges() {
		if _, ok := g.nodes[e.From]; !ok {
			return fmt.Errorf("%w: %s (source of %s)", ErrDanglingEdge, e.From, e)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return fmt.Errorf("%w: %s (target of %s)", ErrDanglingEdge, e.To, e)
		}
	}
	return nil
}
