// Package depgraph builds the directed dependency graph of a workspace.
//
// # Overview
//
// The input is a flat list of [Record] values, one per workspace package,
// each naming the packages it depends on. [Build] walks those records from a
// set of root packages and produces a [Graph]: a node per package name and an
// edge per (dependent, dependency) pair.
//
//	g := depgraph.Build(records, depgraph.Options{MaxDepth: depgraph.DefaultMaxDepth})
//	for _, e := range g.Edges() {
//	    fmt.Println(e.From, "->", e.To)
//	}
//
// # Roots
//
// When [Options.RootPackage] is empty every record is a traversal root.
// Otherwise only the record with that exact name is. A root package that is
// not in the list yields an empty graph. Root nodes carry [Node.IsRoot], which
// renderers use for emphasis only.
//
// # Depth
//
// Traversal descends at most [Options.MaxDepth] levels below a root. The
// budget is the only termination guarantee: there is no cycle detection, and
// a cycle A -> B -> A is simply walked until the budget runs out. Node and
// edge creation is idempotent, so revisits never duplicate anything.
//
// A package whose dependencies were already expanded at the same or a
// shallower depth is not expanded again. This does not change the resulting
// graph, it only bounds the number of visits on diamond-shaped or cyclic
// workspaces. [Graph.Stats] reports how many visits were skipped.
//
// # Unknown dependencies
//
// Dependency names that do not match any record (registry packages, typos,
// excluded workspace members) contribute neither a node nor an edge. The
// builder has no error return: any input produces a well-formed graph.
//
// # Concurrency
//
// [Build] is synchronous. The returned [Graph] is immutable and safe for
// concurrent readers.
package depgraph
