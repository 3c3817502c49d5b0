package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
)

// Document is the JSON form of a graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a package in a [Document].
type Node struct {
	Name    string `json:"name"`
	Root    bool   `json:"root,omitempty"`
	Version string `json:"version,omitempty"`
}

// Edge is a dependency in a [Document].
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromGraph converts g to a [Document]. versions may be nil.
func FromGraph(g *depgraph.Graph, versions map[string]string) Document {
	nodes, edges := g.Nodes(), g.Edges()
	doc := Document{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = Node{Name: n.Name, Root: n.IsRoot, Version: versions[n.Name]}
	}
	for i, e := range edges {
		doc.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return doc
}

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g *depgraph.Graph, versions map[string]string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g, versions)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *depgraph.Graph, versions map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, versions, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
