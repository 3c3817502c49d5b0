package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
)

// ReadJSON decodes a [Document] from r.
//
// ReadJSON returns an error if the JSON is malformed, a node name is empty
// or declared twice, or an edge references an undeclared node. It does not
// close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("node without name")
		}
		if seen[n.Name] {
			return nil, fmt.Errorf("node %s: duplicate name", n.Name)
		}
		seen[n.Name] = true
	}
	for _, e := range doc.Edges {
		if !seen[e.From] || !seen[e.To] {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, depgraph.ErrDanglingEdge)
		}
	}
	return &doc, nil
}

// ImportJSON reads a JSON file at path with [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Records converts the document back into builder input: one record per
// node, with its outgoing edges as dependencies.
func (d *Document) Records() []depgraph.Record {
	deps := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		deps[e.From] = append(deps[e.From], e.To)
	}
	records := make([]depgraph.Record, len(d.Nodes))
	for i, n := range d.Nodes {
		records[i] = depgraph.Record{Name: n.Name, Dependencies: deps[n.Name]}
	}
	return records
}

// Roots returns the names of nodes marked as roots.
func (d *Document) Roots() []string {
	var roots []string
	for _, n := range d.Nodes {
		if n.Root {
			roots = append(roots, n.Name)
		}
	}
	return roots
}
