package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
)

func sampleGraph() *depgraph.Graph {
	return depgraph.Build([]depgraph.Record{
		{Name: "app", Dependencies: []string{"lib", "core"}},
		{Name: "lib", Dependencies: []string{"core"}},
		{Name: "core"},
	}, depgraph.Options{RootPackage: "app", MaxDepth: 3})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(), map[string]string{"lib": "2.0.0"}, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	want := `{
  "nodes": [
    {
      "name": "app",
      "root": true
    },
    {
      "name": "core"
    },
    {
      "name": "lib",
      "version": "2.0.0"
    }
  ],
  "edges": [
    {
      "from": "app",
      "to": "core"
    },
    {
      "from": "app",
      "to": "lib"
    },
    {
      "from": "lib",
      "to": "core"
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(depgraph.Build(nil, depgraph.Options{}), nil, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) || !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("empty graph should encode empty arrays, got %s", buf.String())
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := sampleGraph()
	if err := ExportJSON(g, nil, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	doc, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !slices.Equal(doc.Roots(), []string{"app"}) {
		t.Errorf("Roots() = %v, want [app]", doc.Roots())
	}

	rebuilt := depgraph.Build(doc.Records(), depgraph.Options{RootPackage: "app", MaxDepth: 3})
	if !slices.Equal(rebuilt.Edges(), g.Edges()) {
		t.Errorf("rebuilt edges = %v, want %v", rebuilt.Edges(), g.Edges())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"nodes": [`},
		{"empty name", `{"nodes": [{"name": ""}], "edges": []}`},
		{"duplicate", `{"nodes": [{"name": "a"}, {"name": "a"}], "edges": []}`},
		{"dangling", `{"nodes": [{"name": "a"}], "edges": [{"from": "a", "to": "b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadJSON() should fail")
			}
		})
	}

	_, err := ReadJSON(strings.NewReader(tests[3].in))
	if !errors.Is(err, depgraph.ErrDanglingEdge) {
		t.Errorf("dangling edge err = %v, want ErrDanglingEdge", err)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON() should fail for a missing file")
	}
}
