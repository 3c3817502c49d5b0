package nodelink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// RankDirs lists the accepted values for [Options.RankDir].
var RankDirs = []string{"TB", "LR", "BT", "RL"}

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the package version below the name in node labels.
	Detailed bool
	// Versions maps package names to versions for detailed labels.
	Versions map[string]string
	// RankDir is the Graphviz rank direction. Empty means TB.
	RankDir string
}

// ToDOT converts a dependency graph to Graphviz DOT source.
//
// Nodes and edges are emitted in name order, so equal graphs always produce
// byte-identical output. Root nodes are filled.
func ToDOT(g *depgraph.Graph, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := WriteDOT(&buf, g, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteDOT writes the DOT source of g to w. See [ToDOT].
func WriteDOT(w io.Writer, g *depgraph.Graph, opts Options) error {
	if err := g.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "invalid graph")
	}
	rankdir, err := normalizeRankDir(opts.RankDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  node [shape=box, style=rounded];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n, fmtLabel(n, opts))
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q;\n", n.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	if g.EdgeCount() > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	_, err = w.Write(buf.Bytes())
	return err
}

func normalizeRankDir(s string) (string, error) {
	if s == "" {
		return "TB", nil
	}
	up := strings.ToUpper(s)
	for _, d := range RankDirs {
		if up == d {
			return d, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidInput,
		"unknown rankdir %q (want one of %s)", s, strings.Join(RankDirs, ", "))
}

// ValidateRankDir reports whether s is an accepted rank direction.
func ValidateRankDir(s string) error {
	_, err := normalizeRankDir(s)
	return err
}

func fmtLabel(n depgraph.Node, opts Options) string {
	if !opts.Detailed {
		return ""
	}
	v := opts.Versions[n.Name]
	if v == "" {
		return ""
	}
	return n.Name + "\n" + v
}

func fmtAttrs(n depgraph.Node, label string) []string {
	var attrs []string
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	if n.IsRoot {
		attrs = append(attrs, `style="rounded,filled"`)
	}
	return attrs
}
