// Package nodelink turns a dependency graph into Graphviz DOT source.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{})
//
// The output is a plain description with no layout applied. It can be written
// out as is, or handed to a [github.com/matzehuels/wsgraph/pkg/render.Renderer]
// to produce SVG, PNG, JPG or PDF.
//
// # Options
//
//   - Detailed: node labels carry the package version on a second line
//   - RankDir: TB (default), LR, BT or RL
//
// Root nodes, the traversal entry points, are drawn filled. Everything else
// uses rounded boxes.
package nodelink
