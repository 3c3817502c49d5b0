// Package render turns DOT source into images.
//
// # Renderers
//
// A [Renderer] lays out a DOT description and encodes it in an output
// [Format]. Two implementations exist:
//
//   - [Graphviz] runs Graphviz in-process through go-graphviz and needs no
//     installed binaries. It supports every layout engine in [Engines].
//   - [Command] pipes the DOT into an installed Graphviz program such as
//     dot or neato, optionally from a specific directory.
//
// [Cached] wraps either one with a [github.com/matzehuels/wsgraph/pkg/cache.Cache].
//
//	r, _ := render.NewGraphviz("dot")
//	svg, err := r.Render(ctx, dot, render.FormatSVG)
//
// # Formats
//
// [FormatDOT] and [FormatJSON] describe the graph itself and never reach a
// renderer; see [Format.NeedsLayout]. SVG output from [Graphviz] gets a
// normalized viewBox. PDF output from [Graphviz] is produced by converting the
// SVG with rsvg-convert (librsvg), which must be installed.
package render
