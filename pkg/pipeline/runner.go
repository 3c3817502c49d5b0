package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
	wsio "github.com/matzehuels/wsgraph/pkg/io"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/render"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner
// can serve concurrent requests as long as its renderer can.
type Runner struct {
	Renderer render.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil renderer selects in-process Graphviz with
// the default engine; a nil logger discards output.
func NewRunner(r render.Renderer, logger *log.Logger) *Runner {
	if r == nil {
		r, _ = render.NewGraphviz(render.DefaultEngine)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Renderer: r, Logger: logger}
}

// Execute builds the dependency graph of ws and encodes it in opts.Format.
func (r *Runner) Execute(ctx context.Context, ws *workspace.Workspace, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.RootPackage != "" {
		if _, ok := ws.Find(opts.RootPackage); !ok {
			if opts.RequireRoot {
				return nil, errs.New(errs.ErrCodePackageNotFound, "no package named %q in workspace", opts.RootPackage)
			}
			r.Logger.Warn("root package not in workspace, graph will be empty", "package", opts.RootPackage)
		}
	}

	res := &Result{Format: opts.Format}

	start := time.Now()
	g := r.Build(ws, opts)
	res.Graph = g
	res.Stats.BuildTime = time.Since(start)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	res.Stats.Visits = g.Stats().Visits

	observability.Pipeline().OnBuildComplete(ctx, opts.RootPackage, g.NodeCount(), g.EdgeCount(), res.Stats.BuildTime)
	r.Logger.Debug("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"visits", g.Stats().Visits,
		"skipped", g.Stats().Skipped,
		"duration", res.Stats.BuildTime)

	if err := r.encode(ctx, g, versionsFor(ws, opts), opts, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ExecuteDocument re-encodes a previously exported graph. The graph is
// rebuilt from the document's edges with enough depth to reach every node.
// A document with exactly one root keeps that root; otherwise every node
// becomes one. opts.RootPackage and opts.MaxDepth are ignored.
func (r *Runner) ExecuteDocument(ctx context.Context, doc *wsio.Document, opts Options) (*Result, error) {
	opts.RootPackage = ""
	opts.MaxDepth = 0
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var rootPkg string
	if roots := doc.Roots(); len(roots) == 1 {
		rootPkg = roots[0]
	}

	res := &Result{Format: opts.Format}
	start := time.Now()
	g := depgraph.Build(doc.Records(), depgraph.Options{
		RootPackage: rootPkg,
		MaxDepth:    len(doc.Nodes),
	})
	res.Graph = g
	res.Stats.BuildTime = time.Since(start)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	res.Stats.Visits = g.Stats().Visits
	observability.Pipeline().OnBuildComplete(ctx, rootPkg, g.NodeCount(), g.EdgeCount(), res.Stats.BuildTime)

	versions := make(map[string]string)
	for _, n := range doc.Nodes {
		if n.Version != "" {
			versions[n.Name] = n.Version
		}
	}
	if err := r.encode(ctx, g, versions, opts, res); err != nil {
		return nil, err
	}
	return res, nil
}

// encode writes g in opts.Format into res.Output.
func (r *Runner) encode(ctx context.Context, g *depgraph.Graph, versions map[string]string, opts Options, res *Result) error {
	if opts.Format == render.FormatJSON {
		var buf bytes.Buffer
		if err := wsio.WriteJSON(g, versions, &buf); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
		}
		res.Output = buf.Bytes()
		return nil
	}

	if !opts.Detailed {
		versions = nil
	}
	dot, err := nodelink.ToDOT(g, nodelink.Options{
		Detailed: opts.Detailed,
		Versions: versions,
		RankDir:  opts.RankDir,
	})
	if err != nil {
		return err
	}
	if !opts.Format.NeedsLayout() {
		res.Output = []byte(dot)
		return nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, r.Renderer.Name(), string(opts.Format))
	start := time.Now()
	out, hit, err := r.render(ctx, dot, opts.Format)
	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, r.Renderer.Name(), string(opts.Format), len(out), res.Stats.RenderTime, err)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	res.Output = out
	res.Stats.CacheHit = hit

	r.Logger.Debug("rendered graph",
		"renderer", r.Renderer.Name(),
		"format", opts.Format,
		"bytes", len(out),
		"cached", hit,
		"duration", res.Stats.RenderTime)
	return nil
}

// Build runs only the graph stage.
func (r *Runner) Build(ws *workspace.Workspace, opts Options) *depgraph.Graph {
	kinds := opts.Kinds
	if kinds == 0 {
		kinds = workspace.KindProd
	}
	return depgraph.Build(ws.Records(kinds), depgraph.Options{
		RootPackage: opts.RootPackage,
		MaxDepth:    opts.MaxDepth,
	})
}

func (r *Runner) render(ctx context.Context, dot string, format render.Format) ([]byte, bool, error) {
	if c, ok := r.Renderer.(*render.Cached); ok {
		return c.RenderWithCacheInfo(ctx, dot, format)
	}
	out, err := r.Renderer.Render(ctx, dot, format)
	return out, false, err
}

func versionsFor(ws *workspace.Workspace, opts Options) map[string]string {
	if !opts.Detailed && opts.Format != render.FormatJSON {
		return nil
	}
	return ws.Versions()
}
