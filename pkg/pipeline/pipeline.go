// Package pipeline runs the build → describe → render sequence shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Build: turn the workspace packages into a [depgraph.Graph]
//  2. Describe: write the graph as DOT or JSON
//  3. Render: lay out the DOT with a [render.Renderer] for image formats
//
// # Usage
//
//	runner := pipeline.NewRunner(renderer, logger)
//	res, err := runner.Execute(ctx, ws, pipeline.Options{
//	    RootPackage: "app",
//	    Format:      render.FormatSVG,
//	})
//	os.Stdout.Write(res.Output)
package pipeline

import (
	"time"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/render"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Options configures a pipeline run.
type Options struct {
	// RootPackage restricts the graph to one starting package.
	RootPackage string `json:"root,omitempty"`
	// MaxDepth is the traversal depth. Negative values are rejected.
	MaxDepth int `json:"depth"`
	// Kinds selects which dependency maps become edges. Zero means prod only.
	Kinds workspace.DepKind `json:"-"`
	// Format is the output format. Empty means DOT.
	Format render.Format `json:"format"`
	// Detailed adds versions to node labels.
	Detailed bool `json:"detailed,omitempty"`
	// RankDir is the DOT rank direction. Empty means TB.
	RankDir string `json:"rankdir,omitempty"`
	// RequireRoot makes an unknown RootPackage an error instead of an empty
	// graph.
	RequireRoot bool `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and checks value ranges.
func (o *Options) ValidateAndSetDefaults() error {
	if o.MaxDepth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "depth must not be negative, got %d", o.MaxDepth)
	}
	if o.Kinds == 0 {
		o.Kinds = workspace.KindProd
	}
	if o.Format == "" {
		o.Format = render.FormatDOT
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if o.RankDir == "" {
		o.RankDir = "TB"
	}
	if err := nodelink.ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	if o.RootPackage != "" {
		if err := errs.ValidatePackageName(o.RootPackage); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Graph  *depgraph.Graph
	Format render.Format
	Output []byte
	Stats  Stats
}

// Stats describes a pipeline run.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Visits     int
	BuildTime  time.Duration
	RenderTime time.Duration
	CacheHit   bool
}
