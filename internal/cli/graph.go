package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Print or render the workspace dependency graph",
		Long: `Print the dependency graph of the workspace in dir (default: the current
directory). Only dependencies on other workspace packages become edges.

Without --output the graph is written to stdout. Image formats are laid out
with Graphviz, either in-process or with an installed command (-c/-d).`,
		Example: `  wsgraph graph
  wsgraph graph -p app -D 2 --rankdir LR
  wsgraph graph -f svg -o deps.svg
  wsgraph graph -c dot -f png -o deps.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			cfg, err := loadConfig(cmd, dir, configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			stderr := cmd.ErrOrStderr()

			prog := newProgress(logger)
			ws, err := workspace.Discover(ctx, dir, workspace.Options{Logger: logger})
			if err != nil {
				return err
			}
			prog.done("Discovered %s", countOf(len(ws.Packages), string(ws.Kind)+" package"))

			opts := pipelineOptions(cfg)
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, logger)
			if format.NeedsLayout() {
				r, ch, err := c.newRenderer(ctx, cfg, noCache)
				if err != nil {
					return err
				}
				defer ch.Close()
				runner = pipeline.NewRunner(r, logger)
			}

			var spinner *Spinner
			if cfg.Output != "" && format.NeedsLayout() {
				spinner = newSpinner(ctx, stderr, "Rendering "+string(format)+"...")
				spinner.Start()
				defer spinner.Stop()
			}
			res, err := runner.Execute(ctx, ws, opts)
			if spinner != nil {
				err = spinner.settle(err, "Rendering failed")
			}
			if err != nil {
				return err
			}
			logger.Debug("pipeline finished",
				"visits", res.Stats.Visits,
				"build", res.Stats.BuildTime,
				"render", res.Stats.RenderTime)

			if cfg.Output == "" {
				_, err := cmd.OutOrStdout().Write(res.Output)
				return err
			}
			if err := os.WriteFile(cfg.Output, res.Output, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeIO, err, "write %s", cfg.Output)
			}
			wrote := fmt.Sprintf("Wrote %s graph", res.Format)
			if spinner != nil {
				spinner.StopWithSuccess(wrote)
			} else {
				printSuccess(stderr, "%s", wrote)
			}
			printFile(stderr, cfg.Output)
			printStats(stderr, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.CacheHit)
			return nil
		},
	}

	addGraphFlags(cmd)
	f := cmd.Flags()
	f.StringP("format", "f", "dot", "output format: dot, json, svg, png, jpg, pdf")
	f.StringP("output", "o", "", "write to this file instead of stdout")
	f.StringVar(&configPath, "config", "", "config file (default: <dir>/.wsgraph.yml)")
	f.BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
