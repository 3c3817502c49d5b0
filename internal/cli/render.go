package cli

import (
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
	wsio "github.com/matzehuels/wsgraph/pkg/io"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render"
)

// renderCommand creates the render command for previously exported graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph exported with --format json",
		Long: `Render a graph file written by "wsgraph graph -f json" without reading the
workspace again. Roots and versions recorded in the file are kept.`,
		Example: `  wsgraph graph -p app -f json -o deps.json
  wsgraph render deps.json -f svg -o deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, ".", configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			doc, err := wsio.ImportJSON(args[0])
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "read graph")
			}

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

			res, err := runner.ExecuteDocument(ctx, doc, pipelineOptions(cfg))
			if err != nil {
				return err
			}

			if cfg.Output == "" {
				_, err := cmd.OutOrStdout().Write(res.Output)
				return err
			}
			if err := os.WriteFile(cfg.Output, res.Output, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeIO, err, "write %s", cfg.Output)
			}
			stderr := cmd.ErrOrStderr()
			printSuccess(stderr, "Wrote %s graph", res.Format)
			printFile(stderr, cfg.Output)
			printStats(stderr, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.CacheHit)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", "dot", "output format: dot, json, svg, png, jpg, pdf")
	f.StringP("output", "o", "", "write to this file instead of stdout")
	f.Bool("detailed", false, "show package versions in node labels")
	f.String("rankdir", "TB", "graph direction: TB, LR, BT or RL")
	f.String("engine", render.DefaultEngine, "in-process layout engine")
	f.StringP("graphviz-command", "c", "", "run this installed Graphviz command instead of the in-process renderer")
	f.StringP("graphviz-directory", "d", "", "directory holding the Graphviz command, if not in PATH")
	f.StringVar(&configPath, "config", "", "config file (default: ./.wsgraph.yml)")
	f.BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
