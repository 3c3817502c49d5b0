package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/internal/server"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve workspace graphs over HTTP",
		Long: `Serve the dependency graph of the workspace in dir over HTTP.

  GET /healthz          liveness, build info and counters
  GET /packages         workspace packages as JSON
  GET /graph.{format}   graph as dot, json, svg, png, jpg or pdf

Graph flags set the defaults for requests; query parameters root, depth,
dev, peer, detailed and rankdir override them per request.`,
		Example: `  wsgraph serve --addr :9000
  curl 'localhost:9000/graph.svg?root=app&depth=2'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			cfg, err := loadConfig(cmd, dir, configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			r, ch, err := c.newRenderer(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer ch.Close()
			logger.Debug("renderer ready", "renderer", r.Name())

			stats := observability.NewCounters()
			observability.SetPipelineHooks(stats)
			observability.SetCacheHooks(stats)
			observability.SetHTTPHooks(stats)

			srv := server.New(server.Options{
				Dir:      dir,
				Defaults: pipelineOptions(cfg),
				Runner:   pipeline.NewRunner(r, logger),
				Logger:   logger,
				Stats:    stats,
			})
			return srv.ListenAndServe(ctx, cfg.Serve.Addr)
		},
	}

	addGraphFlags(cmd)
	f := cmd.Flags()
	f.String("addr", ":8080", "address to listen on")
	f.StringVar(&configPath, "config", "", "config file (default: <dir>/.wsgraph.yml)")
	f.BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
