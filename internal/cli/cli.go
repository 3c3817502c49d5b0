package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/buildinfo"
	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "wsgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "wsgraph draws the dependency graph of a monorepo workspace",
		Long: `wsgraph discovers the packages of a lerna, npm, yarn, pnpm or cargo
workspace and prints how they depend on each other, as Graphviz DOT, JSON or
a rendered image.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		c.SetLogLevel(levelFor(verbose))
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"root-package":       "root_package",
	"depth":              "depth",
	"dev":                "include_dev",
	"peer":               "include_peer",
	"format":             "format",
	"output":             "output",
	"detailed":           "detailed",
	"rankdir":            "rankdir",
	"engine":             "graphviz.engine",
	"graphviz-command":   "graphviz.command",
	"graphviz-directory": "graphviz.directory",
	"addr":               "serve.addr",
}

// loadConfig resolves the configuration for a workspace, with every flag the
// user set explicitly taking precedence.
func loadConfig(cmd *cobra.Command, dir, configPath string) (*config.Config, error) {
	overrides := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	return config.Load(config.LoadOptions{
		Dir:        dir,
		ConfigPath: configPath,
		Overrides:  overrides,
	})
}

// addGraphFlags registers the flags shared by graph and serve.
func addGraphFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("root-package", "p", "", "root package to start drawing from (default: all packages)")
	f.IntP("depth", "D", 3, "depth to traverse dependencies")
	f.Bool("dev", false, "follow development dependencies")
	f.Bool("peer", false, "follow peer dependencies")
	f.Bool("detailed", false, "show package versions in node labels")
	f.String("rankdir", "TB", "graph direction: TB, LR, BT or RL")
	f.String("engine", render.DefaultEngine, "in-process layout engine: dot, neato, fdp, sfdp, circo, twopi, osage, patchwork")
	f.StringP("graphviz-command", "c", "", "run this installed Graphviz command instead of the in-process renderer")
	f.StringP("graphviz-directory", "d", "", "directory holding the Graphviz command, if not in PATH")
}

func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		RootPackage: cfg.RootPackage,
		MaxDepth:    cfg.Depth,
		Kinds:       cfg.DepKinds(),
		Format:      render.Format(cfg.Format),
		Detailed:    cfg.Detailed,
		RankDir:     cfg.RankDir,
	}
}

// =============================================================================
// Renderer and Cache Factories
// =============================================================================

// newRenderer builds the renderer selected by cfg, wrapped in the render
// cache unless caching is off. The returned cache must be closed by the caller.
func (c *CLI) newRenderer(ctx context.Context, cfg *config.Config, noCache bool) (render.Renderer, cache.Cache, error) {
	var r render.Renderer
	if cfg.UseCommand() {
		r = render.NewCommand(cfg.Graphviz.Command, cfg.Graphviz.Directory)
	} else {
		gv, err := render.NewGraphviz(cfg.Graphviz.Engine)
		if err != nil {
			return nil, nil, err
		}
		r = gv
	}

	logger := loggerFromContext(ctx)
	ch, err := newCache(ctx, cfg, noCache)
	if err != nil {
		logger.Warn("render cache unavailable", "error", err)
		ch = cache.NewNullCache()
	}
	if _, ok := ch.(*cache.NullCache); ok {
		return r, ch, nil
	}
	return render.NewCached(r, ch, cfg.Cache.TTL, logger), ch, nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	logger := loggerFromContext(ctx)
	if noCache || !cfg.Cache.Enabled {
		logger.Debug("render cache disabled")
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		logger.Debug("using redis render cache")
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("using file render cache", "dir", dir)
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

func resolveCacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/wsgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dirArg returns the workspace directory argument, defaulting to ".".
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
