// Package config provides layered configuration for wsgraph using koanf.
//
// Values are resolved with the following priority, highest first:
//
//  1. Overrides (explicitly set CLI flags)
//  2. Environment variables: WSGRAPH_DEPTH, WSGRAPH_CACHE__TTL, ...
//     ("__" separates nested keys)
//  3. Project config: .wsgraph.yml in the workspace root, or --config
//  4. User config: $XDG_CONFIG_HOME/wsgraph/config.yml
//  5. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// EnvPrefix is the prefix of environment variables read by [Load].
const EnvPrefix = "WSGRAPH_"

// ProjectFile is the name of the project config file in a workspace root.
const ProjectFile = ".wsgraph.yml"

// Config is the resolved wsgraph configuration.
type Config struct {
	RootPackage string `koanf:"root_package"`
	Depth       int    `koanf:"depth"`
	IncludeDev  bool   `koanf:"include_dev"`
	IncludePeer bool   `koanf:"include_peer"`
	Format      string `koanf:"format"`
	Output      string `koanf:"output"`
	Detailed    bool   `koanf:"detailed"`
	RankDir     string `koanf:"rankdir"`

	Graphviz GraphvizConfig `koanf:"graphviz"`
	Cache    CacheConfig    `koanf:"cache"`
	Serve    ServeConfig    `koanf:"serve"`

	k *koanf.Koanf
}

// GraphvizConfig selects how DOT is laid out.
type GraphvizConfig struct {
	// Engine is the in-process layout engine.
	Engine string `koanf:"engine"`
	// Command runs an installed Graphviz program instead of the in-process
	// renderer when set.
	Command string `koanf:"command"`
	// Directory holds Command. Empty means PATH.
	Directory string `koanf:"directory"`
}

// CacheConfig controls the render cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Dir      string        `koanf:"dir"`
	TTL      time.Duration `koanf:"ttl"`
	RedisURL string        `koanf:"redis_url"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Dir is the workspace root searched for [ProjectFile].
	Dir string
	// ConfigPath overrides the project config path. Unlike the default
	// project file it must exist.
	ConfigPath string
	// SkipUser ignores the user config file.
	SkipUser bool
	// Overrides are applied last, keyed by koanf path (e.g. "graphviz.engine").
	Overrides map[string]any
}

// Load resolves the configuration from all sources and validates it.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if !opts.SkipUser {
		if path, err := UserConfigPath(); err == nil && fileExists(path) {
			if err := loadYAML(k, path); err != nil {
				return nil, fmt.Errorf("loading user config: %w", err)
			}
		}
	}

	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return nil, fmt.Errorf("config file %s not found", opts.ConfigPath)
		}
		if err := loadYAML(k, opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else if path := filepath.Join(opts.Dir, ProjectFile); fileExists(path) {
		if err := loadYAML(k, path); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}

	cfg := &Config{k: k}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Cache.Dir = expandHomePath(cfg.Cache.Dir)
	cfg.Output = expandHomePath(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DepKinds returns the dependency kinds that become graph edges.
func (c *Config) DepKinds() workspace.DepKind {
	kinds := workspace.KindProd
	if c.IncludeDev {
		kinds |= workspace.KindDev
	}
	if c.IncludePeer {
		kinds |= workspace.KindPeer
	}
	return kinds
}

// UseCommand reports whether rendering runs an installed Graphviz program.
// Setting only the directory runs "dot" from it.
func (c *Config) UseCommand() bool {
	return c.Graphviz.Command != "" || c.Graphviz.Directory != ""
}

// YAML returns the resolved configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	if c.k == nil {
		return nil, fmt.Errorf("config was not loaded")
	}
	return c.k.Marshal(yaml.Parser())
}

func loadYAML(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: WSGRAPH_CACHE__REDIS_URL -> cache.redis_url
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
