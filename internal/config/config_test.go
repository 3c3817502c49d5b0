package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// isolate points the user config at an empty temp dir and clears WSGRAPH_ vars.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Depth != 3 || cfg.Format != "dot" || cfg.RankDir != "TB" {
		t.Errorf("defaults = depth %d, format %q, rankdir %q", cfg.Depth, cfg.Format, cfg.RankDir)
	}
	if cfg.Graphviz.Engine != "dot" || cfg.UseCommand() {
		t.Errorf("graphviz = %+v, want in-process dot", cfg.Graphviz)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve.addr = %q", cfg.Serve.Addr)
	}
	if cfg.DepKinds() != workspace.KindProd {
		t.Errorf("DepKinds() = %v, want prod only", cfg.DepKinds())
	}
}

func TestLoadPriority(t *testing.T) {
	home := isolate(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(home, "wsgraph", "config.yml"), "depth: 5\nformat: svg\nrankdir: LR\n")
	writeFile(t, filepath.Join(dir, ProjectFile), "depth: 7\ngraphviz:\n  engine: neato\ncache:\n  ttl: 1h\n")
	t.Setenv("WSGRAPH_FORMAT", "png")
	t.Setenv("WSGRAPH_CACHE__REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("WSGRAPH_INCLUDE_DEV", "true")

	cfg, err := Load(LoadOptions{
		Dir:       dir,
		Overrides: map[string]any{"depth": 1},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"user file", cfg.RankDir, "LR"},
		{"project over user", cfg.Graphviz.Engine, "neato"},
		{"duration from yaml", cfg.Cache.TTL, time.Hour},
		{"env over files", cfg.Format, "png"},
		{"nested env", cfg.Cache.RedisURL, "redis://localhost:6379/0"},
		{"env bool", cfg.IncludeDev, true},
		{"override over all", cfg.Depth, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cfg.DepKinds() != workspace.KindProd|workspace.KindDev {
		t.Errorf("DepKinds() = %v, want prod|dev", cfg.DepKinds())
	}
}

func TestLoadExplicitConfigPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFile), "depth: 7\n")
	custom := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, custom, "depth: 2\n")

	cfg, err := Load(LoadOptions{Dir: dir, ConfigPath: custom})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Depth != 2 {
		t.Errorf("Depth = %d, want the explicit file to replace the project file", cfg.Depth)
	}

	if _, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "missing.yml")}); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadSkipUser(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "wsgraph", "config.yml"), "depth: 9\n")

	cfg, err := Load(LoadOptions{SkipUser: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Depth != 3 {
		t.Errorf("Depth = %d, want default with user config skipped", cfg.Depth)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFile), "depth: 3\nformat: [svg\n")

	_, err := Load(LoadOptions{Dir: dir})
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(err.Error(), ProjectFile) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Depth:    3,
			Format:   "dot",
			RankDir:  "TB",
			Graphviz: GraphvizConfig{Engine: "dot"},
			Cache:    CacheConfig{TTL: time.Hour},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		code   errs.Code
	}{
		{"valid", func(*Config) {}, ""},
		{"negative depth", func(c *Config) { c.Depth = -1 }, errs.ErrCodeInvalidInput},
		{"unknown format", func(c *Config) { c.Format = "bmp" }, errs.ErrCodeInvalidFormat},
		{"unknown rankdir", func(c *Config) { c.RankDir = "up" }, errs.ErrCodeInvalidInput},
		{"unknown engine", func(c *Config) { c.Graphviz.Engine = "magic" }, errs.ErrCodeInvalidEngine},
		{"engine ignored with command", func(c *Config) {
			c.Graphviz.Engine = "magic"
			c.Graphviz.Command = "dot"
		}, ""},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUseCommand(t *testing.T) {
	tests := []struct {
		gv   GraphvizConfig
		want bool
	}{
		{GraphvizConfig{}, false},
		{GraphvizConfig{Command: "neato"}, true},
		{GraphvizConfig{Directory: "/opt/graphviz/bin"}, true},
	}
	for _, tt := range tests {
		c := Config{Graphviz: tt.gv}
		if got := c.UseCommand(); got != tt.want {
			t.Errorf("UseCommand(%+v) = %v, want %v", tt.gv, got, tt.want)
		}
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"WSGRAPH_DEPTH":            "depth",
		"WSGRAPH_ROOT_PACKAGE":     "root_package",
		"WSGRAPH_GRAPHVIZ__ENGINE": "graphviz.engine",
		"WSGRAPH_CACHE__REDIS_URL": "cache.redis_url",
	}
	for in, want := range tests {
		if got := envTransform(in); got != want {
			t.Errorf("envTransform(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplateLoads(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFile), Template)

	cfg, err := Load(LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Load(Template): %v", err)
	}
	if cfg.Depth != 3 || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Template does not match defaults: %+v", cfg)
	}

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	if !strings.Contains(string(out), "engine: dot") {
		t.Errorf("YAML() missing graphviz.engine:\n%s", out)
	}
}
