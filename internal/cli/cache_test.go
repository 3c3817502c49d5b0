package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "wsgraph")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, "wsgraph") {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestResolveCacheDirFromConfig(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Dir: "/tmp/wsgraph-cache"}}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/wsgraph-cache" {
		t.Errorf("resolveCacheDir() = %q", dir)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("WSGRAPH_CACHE__DIR", dir)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := t.Context()
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte("x"), cache.DefaultTTL); err != nil {
			t.Fatal(err)
		}
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("second cache clear output = %q", out)
	}
}
