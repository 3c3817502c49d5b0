package render

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/observability"
)

// Cached memoizes the output of another renderer.
type Cached struct {
	inner  Renderer
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps inner with c. A nil logger discards cache diagnostics.
func NewCached(inner Renderer, c cache.Cache, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cached{inner: inner, cache: c, ttl: ttl, logger: logger}
}

// Name implements [Renderer].
func (r *Cached) Name() string { return r.inner.Name() }

// Render implements [Renderer]. Cache failures are logged and otherwise
// ignored.
func (r *Cached) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, dot, format)
	return data, err
}

// RenderWithCacheInfo is [Cached.Render] that also reports whether the
// output came from the cache.
func (r *Cached) RenderWithCacheInfo(ctx context.Context, dot string, format Format) ([]byte, bool, error) {
	key := cache.RenderKey(r.inner.Name(), string(format), dot)

	hooks := observability.Cache()
	name := r.inner.Name()

	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Debug("cache read failed", "error", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, name)
		r.logger.Debug("render cache hit", "renderer", name, "format", format)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, name)

	data, err = r.inner.Render(ctx, dot, format)
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Debug("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, name, len(data))
	}
	return data, false, nil
}
