package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters implements every hook interface by counting events. It is safe
// for concurrent use.
type Counters struct {
	builds       atomic.Int64
	renders      atomic.Int64
	renderErrors atomic.Int64
	renderNanos  atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheBytes   atomic.Int64
	requests     atomic.Int64
	serverErrors atomic.Int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters { return &Counters{} }

// Snapshot is a point-in-time copy of [Counters].
type Snapshot struct {
	Builds       int64         `json:"builds"`
	Renders      int64         `json:"renders"`
	RenderErrors int64         `json:"render_errors"`
	RenderTime   time.Duration `json:"render_time_ns"`
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	CacheBytes   int64         `json:"cache_bytes_written"`
	Requests     int64         `json:"requests"`
	ServerErrors int64         `json:"server_errors"`
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Builds:       c.builds.Load(),
		Renders:      c.renders.Load(),
		RenderErrors: c.renderErrors.Load(),
		RenderTime:   time.Duration(c.renderNanos.Load()),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
		CacheBytes:   c.cacheBytes.Load(),
		Requests:     c.requests.Load(),
		ServerErrors: c.serverErrors.Load(),
	}
}

func (c *Counters) OnBuildComplete(context.Context, string, int, int, time.Duration) {
	c.builds.Add(1)
}

func (c *Counters) OnRenderStart(context.Context, string, string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _, _ string, _ int, d time.Duration, err error) {
	c.renders.Add(1)
	c.renderNanos.Add(int64(d))
	if err != nil {
		c.renderErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.requests.Add(1)
	if status >= 500 {
		c.serverErrors.Add(1)
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
