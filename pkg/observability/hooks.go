// Package observability provides hooks for metrics and tracing.
//
// Graph builds, path searches, rendering and snapshot cache accesses report
// to the hooks installed here. The defaults do nothing.
//
// [PrometheusHooks] implements both interfaces and writes its metrics to a
// node-exporter textfile.
//
// # Usage
//
// Register hooks at application startup:
//
//	hooks := observability.NewPrometheusHooks()
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	defer hooks.WriteTextfile("layerroute.prom")
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, prefix)
//	// ... parse and assemble ...
//	observability.Pipeline().OnBuildComplete(ctx, prefix, stats, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// BuildStats describes an assembled graph.
type BuildStats struct {
	Nodes        int
	Structural   int
	Induced      int
	SameCategory int
	FromCache    bool
}

// PipelineHooks receives events from the build and solve pipeline.
type PipelineHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, prefix string)
	OnBuildComplete(ctx context.Context, prefix string, stats BuildStats, duration time.Duration, err error)

	// Search events; kind is "structural" or "augmented"
	OnSearchComplete(ctx context.Context, kind string, paths int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, backend string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, backend string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, backend string, size int)

	// OnCacheCorrupt records an entry that could not be decoded.
	OnCacheCorrupt(ctx context.Context, backend string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, BuildStats, time.Duration, error) {
}
func (NoopPipelineHooks) OnSearchComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}
func (NoopCacheHooks) OnCacheCorrupt(context.Context, string)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// Installed hooks; never nil after init.
var (
	pipelineHooks atomic.Pointer[PipelineHooks]
	cacheHooks    atomic.Pointer[CacheHooks]
)

func init() { Reset() }

// SetPipelineHooks installs h for all later pipeline events. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&h)
	}
}

// SetCacheHooks installs h for all later cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return *pipelineHooks.Load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return *cacheHooks.Load() }

// Reset restores the no-op hooks.
func Reset() {
	var p PipelineHooks = NoopPipelineHooks{}
	var c CacheHooks = NoopCacheHooks{}
	pipelineHooks.Store(&p)
	cacheHooks.Store(&c)
}
