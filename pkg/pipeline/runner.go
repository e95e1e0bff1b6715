package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/layerroute/pkg/cache"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve runs build, search and render with one run id.
func (r *Runner) Solve(ctx context.Context, bopts BuildOptions, sopts SolveOptions) (*SolveResult, error) {
	if err := sopts.Validate(); err != nil {
		return nil, err
	}
	runID, logger := r.newRun(sopts.Logger)
	bopts.Logger = logger
	sopts.Logger = logger

	result := &SolveResult{RunID: runID, Format: sopts.Format}

	// Stage 1: Build
	sopts.stage("build")
	built, err := r.Build(ctx, bopts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Build = built
	result.Stats.BuildTime = built.Duration
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Search
	sopts.stage("search")
	searchStart := time.Now()
	found, err := r.Search(ctx, built.Graph, sopts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.SearchResult = *found
	result.Stats.SearchTime = time.Since(searchStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	sopts.stage("render")
	renderStart := time.Now()
	rendered, err := r.Render(ctx, built.Graph, found, sopts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.View = rendered.View
	result.DOT = rendered.DOT
	result.Artifact = rendered.Artifact
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered diagram",
		"format", sopts.Format,
		"bytes", len(rendered.Artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// newRun tags logger, or the runner's logger when nil, with a fresh run id.
func (r *Runner) newRun(logger *log.Logger) (string, *log.Logger) {
	if logger == nil {
		logger = r.Logger
	}
	id := uuid.NewString()
	return id, logger.With("run", id[:8])
}

// backendName names the cache backend in logs and metrics.
func backendName(c cache.Cache) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
