package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerroute/pkg/cache"
	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/observability"
	"github.com/matzehuels/layerroute/pkg/source"
)

// Build returns the assembled graph for the two source files.
//
// Unless opts.Force is set, a cached snapshot under the prefix key is used
// when it decodes cleanly and was built from the same file contents and
// settings. A snapshot that cannot be decoded is logged as CACHE_CORRUPT,
// deleted and rebuilt; a stale one is rebuilt and overwritten. Failing to
// store the new snapshot is logged but does not fail the build.
func (r *Runner) Build(ctx context.Context, opts BuildOptions) (result *BuildResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		_, logger = r.newRun(nil)
	}

	start := time.Now()
	key := r.Keyer.GraphKey(opts.Prefix)
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Prefix)
	defer func() {
		var stats observability.BuildStats
		if result != nil {
			result.Duration = time.Since(start)
			stats = buildStats(result)
		}
		hooks.OnBuildComplete(ctx, opts.Prefix, stats, time.Since(start), err)
	}()

	// An empty hash disables the staleness check; the source files are
	// reported properly below if they are really missing.
	hash, hashErr := cache.SourceHash([]string{opts.NodesPath, opts.CategoriesPath}, opts.fingerprint())
	if hashErr != nil {
		logger.Debug("cannot fingerprint sources", "error", hashErr)
	}

	if !opts.Force {
		if g := r.load(ctx, key, hash, logger); g != nil {
			logger.Info("loaded graph from cache",
				"key", key,
				"nodes", g.NodeCount(),
				"edges", g.EdgeCount())
			return &BuildResult{Graph: g, Prefix: opts.Prefix, Key: key, FromCache: true}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes, err := source.LoadNodeFile(opts.NodesPath)
	if err != nil {
		return nil, err
	}
	categories, err := source.LoadCategoryFile(opts.CategoriesPath)
	if err != nil {
		return nil, err
	}
	warnings := logWarnings(logger, nodes.Name, nodes.Warnings, nil)
	warnings = logWarnings(logger, categories.Name, categories.Warnings, warnings)

	g, report, err := layered.Assemble(layered.FromSources(nodes, categories),
		layered.WithWeights(opts.Weights),
		layered.WithGroupLimit(opts.GroupLimit),
		layered.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("assembled graph",
		"nodes", g.NodeCount(),
		"structural", report.Structural,
		"induced", report.Induced,
		"same_category", report.SameCategory)
	for _, grp := range report.ExemptGroups {
		logger.Info("category group too large for same-category edges",
			"category", grp.Code, "size", grp.Size, "limit", opts.GroupLimit)
	}

	r.store(ctx, key, g, hash, logger)

	return &BuildResult{
		Graph:    g,
		Prefix:   opts.Prefix,
		Key:      key,
		Report:   report,
		Warnings: warnings,
	}, nil
}

// load returns the cached graph under key, or nil when the build must run.
func (r *Runner) load(ctx context.Context, key, hash string, logger *log.Logger) *layered.Graph {
	hooks := observability.Cache()
	backend := backendName(r.Cache)

	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case errors.Is(err, errors.ErrCodeCacheCorrupt):
		hooks.OnCacheCorrupt(ctx, backend)
		logger.Warn("discarding unreadable cache entry", "code", errors.ErrCodeCacheCorrupt, "key", key, "error", err)
		return nil
	case err != nil:
		logger.Warn("cache read failed, rebuilding", "key", key, "backend", backend, "error", err)
		return nil
	case !hit:
		hooks.OnCacheMiss(ctx, backend)
		logger.Debug("cache miss", "key", key)
		return nil
	}

	snap, err := cache.DecodeSnapshot(data)
	if err != nil {
		hooks.OnCacheCorrupt(ctx, backend)
		logger.Warn("discarding corrupt snapshot", "code", errors.GetCode(err), "key", key, "error", err)
		if err := r.Cache.Delete(ctx, key); err != nil {
			logger.Warn("could not delete corrupt snapshot", "key", key, "error", err)
		}
		return nil
	}
	if hash != "" && snap.SourceHash != hash {
		hooks.OnCacheMiss(ctx, backend)
		logger.Warn("cached graph is stale, rebuilding", "key", key)
		return nil
	}

	hooks.OnCacheHit(ctx, backend)
	return snap.Graph
}

func (r *Runner) store(ctx context.Context, key string, g *layered.Graph, hash string, logger *log.Logger) {
	data, err := cache.EncodeSnapshot(g, hash)
	if err != nil {
		logger.Warn("could not encode snapshot", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, 0); err != nil {
		logger.Warn("could not store snapshot", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, backendName(r.Cache), len(data))
	logger.Debug("stored snapshot", "key", key, "bytes", len(data))
}

func logWarnings(logger *log.Logger, file string, ws []source.Warning, into []source.Warning) []source.Warning {
	for _, w := range ws {
		logger.Warn("skipped edge line", "file", file, "line", w.Line, "text", w.Text, "reason", w.Reason)
	}
	return append(into, ws...)
}

func buildStats(r *BuildResult) observability.BuildStats {
	g := r.Graph
	return observability.BuildStats{
		Nodes:        g.NodeCount(),
		Structural:   g.CountByClass(layered.Structural),
		Induced:      g.CountByClass(layered.Induced),
		SameCategory: g.CountByClass(layered.SameCategory),
		FromCache:    r.FromCache,
	}
}
