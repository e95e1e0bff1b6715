package pipeline

import (
	"context"
	"iter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/observability"
	"github.com/matzehuels/layerroute/pkg/pathfind"
)

// Search runs both path searches on g.
//
// Structural paths come first. The augmented search is then restricted to
// the nodes those paths visit, so when no structural path exists it runs on
// an empty node set and finds nothing. An empty result in either search is
// logged as NO_PATH_FOUND and is not an error; unknown endpoints are
// INVALID_INPUT. Cancelling ctx stops the enumeration between paths.
func (r *Runner) Search(ctx context.Context, g *layered.Graph, opts SolveOptions) (*SearchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	for _, id := range []int{opts.Source, opts.Target} {
		if err := errors.ValidateNodeID(id, g.NodeCount()); err != nil {
			return nil, err
		}
	}

	structural, err := r.collect(ctx, "structural",
		pathfind.StructuralSeq(g, opts.Source, opts.Target), opts.K, logger)
	if err != nil {
		return nil, err
	}

	allowed := pathfind.AllowedFromPaths(structural)
	augmented, err := r.collect(ctx, "augmented",
		pathfind.AugmentedSeq(g, allowed, opts.Source, opts.Target), opts.AugmentedLimit, logger)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Structural: structural, Augmented: augmented}, nil
}

// collect pulls up to limit paths from seq; limit <= 0 pulls all of them.
func (r *Runner) collect(ctx context.Context, kind string, seq iter.Seq[pathfind.Path], limit int, logger *log.Logger) ([]pathfind.Path, error) {
	start := time.Now()
	var paths []pathfind.Path
	var err error
	for p := range seq {
		if err = ctx.Err(); err != nil {
			break
		}
		paths = append(paths, p)
		if limit > 0 && len(paths) >= limit {
			break
		}
	}
	observability.Pipeline().OnSearchComplete(ctx, kind, len(paths), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		logger.Warn("no path found", "code", errors.ErrCodeNoPathFound, "search", kind)
	} else {
		logger.Info("found paths", "search", kind, "paths", len(paths), "duration", time.Since(start))
	}
	return paths, nil
}
