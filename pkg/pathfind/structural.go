package pathfind

import (
	"iter"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
)

// Structural returns the shortest paths from source to target that use only
// Structural edges. Every returned path has the same, minimal length. A limit
// of zero or less returns all of them.
//
// Unknown node ids fail with INVALID_INPUT. If target is unreachable over
// Structural edges the result is empty and the error has code NO_PATH_FOUND.
func Structural(g *layered.Graph, source, target, limit int) ([]Path, error) {
	if err := validateEndpoints(g, source, target); err != nil {
		return nil, err
	}

	var paths []Path
	for p := range StructuralSeq(g, source, target) {
		paths = append(paths, p)
		if limit > 0 && len(paths) >= limit {
			break
		}
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeNoPathFound, "no structural path from %d to %d", source, target)
	}
	return paths, nil
}

// StructuralSeq lazily yields every shortest Structural-only path from source
// to target. Paths are produced depth-first, following each node's neighbors
// in edge insertion order. Nothing is yielded for unknown ids or unconnected
// endpoints.
func StructuralSeq(g *layered.Graph, source, target int) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		if validateEndpoints(g, source, target) != nil {
			return
		}
		dist := structuralDistances(g, target, source)
		if dist[source] < 0 {
			return
		}

		// Walk forward from source, stepping only to neighbors one hop
		// closer to target. Every such walk is a shortest path.
		path := make(Path, 0, dist[source]+1)
		var walk func(v int) bool
		walk = func(v int) bool {
			path = append(path, v)
			defer func() { path = path[:len(path)-1] }()

			if v == target {
				out := make(Path, len(path))
				copy(out, path)
				return yield(out)
			}
			for _, w := range g.Neighbors(v) {
				if dist[w] != dist[v]-1 || !structural(g, v, w) {
					continue
				}
				if !walk(w) {
					return false
				}
			}
			return true
		}
		walk(source)
	}
}

// structuralDistances runs a breadth-first search from root over Structural
// edges and returns the hop distance of every node, -1 if unreachable. The
// search stops once stop has been reached and its level fully labelled.
func structuralDistances(g *layered.Graph, root, stop int) []int {
	dist := make([]int, g.NodeCount())
	for i := range dist {
		dist[i] = -1
	}
	dist[root] = 0

	queue := []int{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[stop] >= 0 && dist[u] >= dist[stop] {
			break
		}
		for _, v := range g.Neighbors(u) {
			if dist[v] >= 0 || !structural(g, u, v) {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return dist
}

func structural(g *layered.Graph, u, v int) bool {
	e, ok := g.Edge(u, v)
	return ok && e.Class == layered.Structural
}

func validateEndpoints(g *layered.Graph, source, target int) error {
	if err := errors.ValidateNodeID(source, g.NodeCount()); err != nil {
		return err
	}
	return errors.ValidateNodeID(target, g.NodeCount())
}
