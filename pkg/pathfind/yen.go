package pathfind

import (
	"container/heap"
	"iter"
	"math"
	"slices"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
)

// Augmented returns up to limit simple paths from source to target inside the
// subgraph induced by allowed, in non-decreasing weight order, that use at
// least one Induced or SameCategory edge. Purely Structural paths are skipped
// even when they are shorter.
//
// limit must be positive. If the enumeration is exhausted before any path
// qualifies, the error has code NO_PATH_FOUND. Fewer than limit qualifying
// paths are returned without error.
func Augmented(g *layered.Graph, allowed NodeSet, source, target, limit int) ([]Path, error) {
	if err := validateEndpoints(g, source, target); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "augmented search needs a positive limit, got %d", limit)
	}

	var paths []Path
	for p := range AugmentedSeq(g, allowed, source, target) {
		paths = append(paths, p)
		if len(paths) >= limit {
			break
		}
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeNoPathFound, "no augmented path from %d to %d within %d allowed nodes", source, target, len(allowed))
	}
	return paths, nil
}

// AugmentedSeq filters [ShortestSimplePaths] to paths that use at least one
// Induced or SameCategory edge.
func AugmentedSeq(g *layered.Graph, allowed NodeSet, source, target int) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for p := range ShortestSimplePaths(g, allowed, source, target) {
			if p.IsAugmented(g) && !yield(p) {
				return
			}
		}
	}
}

// ShortestSimplePaths lazily yields the simple paths from source to target in
// the subgraph induced by allowed, ordered by total edge weight. A nil allowed
// set admits every node. Paths of equal weight are ordered by their node
// sequence. Endpoints outside allowed yield nothing.
//
// The enumeration follows Yen's algorithm: each new path deviates from a
// previously yielded one at some spur node, and the spur segment is the
// cheapest route that avoids the shared root and the edges already used
// from it.
func ShortestSimplePaths(g *layered.Graph, allowed NodeSet, source, target int) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		if validateEndpoints(g, source, target) != nil || !allowed.Has(source) || !allowed.Has(target) {
			return
		}
		s := &searcher{g: g, allowed: allowed, target: target}

		first := s.shortest(source, nil, nil)
		if first == nil {
			return
		}
		if !yield(first) {
			return
		}

		found := []Path{first}
		seen := map[string]bool{pathKey(first): true}
		candidates := &candidateQueue{}

		for {
			prev := found[len(found)-1]
			for i := 0; i < len(prev)-1; i++ {
				spur, root := prev[i], prev[:i+1]

				cut := make(map[[2]int]bool)
				for _, p := range found {
					if len(p) > i+1 && slices.Equal(p[:i+1], root) {
						cut[edgeKey(p[i], p[i+1])] = true
					}
				}
				blocked := make(map[int]bool, i)
				for _, id := range root[:i] {
					blocked[id] = true
				}

				tail := s.shortest(spur, blocked, cut)
				if tail == nil {
					continue
				}
				candidate := make(Path, 0, i+len(tail))
				candidate = append(candidate, root[:i]...)
				candidate = append(candidate, tail...)

				key := pathKey(candidate)
				if seen[key] {
					continue
				}
				seen[key] = true
				heap.Push(candidates, &candidatePath{path: candidate, weight: candidate.Weight(g)})
			}

			if candidates.Len() == 0 {
				return
			}
			next := heap.Pop(candidates).(*candidatePath).path
			found = append(found, next)
			if !yield(next) {
				return
			}
		}
	}
}

type searcher struct {
	g       *layered.Graph
	allowed NodeSet
	target  int
}

// shortest runs Dijkstra from source to the searcher's target, skipping
// blocked nodes and cut edges. It returns nil if target is unreachable.
func (s *searcher) shortest(source int, blocked map[int]bool, cut map[[2]int]bool) Path {
	n := s.g.NodeCount()
	dist := make([]float64, n)
	parent := make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		parent[i] = -1
	}
	dist[source] = 0

	visited := make([]bool, n)
	pq := &nodePQ{}
	heap.Push(pq, &nodeItem{id: source, dist: 0})

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*nodeItem)
		if visited[u.id] {
			continue
		}
		visited[u.id] = true
		if u.id == s.target {
			break
		}

		for _, v := range s.g.Neighbors(u.id) {
			if visited[v] || blocked[v] || !s.allowed.Has(v) || cut[edgeKey(u.id, v)] {
				continue
			}
			e, _ := s.g.Edge(u.id, v)
			if nd := dist[u.id] + e.Weight; nd < dist[v] {
				dist[v] = nd
				parent[v] = u.id
				heap.Push(pq, &nodeItem{id: v, dist: nd})
			}
		}
	}

	if !visited[s.target] {
		return nil
	}
	var path Path
	for v := s.target; v != -1; v = parent[v] {
		path = append(path, v)
	}
	slices.Reverse(path)
	return path
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

func pathKey(p Path) string {
	b := make([]byte, 0, len(p)*4)
	for _, id := range p {
		b = append(b, byte(id>>24), byte(id>>16), byte(id>>8), byte(id))
	}
	return string(b)
}

// nodeItem is a Dijkstra queue entry.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ implements heap.Interface. Equal distances pop the lower id first.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x any)   { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

type candidatePath struct {
	path   Path
	weight float64
}

// candidateQueue orders Yen candidates by weight, then by node sequence.
type candidateQueue []*candidatePath

func (q candidateQueue) Len() int { return len(q) }
func (q candidateQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return slices.Compare(q[i].path, q[j].path) < 0
}
func (q candidateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *candidateQueue) Push(x any)   { *q = append(*q, x.(*candidatePath)) }
func (q *candidateQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
