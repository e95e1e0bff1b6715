package pathfind

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/layerroute/pkg/layered"
)

// Path is a simple path given as a node id sequence.
type Path []int

// Edges returns the edges traversed by consecutive node pairs.
// It fails if two consecutive nodes are not adjacent.
func (p Path) Edges(g *layered.Graph) ([]layered.Edge, error) {
	if len(p) < 2 {
		return nil, nil
	}
	out := make([]layered.Edge, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		e, ok := g.Edge(p[i-1], p[i])
		if !ok {
			return nil, fmt.Errorf("no edge between %d and %d", p[i-1], p[i])
		}
		out = append(out, e)
	}
	return out, nil
}

// Classes returns the class of every traversed edge.
func (p Path) Classes(g *layered.Graph) ([]layered.Class, error) {
	edges, err := p.Edges(g)
	if err != nil {
		return nil, err
	}
	out := make([]layered.Class, len(edges))
	for i, e := range edges {
		out[i] = e.Class
	}
	return out, nil
}

// IsStructural reports whether every edge of p is Structural.
// A path that is not connected in g is neither structural nor augmented.
func (p Path) IsStructural(g *layered.Graph) bool {
	classes, err := p.Classes(g)
	if err != nil {
		return false
	}
	for _, c := range classes {
		if c != layered.Structural {
			return false
		}
	}
	return true
}

// IsAugmented reports whether p uses at least one Induced or SameCategory edge.
func (p Path) IsAugmented(g *layered.Graph) bool {
	classes, err := p.Classes(g)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(classes, layered.Class.Augmenting)
}

// Weight returns the summed edge weight of p, or +Inf if p is not connected.
func (p Path) Weight(g *layered.Graph) float64 {
	edges, err := p.Edges(g)
	if err != nil {
		return math.Inf(1)
	}
	var w float64
	for _, e := range edges {
		w += e.Weight
	}
	return w
}

// Simple reports whether no node repeats in p.
func (p Path) Simple() bool {
	seen := make(map[int]bool, len(p))
	for _, id := range p {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// NodeSet is a set of node ids.
type NodeSet map[int]struct{}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...int) NodeSet {
	s := make(NodeSet, len(ids))
	s.Add(ids...)
	return s
}

// Add inserts ids into s.
func (s NodeSet) Add(ids ...int) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in s. A nil set contains every node.
func (s NodeSet) Has(id int) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// Sorted returns the members of s in ascending order.
func (s NodeSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// AllowedFromPaths returns every node visited by any of paths.
func AllowedFromPaths(paths []Path) NodeSet {
	s := make(NodeSet)
	for _, p := range paths {
		s.Add(p...)
	}
	return s
}
