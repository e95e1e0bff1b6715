package layered

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("self-loop")

	// ErrUnknownNode is returned when an edge references a node outside [0, N).
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateEdge is returned by [Restore] when a node pair carries more
	// than one edge.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidNodeID is returned when node ids are not the dense range [0, N)
	// in order.
	ErrInvalidNodeID = errors.New("node ids must be dense and ordered")
)

// Node is a vertex of the graph.
type Node struct {
	ID       int    // Dense id in [0, N)
	Label    string // Structural label (may contain line breaks)
	Category string // L2 category code
}

// DisplayLabel returns the multi-line label used in diagrams:
// the id, the structural label and the category code.
func (n Node) DisplayLabel() string {
	return fmt.Sprintf("# %d\n%s\n%s", n.ID, n.Label, n.Category)
}

// Edge is an undirected, classified edge. U is always less than V.
type Edge struct {
	U, V   int
	Class  Class
	Weight float64
}

// Style returns the line style hint of the edge's class.
func (e Edge) Style() string { return e.Class.Style() }

// Other returns the endpoint opposite id.
func (e Edge) Other(id int) int {
	if e.U == id {
		return e.V
	}
	return e.U
}

// Graph is an immutable edge-classified undirected graph.
// The zero value is an empty graph.
type Graph struct {
	nodes      []Node
	edges      []Edge
	adj        [][]int          // node -> neighbors in insertion order
	index      map[uint64]int   // pair key -> edge index
	groups     map[string][]int // category code -> member ids in node order
	categories []string         // category codes in first-appearance order
	weights    Weights
}

// newGraph creates a graph holding nodes and their category groups.
// Node i must have ID i.
func newGraph(nodes []Node, w Weights) (*Graph, error) {
	g := &Graph{
		nodes:   slices.Clone(nodes),
		adj:     make([][]int, len(nodes)),
		index:   make(map[uint64]int),
		groups:  make(map[string][]int),
		weights: w,
	}
	for i, n := range g.nodes {
		if n.ID != i {
			return nil, fmt.Errorf("%w: position %d holds node %d", ErrInvalidNodeID, i, n.ID)
		}
		if _, ok := g.groups[n.Category]; !ok {
			g.categories = append(g.categories, n.Category)
		}
		g.groups[n.Category] = append(g.groups[n.Category], n.ID)
	}
	return g, nil
}

func pairKey(u, v int) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(uint32(v))
}

// addEdge inserts an edge of class c unless the pair is already connected.
// It reports whether an edge was added.
func (g *Graph) addEdge(u, v int, c Class) (bool, error) {
	if u == v {
		return false, ErrSelfLoop
	}
	if !g.valid(u) || !g.valid(v) {
		return false, ErrUnknownNode
	}
	key := pairKey(u, v)
	if _, exists := g.index[key]; exists {
		return false, nil
	}
	if u > v {
		u, v = v, u
	}
	g.index[key] = len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v, Class: c, Weight: g.weights.Of(c)})
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return true, nil
}

func (g *Graph) valid(id int) bool { return id >= 0 && id < len(g.nodes) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns a copy of all nodes ordered by id.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order. Structural edges come
// first, then induced, then same-category edges.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgesByClass returns the edges of class c in insertion order.
func (g *Graph) EdgesByClass(c Class) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Class == c {
			out = append(out, e)
		}
	}
	return out
}

// CountByClass returns the number of edges of class c.
func (g *Graph) CountByClass(c Class) int {
	n := 0
	for _, e := range g.edges {
		if e.Class == c {
			n++
		}
	}
	return n
}

// Edge returns the edge connecting u and v in either direction.
func (g *Graph) Edge(u, v int) (Edge, bool) {
	i, ok := g.index[pairKey(u, v)]
	if !ok || u == v {
		return Edge{}, false
	}
	return g.edges[i], true
}

// HasEdge reports whether u and v are connected by an edge of any class.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.Edge(u, v)
	return ok
}

// Neighbors returns the neighbors of id in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id int) []int {
	if !g.valid(id) {
		return nil
	}
	return g.adj[id]
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id int) int { return len(g.Neighbors(id)) }

// CategoryOf returns the category code of node id.
func (g *Graph) CategoryOf(id int) string {
	if !g.valid(id) {
		return ""
	}
	return g.nodes[id].Category
}

// Group returns the ids of nodes sharing category code, in id order.
// The returned slice must not be modified.
func (g *Graph) Group(code string) []int { return g.groups[code] }

// Categories returns the category codes in order of first appearance.
func (g *Graph) Categories() []string { return slices.Clone(g.categories) }

// Weights returns the class weights the graph was built with.
func (g *Graph) Weights() Weights { return g.weights }

// Labels returns the display label of every node keyed by id.
func (g *Graph) Labels() map[int]string {
	m := make(map[int]string, len(g.nodes))
	for _, n := range g.nodes {
		m[n.ID] = n.DisplayLabel()
	}
	return m
}

// CategoryMap returns the category code of every node keyed by id.
func (g *Graph) CategoryMap() map[int]string {
	m := make(map[int]string, len(g.nodes))
	for _, n := range g.nodes {
		m[n.ID] = n.Category
	}
	return m
}

// Restore rebuilds a graph from explicit nodes and edges, as read back from a
// snapshot. Unlike [Assemble] it rejects rather than skips bad input: a
// duplicate pair, self-loop, unknown endpoint or invalid class is an error.
// Edge weights are taken from w, not from the stored edges.
func Restore(nodes []Node, edges []Edge, w Weights) (*Graph, error) {
	g, err := newGraph(nodes, w)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if !e.Class.Valid() {
			return nil, fmt.Errorf("edge %d-%d: unknown class %d", e.U, e.V, e.Class)
		}
		added, err := g.addEdge(e.U, e.V, e.Class)
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, err)
		}
		if !added {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrDuplicateEdge)
		}
	}
	return g, nil
}
