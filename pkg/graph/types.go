package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/layerroute/pkg/layered"
)

// =============================================================================
// Graph - Layered Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for layered graphs.
// Used for cache snapshots and JSON export.
type Graph struct {
	Weights layered.Weights `json:"weights"`
	Nodes   []Node          `json:"nodes"`
	Edges   []Edge          `json:"edges"`
}

// Node is a serialized graph node.
type Node struct {
	ID       int    `json:"id"`
	Label    string `json:"label,omitempty"`    // Structural label, may contain line breaks
	Category string `json:"category,omitempty"` // L2 category code
}

// Edge is a serialized undirected edge.
type Edge struct {
	U     int    `json:"u"`
	V     int    `json:"v"`
	Class string `json:"class"` // "structural", "induced" or "same-category"
}

// =============================================================================
// layered.Graph ↔ Graph Conversion
// =============================================================================

// FromLayered converts a layered graph to its serialization format.
// Nodes are ordered by id; edges keep insertion order.
func FromLayered(g *layered.Graph) Graph {
	nodes := g.Nodes()
	edges := g.Edges()

	out := Graph{
		Weights: g.Weights(),
		Nodes:   make([]Node, len(nodes)),
		Edges:   make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{ID: n.ID, Label: n.Label, Category: n.Category}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{U: e.U, V: e.V, Class: e.Class.String()}
	}
	return out
}

// ToLayered converts the serialization format back to a layered graph.
// Nodes may appear in any order but must cover the dense range [0, N).
func ToLayered(data Graph) (*layered.Graph, error) {
	nodes := make([]layered.Node, len(data.Nodes))
	placed := make([]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		if n.ID < 0 || n.ID >= len(nodes) || placed[n.ID] {
			return nil, fmt.Errorf("node %d: %w", n.ID, layered.ErrInvalidNodeID)
		}
		placed[n.ID] = true
		nodes[n.ID] = layered.Node{ID: n.ID, Label: n.Label, Category: n.Category}
	}

	edges := make([]layered.Edge, len(data.Edges))
	for i, e := range data.Edges {
		c, err := layered.ParseClass(e.Class)
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, err)
		}
		edges[i] = layered.Edge{U: e.U, V: e.V, Class: c}
	}

	return layered.Restore(nodes, edges, data.Weights)
}

// UnmarshalGraph decodes JSON bytes into the serialization format without
// building a layered graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}
