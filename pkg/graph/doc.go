// Package graph provides the serialization format for assembled layered
// graphs.
//
// This package defines the wire format used for cache snapshots and for the
// JSON export of the build command.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Node], [Edge]: serialization types (this package)
//   - pkg/layered.Graph: internal, immutable representation
//
// Use [FromLayered]/[ToLayered] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Edge classes are stored by name and
// endpoints are normalized so that u < v:
//
//	{
//	  "weights": {"structural": 1, "induced": 1, "same_category": 0.5},
//	  "nodes": [{"id": 0, "label": "pump", "category": "A"}, ...],
//	  "edges": [{"u": 0, "v": 1, "class": "structural"}, ...]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → layered.Graph
//	graph.WriteGraphFile(g, "graph.json")       // layered.Graph → File
//	data, _ := graph.MarshalGraph(g)            // layered.Graph → []byte
//	wire, _ := graph.UnmarshalGraph(data)       // []byte → Graph
//
// Decoding is strict: a duplicate pair, an unknown class or an endpoint
// outside the node range is an error, so a damaged snapshot is never turned
// into a graph that breaks the one-edge-per-pair rule.
package graph
