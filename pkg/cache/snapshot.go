package cache

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/graph"
	"github.com/matzehuels/layerroute/pkg/layered"
)

// SnapshotVersion is bumped whenever the snapshot layout changes. Entries
// written with another version are treated as corrupt and rebuilt.
const SnapshotVersion = 1

// envelope is the outer, uncompressed record. Data holds the snappy-encoded
// JSON of a snapshot.
type envelope struct {
	Version    int    `json:"version"`
	SourceHash string `json:"source_hash"`
	Data       []byte `json:"data"`
}

type snapshot struct {
	Graph      graph.Graph    `json:"graph"`
	Labels     map[int]string `json:"labels"`
	Categories map[int]string `json:"categories"`
}

// Snapshot is a decoded cache entry.
type Snapshot struct {
	Graph      *layered.Graph
	SourceHash string // Fingerprint of the inputs the graph was built from
}

// EncodeSnapshot serializes g together with its label and category maps.
func EncodeSnapshot(g *layered.Graph, sourceHash string) ([]byte, error) {
	raw, err := json.Marshal(snapshot{
		Graph:      graph.FromLayered(g),
		Labels:     g.Labels(),
		Categories: g.CategoryMap(),
	})
	if err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInternal, err, "encode snapshot")
	}
	out, err := json.Marshal(envelope{
		Version:    SnapshotVersion,
		SourceHash: sourceHash,
		Data:       snappy.Encode(nil, raw),
	})
	if err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInternal, err, "encode snapshot envelope")
	}
	return out, nil
}

// DecodeSnapshot restores a graph written by [EncodeSnapshot].
//
// Every failure is a CACHE_CORRUPT error: an unreadable envelope, a foreign
// version, a damaged compressed payload, a graph that violates the
// one-edge-per-pair rule, or label and category maps that disagree with the
// graph's own nodes.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, corrupt(err, "envelope")
	}
	if env.Version != SnapshotVersion {
		return nil, lrerrors.New(lrerrors.ErrCodeCacheCorrupt, "snapshot version %d, want %d", env.Version, SnapshotVersion)
	}

	raw, err := snappy.Decode(nil, env.Data)
	if err != nil {
		return nil, corrupt(err, "payload")
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, corrupt(err, "payload")
	}

	g, err := graph.ToLayered(snap.Graph)
	if err != nil {
		return nil, corrupt(err, "graph")
	}
	if err := checkMaps(g, snap.Labels, snap.Categories); err != nil {
		return nil, corrupt(err, "maps")
	}
	return &Snapshot{Graph: g, SourceHash: env.SourceHash}, nil
}

func corrupt(err error, part string) error {
	return lrerrors.Wrap(lrerrors.ErrCodeCacheCorrupt, err, "decode snapshot %s", part)
}

func checkMaps(g *layered.Graph, labels, categories map[int]string) error {
	if len(labels) != g.NodeCount() || len(categories) != g.NodeCount() {
		return fmt.Errorf("maps cover %d/%d nodes, graph has %d", len(labels), len(categories), g.NodeCount())
	}
	for _, n := range g.Nodes() {
		if labels[n.ID] != n.DisplayLabel() {
			return fmt.Errorf("node %d: label mismatch", n.ID)
		}
		if c, ok := categories[n.ID]; !ok || c != n.Category {
			return fmt.Errorf("node %d: category mismatch", n.ID)
		}
	}
	return nil
}
