package layered

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/source"
)

// DefaultGroupLimit is the largest category group that still receives
// same-category edges.
const DefaultGroupLimit = 100

// Input is everything the assembler consumes.
type Input struct {
	Nodes           []source.NodeRecord // One record per node; ids dense in [0, N)
	StructuralEdges []source.Pair       // L1 node pairs
	CategoryCodes   map[int]string      // L2 category id -> category code
	CategoryEdges   []source.Pair       // L2 category id pairs
}

// FromSources combines parsed File A and File B content into an Input.
func FromSources(nodes *source.NodeSource, categories *source.CategorySource) Input {
	return Input{
		Nodes:           nodes.Records,
		StructuralEdges: nodes.Edges,
		CategoryCodes:   categories.Codes,
		CategoryEdges:   categories.Edges,
	}
}

// GroupSize names a category group and its member count.
type GroupSize struct {
	Code string
	Size int
}

// SkippedEdge records an input edge that was not added and why.
type SkippedEdge struct {
	Pair   source.Pair
	Reason string
}

// Report summarizes an assembly run.
type Report struct {
	Structural   int // Edges added per class
	Induced      int
	SameCategory int

	SkippedStructural []SkippedEdge // Unknown endpoints or self-loops
	SkippedCategory   []SkippedEdge // Unknown category ids
	EmptyCategories   []string      // Codes referenced by L2 edges with no member nodes
	ExemptGroups      []GroupSize   // Groups larger than the limit
}

// Option configures Assemble.
type Option func(*options)

type options struct {
	weights    Weights
	groupLimit int
	logger     *log.Logger
}

// WithWeights sets the class weights.
func WithWeights(w Weights) Option {
	return func(o *options) { o.weights = w }
}

// WithGroupLimit sets the largest group that receives same-category edges.
// Zero exempts every group; a negative limit removes the guard.
func WithGroupLimit(n int) Option {
	return func(o *options) { o.groupLimit = n }
}

// WithLogger routes diagnostics for skipped edges to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Assemble builds the classified graph from in.
//
// Structural edges are inserted first and unconditionally (apart from
// unknown endpoints and self-loops, which are skipped). Each category-level
// edge (A, B) then connects every member of A to every member of B with an
// Induced edge, and finally every pair inside one category group gets a
// SameCategory edge. Induced and SameCategory edges are only added to pairs
// that are not yet connected, so an existing edge is never reclassified.
//
// Skipped edges are logged and listed in the returned Report. Assemble fails
// only when the node records are not the dense id range [0, N).
func Assemble(in Input, opts ...Option) (*Graph, *Report, error) {
	o := options{
		weights:    DefaultWeights(),
		groupLimit: DefaultGroupLimit,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}

	g, err := nodesFromRecords(in.Nodes, o.weights)
	if err != nil {
		return nil, nil, lrerrors.Wrap(lrerrors.ErrCodeInvalidInput, err, "assemble nodes")
	}

	a := &assembler{g: g, opts: o, report: &Report{}}
	a.addStructural(in.StructuralEdges)
	a.addInduced(in.CategoryCodes, in.CategoryEdges)
	a.addSameCategory()

	return g, a.report, nil
}

func nodesFromRecords(records []source.NodeRecord, w Weights) (*Graph, error) {
	nodes := make([]Node, len(records))
	placed := make([]bool, len(records))
	for _, r := range records {
		if r.ID < 0 || r.ID >= len(records) || placed[r.ID] {
			return nil, fmt.Errorf("%w: node %d", ErrInvalidNodeID, r.ID)
		}
		placed[r.ID] = true
		nodes[r.ID] = Node{ID: r.ID, Label: r.Label, Category: r.Category}
	}
	return newGraph(nodes, w)
}

type assembler struct {
	g      *Graph
	opts   options
	report *Report
}

func (a *assembler) addStructural(pairs []source.Pair) {
	for _, p := range pairs {
		added, err := a.g.addEdge(p.U, p.V, Structural)
		if err != nil {
			a.skipStructural(p, err)
			continue
		}
		if added {
			a.report.Structural++
		}
	}
}

func (a *assembler) skipStructural(p source.Pair, err error) {
	reason := err.Error()
	a.report.SkippedStructural = append(a.report.SkippedStructural, SkippedEdge{Pair: p, Reason: reason})
	if errors.Is(err, ErrUnknownNode) {
		a.opts.logger.Warn("skipped structural edge",
			"code", lrerrors.ErrCodeUnknownNodeReference,
			"section", "l1 edges",
			"edge", fmt.Sprintf("%d-%d", p.U, p.V),
			"nodes", a.g.NodeCount())
		return
	}
	a.opts.logger.Warn("skipped structural edge",
		"section", "l1 edges",
		"edge", fmt.Sprintf("%d-%d", p.U, p.V),
		"reason", reason)
}

func (a *assembler) addInduced(codes map[int]string, pairs []source.Pair) {
	empty := make(map[string]bool)
	for _, p := range pairs {
		codeA, okA := codes[p.U]
		codeB, okB := codes[p.V]
		if !okA || !okB {
			a.report.SkippedCategory = append(a.report.SkippedCategory, SkippedEdge{Pair: p, Reason: "unknown category id"})
			a.opts.logger.Warn("skipped category edge",
				"code", lrerrors.ErrCodeUnknownNodeReference,
				"section", "l2 edges",
				"edge", fmt.Sprintf("%d-%d", p.U, p.V))
			continue
		}

		groupA, groupB := a.g.Group(codeA), a.g.Group(codeB)
		for _, c := range []string{codeA, codeB} {
			if len(a.g.Group(c)) == 0 && !empty[c] {
				empty[c] = true
				a.report.EmptyCategories = append(a.report.EmptyCategories, c)
				a.opts.logger.Debug("category has no member nodes", "category", c)
			}
		}

		for _, u := range groupA {
			for _, v := range groupB {
				if u == v {
					continue
				}
				if added, _ := a.g.addEdge(u, v, Induced); added {
					a.report.Induced++
				}
			}
		}
	}
}

func (a *assembler) addSameCategory() {
	limit := a.opts.groupLimit
	for _, code := range a.g.categories {
		members := a.g.groups[code]
		if len(members) < 2 {
			continue
		}
		if limit >= 0 && len(members) > limit {
			a.report.ExemptGroups = append(a.report.ExemptGroups, GroupSize{Code: code, Size: len(members)})
			a.opts.logger.Debug("category group exempt from same-category edges",
				"category", code, "size", len(members), "limit", limit)
			continue
		}
		for i, u := range members {
			for _, v := range members[i+1:] {
				if added, _ := a.g.addEdge(u, v, SameCategory); added {
					a.report.SameCategory++
				}
			}
		}
	}
}
