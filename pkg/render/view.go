package render

import (
	"fmt"
	"slices"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pathfind"
)

// Default pen widths for diagram edges.
const (
	DefaultPenStructural = 3.0
	DefaultPenAugmented  = 2.0
)

// Fill is the background hint of a diagram node.
type Fill uint8

const (
	Neutral Fill = iota
	Start
	Goal
)

// Color returns the Graphviz fill color for f.
func (f Fill) Color() string {
	switch f {
	case Start:
		return "green"
	case Goal:
		return "red"
	default:
		return "white"
	}
}

// ViewNode is a node shown in the diagram.
type ViewNode struct {
	ID    int
	Label string // Multi-line display label
	Fill  Fill
}

// ViewEdge is an edge shown in the diagram.
type ViewEdge struct {
	U, V  int
	Class layered.Class
	Pen   float64
}

// Color returns the class color of e.
func (e ViewEdge) Color() string { return e.Class.Color() }

// Style returns the line style of e.
func (e ViewEdge) Style() string { return e.Class.Style() }

// View is everything a comparison diagram shows.
type View struct {
	Source, Target int
	Nodes          []ViewNode // Ordered by id
	Edges          []ViewEdge // Structural path edges first
	Structural     []string   // Path strings of the structural paths
	Augmented      []string   // Path strings of the augmented paths
	Info           []string   // Lines of the info note
}

// ViewOption configures BuildView.
type ViewOption func(*viewOptions)

type viewOptions struct {
	penStructural float64
	penAugmented  float64
}

// WithPens sets the pen widths of structural path edges and augmenting edges.
func WithPens(structural, augmented float64) ViewOption {
	return func(o *viewOptions) {
		o.penStructural = structural
		o.penAugmented = augmented
	}
}

// BuildView selects the nodes and edges of a comparison diagram.
//
// The node set is every node on a structural path, the two endpoints and
// every node on an augmented path. Edges are the structural path edges plus
// every Induced or SameCategory edge whose endpoints both lie on a
// structural or augmented path.
func BuildView(g *layered.Graph, source, target int, structural, augmented []pathfind.Path, opts ...ViewOption) View {
	o := viewOptions{penStructural: DefaultPenStructural, penAugmented: DefaultPenAugmented}
	for _, opt := range opts {
		opt(&o)
	}

	onPaths := pathfind.AllowedFromPaths(structural)
	onPaths.Add(pathfind.AllowedFromPaths(augmented).Sorted()...)

	shown := pathfind.NewNodeSet(source, target)
	shown.Add(onPaths.Sorted()...)

	v := View{Source: source, Target: target}
	for _, id := range shown.Sorted() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		fill := Neutral
		switch id {
		case source:
			fill = Start
		case target:
			fill = Goal
		}
		v.Nodes = append(v.Nodes, ViewNode{ID: id, Label: n.DisplayLabel(), Fill: fill})
	}

	drawn := make(map[[2]int]bool)
	for _, p := range structural {
		for i := 1; i < len(p); i++ {
			e, ok := g.Edge(p[i-1], p[i])
			if !ok || drawn[[2]int{e.U, e.V}] {
				continue
			}
			drawn[[2]int{e.U, e.V}] = true
			v.Edges = append(v.Edges, ViewEdge{U: e.U, V: e.V, Class: e.Class, Pen: o.penStructural})
		}
	}
	for _, e := range g.Edges() {
		if !e.Class.Augmenting() || drawn[[2]int{e.U, e.V}] {
			continue
		}
		if !onPaths.Has(e.U) || !onPaths.Has(e.V) {
			continue
		}
		drawn[[2]int{e.U, e.V}] = true
		v.Edges = append(v.Edges, ViewEdge{U: e.U, V: e.V, Class: e.Class, Pen: o.penAugmented})
	}

	for _, p := range structural {
		v.Structural = append(v.Structural, PathString(g, p))
	}
	for _, p := range augmented {
		v.Augmented = append(v.Augmented, PathString(g, p))
	}
	v.Info = infoLines(v.Structural, v.Augmented)
	return v
}

func infoLines(structural, augmented []string) []string {
	var lines []string
	if len(structural) == 0 {
		lines = append(lines, "L1   none")
	}
	for i, s := range structural {
		lines = append(lines, fmt.Sprintf("L1   %d: %s", i+1, s))
	}
	if len(augmented) == 0 {
		lines = append(lines, "L1+L2    none")
	}
	for i, s := range augmented {
		lines = append(lines, fmt.Sprintf("L1+L2    %d: %s", i+1, s))
	}
	return lines
}

// Node returns the view node with the given id.
func (v View) Node(id int) (ViewNode, bool) {
	i, ok := slices.BinarySearchFunc(v.Nodes, id, func(n ViewNode, id int) int { return n.ID - id })
	if !ok {
		return ViewNode{}, false
	}
	return v.Nodes[i], true
}
