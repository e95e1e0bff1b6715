package layered

import (
	"reflect"
	"testing"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/source"
)

func records(categories ...string) []source.NodeRecord {
	out := make([]source.NodeRecord, len(categories))
	for i, c := range categories {
		out[i] = source.NodeRecord{ID: i, Label: "n", Category: c}
	}
	return out
}

func mustAssemble(t *testing.T, in Input, opts ...Option) (*Graph, *Report) {
	t.Helper()
	g, r, err := Assemble(in, opts...)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	return g, r
}

func wantEdge(t *testing.T, g *Graph, u, v int, c Class) {
	t.Helper()
	e, ok := g.Edge(u, v)
	if !ok {
		t.Fatalf("edge %d-%d missing", u, v)
	}
	if e.Class != c {
		t.Errorf("edge %d-%d class = %v, want %v", u, v, e.Class, c)
	}
}

func TestAssembleExampleScenario(t *testing.T) {
	g, report := mustAssemble(t, Input{
		Nodes:           records("A", "B", "C", "A"),
		StructuralEdges: []source.Pair{{U: 0, V: 1}, {U: 1, V: 2}},
		CategoryCodes:   map[int]string{0: "A", 1: "B", 2: "C"},
	})

	wantEdge(t, g, 0, 1, Structural)
	wantEdge(t, g, 1, 2, Structural)
	wantEdge(t, g, 0, 3, SameCategory)
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if report.Structural != 2 || report.Induced != 0 || report.SameCategory != 1 {
		t.Errorf("report counts = %d/%d/%d, want 2/0/1", report.Structural, report.Induced, report.SameCategory)
	}

	e, _ := g.Edge(3, 0)
	if e.Weight != 0.5 || e.Style() != "dotted" {
		t.Errorf("same-category edge = %+v, want weight 0.5 dotted", e)
	}
}

func TestAssemblePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		edges []source.Pair // category edges over codes 0:A 1:B
		want  map[[2]int]Class
	}{
		{
			name:  "induced does not replace structural",
			edges: []source.Pair{{U: 0, V: 1}},
			want: map[[2]int]Class{
				{0, 1}: Structural,
				{1, 3}: Induced,
				{0, 3}: SameCategory,
				{1, 2}: Structural,
			},
		},
		{
			name:  "induced beats same-category",
			edges: []source.Pair{{U: 0, V: 0}},
			want: map[[2]int]Class{
				{0, 1}: Structural,
				{1, 2}: Structural,
				{0, 3}: Induced,
			},
		},
		{
			name: "structural beats same-category",
			want: map[[2]int]Class{
				{0, 1}: Structural,
				{1, 2}: Structural,
				{0, 3}: SameCategory,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := mustAssemble(t, Input{
				Nodes:           records("A", "B", "C", "A"),
				StructuralEdges: []source.Pair{{U: 0, V: 1}, {U: 1, V: 2}},
				CategoryCodes:   map[int]string{0: "A", 1: "B"},
				CategoryEdges:   tt.edges,
			})
			if g.EdgeCount() != len(tt.want) {
				t.Errorf("EdgeCount() = %d, want %d: %v", g.EdgeCount(), len(tt.want), g.Edges())
			}
			for pair, c := range tt.want {
				wantEdge(t, g, pair[0], pair[1], c)
			}
		})
	}
}

func TestAssembleStructuralSameCategoryPair(t *testing.T) {
	g, _ := mustAssemble(t, Input{
		Nodes:           records("A", "A"),
		StructuralEdges: []source.Pair{{U: 1, V: 0}},
	})
	wantEdge(t, g, 0, 1, Structural)
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestAssembleSkipsBadEdges(t *testing.T) {
	g, report := mustAssemble(t, Input{
		Nodes:           records("A", "B", "C"),
		StructuralEdges: []source.Pair{{U: 0, V: 1}, {U: 0, V: 9}, {U: 2, V: 2}, {U: 1, V: 0}},
		CategoryCodes:   map[int]string{0: "A", 1: "B"},
		CategoryEdges:   []source.Pair{{U: 0, V: 7}, {U: 1, V: 0}},
	})

	if len(report.SkippedStructural) != 2 {
		t.Errorf("SkippedStructural = %v, want 2 entries", report.SkippedStructural)
	}
	if len(report.SkippedCategory) != 1 || report.SkippedCategory[0].Pair != (source.Pair{U: 0, V: 7}) {
		t.Errorf("SkippedCategory = %v, want [0-7]", report.SkippedCategory)
	}
	if report.Structural != 1 {
		t.Errorf("Structural = %d, want 1 (duplicate ignored)", report.Structural)
	}
	wantEdge(t, g, 0, 1, Structural)
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestAssembleUnknownCategoryCode(t *testing.T) {
	// Node 2 carries a code that File B never declares.
	g, report := mustAssemble(t, Input{
		Nodes:           records("A", "B", "Z"),
		StructuralEdges: []source.Pair{{U: 0, V: 2}},
		CategoryCodes:   map[int]string{0: "A", 1: "B"},
		CategoryEdges:   []source.Pair{{U: 0, V: 1}},
	})

	wantEdge(t, g, 0, 1, Induced)
	wantEdge(t, g, 0, 2, Structural)
	if g.Degree(2) != 1 {
		t.Errorf("Degree(2) = %d, want 1", g.Degree(2))
	}
	if len(report.SkippedCategory) != 0 {
		t.Errorf("SkippedCategory = %v, want none", report.SkippedCategory)
	}
}

func TestAssembleEmptyCategories(t *testing.T) {
	_, report := mustAssemble(t, Input{
		Nodes:         records("A"),
		CategoryCodes: map[int]string{0: "A", 1: "Q"},
		CategoryEdges: []source.Pair{{U: 0, V: 1}, {U: 1, V: 1}},
	})
	if !reflect.DeepEqual(report.EmptyCategories, []string{"Q"}) {
		t.Errorf("EmptyCategories = %v, want [Q]", report.EmptyCategories)
	}
}

func TestAssembleGroupLimit(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		wantEdges  int
		wantExempt []GroupSize
	}{
		{"under limit", 5, 10, nil},
		{"over limit", 3, 0, []GroupSize{{Code: "A", Size: 5}}},
		{"zero exempts all", 0, 0, []GroupSize{{Code: "A", Size: 5}}},
		{"negative is unbounded", -1, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, report := mustAssemble(t, Input{Nodes: records("A", "A", "A", "A", "A", "B")}, WithGroupLimit(tt.limit))
			if g.CountByClass(SameCategory) != tt.wantEdges {
				t.Errorf("same-category edges = %d, want %d", g.CountByClass(SameCategory), tt.wantEdges)
			}
			if !reflect.DeepEqual(report.ExemptGroups, tt.wantExempt) {
				t.Errorf("ExemptGroups = %v, want %v", report.ExemptGroups, tt.wantExempt)
			}
		})
	}
}

func TestAssembleWeights(t *testing.T) {
	w := Weights{Structural: 2, Induced: 3, SameCategory: 4}
	g, _ := mustAssemble(t, Input{
		Nodes:           records("A", "B", "A"),
		StructuralEdges: []source.Pair{{U: 0, V: 1}},
		CategoryCodes:   map[int]string{0: "A", 1: "B"},
		CategoryEdges:   []source.Pair{{U: 0, V: 1}},
	}, WithWeights(w))

	for _, e := range g.Edges() {
		if e.Weight != w.Of(e.Class) {
			t.Errorf("edge %d-%d weight = %v, want %v", e.U, e.V, e.Weight, w.Of(e.Class))
		}
	}
	if g.Weights() != w {
		t.Errorf("Weights() = %+v, want %+v", g.Weights(), w)
	}
}

func TestAssembleInvalidNodes(t *testing.T) {
	tests := []struct {
		name  string
		nodes []source.NodeRecord
	}{
		{"gap", []source.NodeRecord{{ID: 0}, {ID: 2}}},
		{"duplicate", []source.NodeRecord{{ID: 0}, {ID: 0}}},
		{"negative", []source.NodeRecord{{ID: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Assemble(Input{Nodes: tt.nodes})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Assemble() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestAssembleUnorderedRecords(t *testing.T) {
	g, _ := mustAssemble(t, Input{Nodes: []source.NodeRecord{
		{ID: 1, Label: "b", Category: "X"},
		{ID: 0, Label: "a", Category: "Y"},
	}})
	n, _ := g.Node(0)
	if n.Label != "a" || n.Category != "Y" {
		t.Errorf("Node(0) = %+v", n)
	}
}

func TestFromSources(t *testing.T) {
	ns := &source.NodeSource{Records: records("A"), Edges: []source.Pair{{U: 0, V: 0}}}
	cs := &source.CategorySource{Codes: map[int]string{0: "A"}, Edges: []source.Pair{{U: 0, V: 0}}}
	in := FromSources(ns, cs)
	if len(in.Nodes) != 1 || len(in.StructuralEdges) != 1 || in.CategoryCodes[0] != "A" || len(in.CategoryEdges) != 1 {
		t.Errorf("FromSources() = %+v", in)
	}
}
