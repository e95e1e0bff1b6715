package layered

import (
	"errors"
	"testing"
)

func sampleNodes() []Node {
	return []Node{
		{ID: 0, Label: "pump\ninlet", Category: "A"},
		{ID: 1, Label: "valve", Category: "B"},
		{ID: 2, Label: "tank", Category: "A"},
	}
}

func TestRestore(t *testing.T) {
	edges := []Edge{
		{U: 0, V: 1, Class: Structural},
		{U: 2, V: 1, Class: Induced},
		{U: 0, V: 2, Class: SameCategory},
	}
	g, err := Restore(sampleNodes(), edges, DefaultWeights())
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	e, ok := g.Edge(1, 2)
	if !ok || e.U != 1 || e.V != 2 || e.Class != Induced || e.Weight != 1.0 {
		t.Errorf("Edge(1, 2) = %+v, %v", e, ok)
	}
	if got := g.Neighbors(0); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Neighbors(0) = %v, want [1 2]", got)
	}
	if got := g.Group("A"); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Group(A) = %v, want [0 2]", got)
	}
	if got := g.Categories(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Categories() = %v, want [A B]", got)
	}
}

func TestRestoreRejects(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  error
	}{
		{"duplicate", sampleNodes(), []Edge{{U: 0, V: 1}, {U: 1, V: 0, Class: Induced}}, ErrDuplicateEdge},
		{"self-loop", sampleNodes(), []Edge{{U: 1, V: 1}}, ErrSelfLoop},
		{"unknown node", sampleNodes(), []Edge{{U: 0, V: 7}}, ErrUnknownNode},
		{"misordered nodes", []Node{{ID: 1}, {ID: 0}}, nil, ErrInvalidNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(tt.nodes, tt.edges, DefaultWeights())
			if !errors.Is(err, tt.want) {
				t.Errorf("Restore() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Restore(sampleNodes(), []Edge{{U: 0, V: 1, Class: Class(9)}}, DefaultWeights()); err == nil {
		t.Error("Restore() with invalid class should fail")
	}
}

func TestGraphLookupsOutOfRange(t *testing.T) {
	g, _ := Restore(sampleNodes(), nil, DefaultWeights())
	if _, ok := g.Node(5); ok {
		t.Error("Node(5) should not exist")
	}
	if g.Neighbors(-1) != nil {
		t.Error("Neighbors(-1) should be nil")
	}
	if g.CategoryOf(3) != "" {
		t.Error("CategoryOf(3) should be empty")
	}
	if g.HasEdge(0, 0) {
		t.Error("HasEdge(0, 0) should be false")
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: 4, Label: "pump\ninlet", Category: "A1"}
	if got, want := n.DisplayLabel(), "# 4\npump\ninlet\nA1"; got != want {
		t.Errorf("DisplayLabel() = %q, want %q", got, want)
	}

	g, _ := Restore(sampleNodes(), nil, DefaultWeights())
	if got := g.Labels()[1]; got != "# 1\nvalve\nB" {
		t.Errorf("Labels()[1] = %q", got)
	}
	if got := g.CategoryMap()[2]; got != "A" {
		t.Errorf("CategoryMap()[2] = %q", got)
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		class      Class
		name       string
		color      string
		style      string
		augmenting bool
	}{
		{Structural, "structural", "black", "solid", false},
		{Induced, "induced", "red", "solid", true},
		{SameCategory, "same-category", "blue", "dotted", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.class.String() != tt.name || tt.class.Color() != tt.color || tt.class.Style() != tt.style {
				t.Errorf("%v = (%s, %s, %s)", tt.class, tt.class.String(), tt.class.Color(), tt.class.Style())
			}
			if tt.class.Augmenting() != tt.augmenting {
				t.Errorf("Augmenting() = %v, want %v", tt.class.Augmenting(), tt.augmenting)
			}
			got, err := ParseClass(tt.name)
			if err != nil || got != tt.class {
				t.Errorf("ParseClass(%q) = %v, %v", tt.name, got, err)
			}
		})
	}

	if _, err := ParseClass("green"); err == nil {
		t.Error("ParseClass(green) should fail")
	}
}
