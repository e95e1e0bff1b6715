package render

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pathfind"
)

// sampleGraph has a structural chain 0-1-2, an induced edge 1-3, a
// same-category edge 0-2 and an unrelated induced edge 3-4.
func sampleGraph(t *testing.T) *layered.Graph {
	t.Helper()
	nodes := make([]layered.Node, 5)
	for i := range nodes {
		nodes[i] = layered.Node{ID: i, Label: "n", Category: "C"}
	}
	g, err := layered.Restore(nodes, []layered.Edge{
		{U: 0, V: 1, Class: layered.Structural},
		{U: 1, V: 2, Class: layered.Structural},
		{U: 1, V: 3, Class: layered.Induced},
		{U: 0, V: 2, Class: layered.SameCategory},
		{U: 3, V: 4, Class: layered.Induced},
	}, layered.DefaultWeights())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return g
}

func TestPathString(t *testing.T) {
	g := sampleGraph(t)
	tests := []struct {
		path pathfind.Path
		want string
	}{
		{pathfind.Path{0, 1, 2}, "0->1->2"},
		{pathfind.Path{2, 0, 1, 3}, "2--0->1=>3"},
		{pathfind.Path{4}, "4"},
		{pathfind.Path{0, 4}, "0??4"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := PathString(g, tt.path); got != tt.want {
			t.Errorf("PathString(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBuildView(t *testing.T) {
	g := sampleGraph(t)
	v := BuildView(g, 0, 2, []pathfind.Path{{0, 1, 2}}, []pathfind.Path{{0, 2}})

	var ids []int
	for _, n := range v.Nodes {
		ids = append(ids, n.ID)
	}
	if !reflect.DeepEqual(ids, []int{0, 1, 2}) {
		t.Errorf("node ids = %v, want [0 1 2]", ids)
	}
	if n, _ := v.Node(0); n.Fill != Start || n.Fill.Color() != "green" {
		t.Errorf("Node(0) fill = %v", n.Fill)
	}
	if n, _ := v.Node(2); n.Fill != Goal || n.Fill.Color() != "red" {
		t.Errorf("Node(2) fill = %v", n.Fill)
	}
	if n, _ := v.Node(1); n.Fill != Neutral || n.Label != "# 1\nn\nC" {
		t.Errorf("Node(1) = %+v", n)
	}

	want := []ViewEdge{
		{U: 0, V: 1, Class: layered.Structural, Pen: 3.0},
		{U: 1, V: 2, Class: layered.Structural, Pen: 3.0},
		{U: 0, V: 2, Class: layered.SameCategory, Pen: 2.0},
	}
	if !reflect.DeepEqual(v.Edges, want) {
		t.Errorf("Edges = %+v, want %+v", v.Edges, want)
	}
	if v.Edges[2].Color() != "blue" || v.Edges[2].Style() != "dotted" {
		t.Errorf("same-category edge rendered as %s/%s", v.Edges[2].Color(), v.Edges[2].Style())
	}

	wantInfo := []string{"L1   1: 0->1->2", "L1+L2    1: 0--2"}
	if !reflect.DeepEqual(v.Info, wantInfo) {
		t.Errorf("Info = %q, want %q", v.Info, wantInfo)
	}
}

func TestBuildViewWithoutPaths(t *testing.T) {
	g := sampleGraph(t)
	v := BuildView(g, 0, 4, nil, nil, WithPens(5, 1))

	if len(v.Nodes) != 2 || len(v.Edges) != 0 {
		t.Errorf("view = %d nodes, %d edges; want 2, 0", len(v.Nodes), len(v.Edges))
	}
	if !reflect.DeepEqual(v.Info, []string{"L1   none", "L1+L2    none"}) {
		t.Errorf("Info = %q", v.Info)
	}
	if _, ok := v.Node(3); ok {
		t.Error("Node(3) should not be shown")
	}
}

func TestBuildViewPens(t *testing.T) {
	g := sampleGraph(t)
	v := BuildView(g, 0, 3, []pathfind.Path{{0, 1, 3}}, nil, WithPens(4, 1.5))
	for _, e := range v.Edges {
		want := 4.0
		if e.Class.Augmenting() && !(e.U == 1 && e.V == 3) {
			want = 1.5
		}
		if e.Pen != want {
			t.Errorf("edge %d-%d pen = %v, want %v", e.U, e.V, e.Pen, want)
		}
	}
}

func TestFormatPairs(t *testing.T) {
	var edges []layered.Edge
	for i := range 25 {
		edges = append(edges, layered.Edge{U: i, V: i + 1})
	}

	lines := strings.Split(FormatPairs(edges), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if got := len(strings.Split(lines[0], " | ")); got != PairsPerLine {
		t.Errorf("first line pairs = %d, want %d", got, PairsPerLine)
	}
	if lines[1] != "20-21 | 21-22 | 22-23 | 23-24 | 24-25" {
		t.Errorf("second line = %q", lines[1])
	}
	if FormatPairs(nil) != "" {
		t.Error("FormatPairs(nil) should be empty")
	}
}

func TestWriteEdgeList(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdgeList(&buf, sampleGraph(t)); err != nil {
		t.Fatalf("WriteEdgeList: %v", err)
	}

	want := "### Black Edges (L1 edges) - 2 edges\n0-1 | 1-2\n\n\n" +
		"### Red Edges (L2 relationship edges) - 2 edges\n1-3 | 3-4\n\n\n" +
		"### Blue Edges (Same L2 code, dotted) - 1 edges\n0-2\n\n\n"
	if buf.String() != want {
		t.Errorf("WriteEdgeList =\n%s\nwant\n%s", buf.String(), want)
	}

	path := filepath.Join(t.TempDir(), "all_edges.txt")
	if err := WriteEdgeListFile(sampleGraph(t), path); err != nil {
		t.Fatalf("WriteEdgeListFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != want {
		t.Errorf("file content = %q, %v", data, err)
	}
}
