package layered_test

import (
	"fmt"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/source"
)

func ExampleAssemble() {
	in := layered.Input{
		Nodes: []source.NodeRecord{
			{ID: 0, Label: "pump", Category: "A"},
			{ID: 1, Label: "valve", Category: "B"},
			{ID: 2, Label: "tank", Category: "C"},
			{ID: 3, Label: "filter", Category: "A"},
		},
		StructuralEdges: []source.Pair{{U: 0, V: 1}, {U: 1, V: 2}},
		CategoryCodes:   map[int]string{0: "A", 1: "B", 2: "C"},
		CategoryEdges:   []source.Pair{{U: 1, V: 2}},
	}

	g, report, err := layered.Assemble(in)
	if err != nil {
		panic(err)
	}
	for _, e := range g.Edges() {
		fmt.Printf("%d-%d %s\n", e.U, e.V, e.Class)
	}
	fmt.Println("induced:", report.Induced)
	// Output:
	// 0-1 structural
	// 1-2 structural
	// 0-3 same-category
	// induced: 0
}

func ExampleWithGroupLimit() {
	in := layered.Input{Nodes: []source.NodeRecord{
		{ID: 0, Category: "A"},
		{ID: 1, Category: "A"},
		{ID: 2, Category: "A"},
	}}

	_, report, _ := layered.Assemble(in, layered.WithGroupLimit(2))
	fmt.Println(report.ExemptGroups)
	// Output:
	// [{A 3}]
}
