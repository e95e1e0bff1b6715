package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/render"
	"github.com/matzehuels/layerroute/pkg/render/nodelink"
)

func ExampleToDOT() {
	v := render.View{
		Source: 0,
		Target: 1,
		Nodes: []render.ViewNode{
			{ID: 0, Label: "start", Fill: render.Start},
			{ID: 1, Label: "goal", Fill: render.Goal},
		},
		Edges: []render.ViewEdge{{U: 0, V: 1, Class: layered.Induced, Pen: 2}},
	}
	fmt.Print(nodelink.ToDOT(v, nodelink.Options{DPI: 96}))
	// Output:
	// graph L1_vs_L2 {
	//   dpi=96;
	//   rankdir=TB;
	//   margin=0.3;
	//   nodesep=0.3;
	//   ranksep=0.3;
	//
	//   "0" [label="start", style=filled, fillcolor=green];
	//   "1" [label="goal", style=filled, fillcolor=red];
	//
	//   "0" -- "1" [color=red, penwidth=2.0, style=solid];
	// }
}
