// Package render turns search results into diagram input and text listings.
//
// # Overview
//
// The package is the narrow boundary between the graph core and any
// rendering backend. It provides:
//
//   - [View]: the nodes, edges and info lines a diagram shows
//   - [PathString]: the textual form of a path, e.g. "0->1=>4--7"
//   - [WriteEdgeList]: the per-class edge listing
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Views
//
// [BuildView] selects what a comparison diagram shows: every node on a
// structural path plus the endpoints, the structural path edges drawn heavy
// and black, and every Induced or SameCategory edge among those nodes drawn
// in its class color. Nodes carry a [Fill] hint (start, goal, neutral).
//
//	v := render.BuildView(g, 0, 25, structural, augmented)
//	dot := nodelink.ToDOT(v, nodelink.Options{DPI: 300})
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits Graphviz DOT for a [View] and renders it
// in-process.
//
// [nodelink]: github.com/matzehuels/layerroute/pkg/render/nodelink
package render
