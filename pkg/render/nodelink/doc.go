// Package nodelink renders comparison views as undirected node-link diagrams.
//
// # Usage
//
// Convert a [render.View] to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(view, nodelink.Options{DPI: 300})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # DOT Format
//
// The generated graph is named L1_vs_L2 and laid out top to bottom. Nodes are
// filled boxes labelled "# <id>", the structural label and the category code.
// A plaintext Courier note lists the structural and augmented path strings.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
