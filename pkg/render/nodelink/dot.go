package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layerroute/pkg/render"
)

// DefaultDPI is the resolution used when Options.DPI is zero.
const DefaultDPI = 300

// infoNodeID names the plaintext note listing the paths.
const infoNodeID = "info"

// Options configures node-link diagram rendering.
type Options struct {
	// DPI sets the Graphviz output resolution. Zero means [DefaultDPI].
	DPI int
	// OmitInfo leaves out the note that lists the path strings.
	OmitInfo bool
}

// ToDOT converts a view to an undirected Graphviz DOT graph.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// The start node is filled green and the goal red. Structural path edges are
// drawn with the structural pen, augmenting edges in their class color, and
// the info note is attached to the start node by an invisible edge so that it
// is placed below it.
func ToDOT(v render.View, opts Options) string {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	var buf bytes.Buffer
	buf.WriteString("graph L1_vs_L2 {\n")
	fmt.Fprintf(&buf, "  dpi=%d;\n", dpi)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  margin=0.3;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.ID), strings.Join(fmtNodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", nodeID(e.U), nodeID(e.V), strings.Join(fmtEdgeAttrs(e), ", "))
	}

	if !opts.OmitInfo && len(v.Info) > 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, fontname=Courier];\n", infoNodeID, strings.Join(v.Info, "\n"))
		fmt.Fprintf(&buf, "  %q -- %q [style=invis];\n", nodeID(v.Source), infoNodeID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return strconv.Itoa(id) }

func fmtNodeAttrs(n render.ViewNode) []string {
	return []string{
		fmt.Sprintf("label=%q", n.Label),
		"style=filled",
		"fillcolor=" + n.Fill.Color(),
	}
}

func fmtEdgeAttrs(e render.ViewEdge) []string {
	return []string{
		"color=" + e.Color(),
		fmt.Sprintf("penwidth=%.1f", e.Pen),
		"style=" + e.Style(),
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with its
// container; Graphviz emits point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDFContext(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNGContext(ctx, svg, scale)
}
