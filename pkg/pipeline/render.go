package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/observability"
	"github.com/matzehuels/layerroute/pkg/render"
	"github.com/matzehuels/layerroute/pkg/render/nodelink"
)

// Rendered is the output of the render stage.
type Rendered struct {
	View     render.View
	DOT      string
	Artifact []byte
}

// Render builds the comparison view for found and produces the diagram in
// opts.Format. The dot format returns the DOT source itself and needs no
// external tools; pdf and png need rsvg-convert.
func (r *Runner) Render(ctx context.Context, g *layered.Graph, found *SearchResult, opts SolveOptions) (out *Rendered, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Format)
	defer func() { hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err) }()

	view := render.BuildView(g, opts.Source, opts.Target, found.Structural, found.Augmented,
		render.WithPens(opts.PenStructural, opts.PenAugmented))
	dot := nodelink.ToDOT(view, nodelink.Options{DPI: opts.DPI})

	var data []byte
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	return &Rendered{View: view, DOT: dot, Artifact: data}, nil
}
