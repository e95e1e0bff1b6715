// Package pipeline runs the build → search → render sequence shared by all
// layerroute commands.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: load the assembled graph from the cache, or parse both source
//     files, assemble the graph and store a snapshot
//  2. Search: enumerate structural paths, then augmented paths restricted to
//     the nodes the structural paths visit
//  3. Render: select the comparison view and produce the diagram in the
//     requested format
//
// Each stage can be run independently or as part of [Runner.Solve].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Solve(ctx,
//	    pipeline.BuildOptions{NodesPath: "1050400_L1-L2_DB.txt", CategoriesPath: "1050400_L2_DB.txt"},
//	    pipeline.SolveOptions{Source: 0, Target: 25, K: 10, AugmentedLimit: 10, Format: "pdf"},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.pdf", res.Artifact, 0644)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pathfind"
	"github.com/matzehuels/layerroute/pkg/render"
	"github.com/matzehuels/layerroute/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSource and DefaultTarget are the endpoints searched when none
	// are given.
	DefaultSource = 0
	DefaultTarget = 25

	// DefaultK bounds both searches.
	DefaultK = 10

	// DefaultPNGScale is the rsvg-convert zoom applied to PNG output. The DOT
	// graph already carries the resolution, so no extra scaling is needed.
	DefaultPNGScale = 1.0
)

// Format constants for diagram output.
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// DefaultFormat is the diagram format used when none is given.
const DefaultFormat = FormatPDF

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatPDF: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatDOT: true,
}

// Formats lists the supported diagram formats in display order.
func Formats() []string { return []string{FormatPDF, FormatSVG, FormatPNG, FormatDOT} }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// BuildOptions configures the build stage.
type BuildOptions struct {
	NodesPath      string // File A: nodes and structural edges
	CategoriesPath string // File B: categories and category edges

	// Prefix names the cache entry. Derived from NodesPath when empty.
	Prefix string

	Weights    layered.Weights // Zero value selects layered.DefaultWeights
	GroupLimit int             // See layered.WithGroupLimit
	Force      bool            // Rebuild even when a usable snapshot exists

	Logger *log.Logger
}

// Validate checks required fields and applies defaults.
func (o *BuildOptions) Validate() error {
	if o.NodesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "nodes file (L1+L2) is required")
	}
	if o.CategoriesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "categories file (L2) is required")
	}
	if o.Prefix == "" {
		o.Prefix = source.Prefix(o.NodesPath)
	}
	if o.Weights == (layered.Weights{}) {
		o.Weights = layered.DefaultWeights()
	}
	return nil
}

// fingerprint covers every build setting that changes the assembled graph.
func (o *BuildOptions) fingerprint() string {
	w := o.Weights
	return fmt.Sprintf("weights=%g/%g/%g group_limit=%d", w.Structural, w.Induced, w.SameCategory, o.GroupLimit)
}

// SolveOptions configures the search and render stages.
type SolveOptions struct {
	Source, Target int

	// K bounds the structural search. Zero or less returns every shortest
	// structural path.
	K int

	// AugmentedLimit bounds the augmented search and must be positive.
	AugmentedLimit int

	Format        string
	DPI           int     // Zero uses the renderer default
	PenStructural float64 // Zero uses the renderer default
	PenAugmented  float64

	// Progress, when set, is called as each stage starts with "build",
	// "search" or "render".
	Progress func(stage string)

	Logger *log.Logger
}

// Validate checks the search bounds and output format and applies defaults.
func (o *SolveOptions) Validate() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.AugmentedLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "augmented limit must be positive, got %d", o.AugmentedLimit)
	}
	if o.PenStructural <= 0 {
		o.PenStructural = render.DefaultPenStructural
	}
	if o.PenAugmented <= 0 {
		o.PenAugmented = render.DefaultPenAugmented
	}
	return nil
}

func (o *SolveOptions) stage(name string) {
	if o.Progress != nil {
		o.Progress(name)
	}
}

// =============================================================================
// Results
// =============================================================================

// BuildResult is the outcome of the build stage.
type BuildResult struct {
	Graph  *layered.Graph
	Prefix string
	Key    string // Cache key of the snapshot

	// Report is nil when the graph came from the cache.
	Report *layered.Report

	// Warnings lists edge lines the parser skipped in either source file.
	Warnings []source.Warning

	FromCache bool
	Duration  time.Duration
}

// SearchResult holds the paths of both searches.
type SearchResult struct {
	Structural []pathfind.Path
	Augmented  []pathfind.Path
}

// SolveResult is the outcome of a full pipeline run.
type SolveResult struct {
	RunID string
	Build *BuildResult
	SearchResult

	View     render.View
	DOT      string
	Format   string
	Artifact []byte // The diagram in Format

	Stats Stats
}

// Stats contains pipeline timing information.
type Stats struct {
	BuildTime  time.Duration
	SearchTime time.Duration
	RenderTime time.Duration
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
