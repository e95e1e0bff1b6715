package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/pipeline"
	"github.com/matzehuels/layerroute/pkg/render"
)

// solveFlags holds the flags of the solve command.
type solveFlags struct {
	sourceFlags
	start    int
	goal     int
	k        int
	format   string
	dpi      int
	output   string
	edgesOut string
	noView   bool
	browse   bool
}

// solveCommand creates the solve command, which compares structural and
// augmented paths between two nodes and renders the comparison.
func (c *CLI) solveCommand() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compare structural and augmented paths between two nodes",
		Long: `Solve builds (or loads) the layered graph, finds up to k shortest structural
(L1) paths from start to goal, then up to k cheapest paths over the nodes of
those paths using every edge class (L1+L2). Both sets are drawn in one
diagram with the path strings listed in an info box.`,
		Example: `  layerroute solve --l1l2 1050400_L1-L2_DB.txt --l2 1050400_L2_DB.txt
  layerroute solve --l1l2 nodes.txt --l2 categories.txt -s 3 -g 40 -k 5 --format svg
  layerroute solve --l1l2 nodes.txt --l2 categories.txt --browse --no-view`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applySolveConfig(cmd, &f)
			return c.runSolve(cmd.Context(), &f)
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&f.start, "start", "s", 0, "start node id (default from config)")
	cmd.Flags().IntVarP(&f.goal, "goal", "g", 0, "goal node id (default from config)")
	cmd.Flags().IntVarP(&f.k, "k", "k", 0, "number of paths per search, 0 for all shortest structural paths (default from config)")
	cmd.Flags().StringVar(&f.format, "format", "", "diagram format: "+strings.Join(pipeline.Formats(), ", ")+" (default from config)")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, "diagram resolution (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "diagram file (default: <prefix>_l1_l2_comparison.<format>)")
	cmd.Flags().StringVar(&f.edgesOut, "edges-out", "", "also write the full edge list to this file")
	cmd.Flags().BoolVar(&f.noView, "no-view", false, "do not open the diagram in a viewer")
	cmd.Flags().BoolVar(&f.browse, "browse", false, "browse the found paths interactively")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// applySolveConfig fills every flag the user did not set from the config.
func (c *CLI) applySolveConfig(cmd *cobra.Command, f *solveFlags) {
	cfg := c.config
	flags := cmd.Flags()
	if !flags.Changed("start") {
		f.start = cfg.Search.Start
	}
	if !flags.Changed("goal") {
		f.goal = cfg.Search.Goal
	}
	if !flags.Changed("k") {
		f.k = cfg.Search.DefaultK
	}
	if !flags.Changed("format") {
		f.format = cfg.Render.Format
	}
	if !flags.Changed("dpi") {
		f.dpi = cfg.Render.DPI
	}
}

func (c *CLI) solveOptions(f *solveFlags) (pipeline.SolveOptions, error) {
	if f.k < 0 {
		return pipeline.SolveOptions{}, errors.New(errors.ErrCodeInvalidInput, "k must not be negative, got %d", f.k)
	}
	format := strings.ToLower(f.format)
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.SolveOptions{}, err
	}
	return pipeline.SolveOptions{
		Source:         f.start,
		Target:         f.goal,
		K:              f.k,
		AugmentedLimit: c.config.AugmentedLimit(f.k),
		Format:         format,
		DPI:            f.dpi,
		PenStructural:  c.config.Render.PenStructural,
		PenAugmented:   c.config.Render.PenAugmented,
		Logger:         c.Logger,
	}, nil
}

var stageMessages = map[string]string{
	"build":  "Building graph...",
	"search": "Searching paths...",
	"render": "Rendering diagram...",
}

func (c *CLI) runSolve(ctx context.Context, f *solveFlags) error {
	sopts, err := c.solveOptions(f)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, &f.sourceFlags)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, stageMessages["build"])
	sopts.Progress = func(stage string) {
		prog.enter(stage)
		spinner.Update(stageMessages[stage])
	}
	spinner.Start()

	result, err := runner.Solve(ctx, c.buildOptions(&f.sourceFlags), sopts)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Compared paths %s %s %s", StyleHighlight.Render(fmt.Sprint(f.start)), iconArrow, StyleHighlight.Render(fmt.Sprint(f.goal)))
	printStats(result.Build.Graph.NodeCount(), result.Build.Graph.EdgeCount(), result.Build.FromCache)
	printPathLines(result.View.Info)
	noPath := len(result.Structural) == 0

	output := f.output
	if output == "" {
		output = fmt.Sprintf("%s_l1_l2_comparison.%s", result.Build.Prefix, result.Format)
	}
	if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	printFile(output)

	if f.edgesOut != "" {
		if err := render.WriteEdgeListFile(result.Build.Graph, f.edgesOut); err != nil {
			return err
		}
		printFile(f.edgesOut)
	}

	prog.done(fmt.Sprintf("Solved %d → %d", f.start, f.goal))

	if f.browse && !noPath {
		if err := c.browse(ctx, result); err != nil {
			return err
		}
	}

	if !f.noView && result.Format != pipeline.FormatDOT {
		if err := openViewer(output, c.config.Render.Viewer); err != nil {
			c.Logger.Debug("cannot open viewer", "file", output, "error", err)
		}
	}
	if noPath {
		return errors.New(errors.ErrCodeNoPathFound, "no structural path from %d to %d", f.start, f.goal)
	}
	return nil
}

func (c *CLI) browse(ctx context.Context, result *pipeline.SolveResult) error {
	selected, err := browsePaths(ctx, NewPathBrowserModel(result.Build.Graph, result.SearchResult))
	if err != nil {
		return err
	}
	if selected == nil {
		printDetail("No selection made")
		return nil
	}

	g := result.Build.Graph
	printInfo("%s path %d: %s", selected.Kind, selected.Index, StyleHighlight.Render(selected.Text))
	edges, err := selected.Path.Edges(g)
	if err != nil {
		return err
	}
	for _, e := range edges {
		printKeyValue(fmt.Sprintf("%d %s %d", e.U, render.Connector(e.Class), e.V), fmt.Sprintf("%s (%g)", e.Class, e.Weight))
	}
	return nil
}
