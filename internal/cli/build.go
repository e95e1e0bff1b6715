package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/graph"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pipeline"
)

// buildCommand creates the build command, which assembles the layered graph
// and stores its snapshot.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		f      sourceFlags
		export string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the layered graph and store a snapshot",
		Long: `Build reads the node file (L1+L2) and the category file (L2), classifies
every edge as structural, induced or same-category, and stores the graph as a
snapshot so later solve runs skip the assembly.`,
		Example: `  layerroute build --l1l2 1050400_L1-L2_DB.txt --l2 1050400_L2_DB.txt
  layerroute build --l1l2 nodes.txt --l2 categories.txt --force -o graph.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), &f, export)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&export, "export", "o", "", "also write the graph as JSON to this file")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, f *sourceFlags, export string) error {
	runner, err := c.newRunner(ctx, f)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Building graph...")
	spinner.Start()

	result, err := runner.Build(ctx, c.buildOptions(f))
	spinner.Stop()
	if err != nil {
		return err
	}

	if result.FromCache {
		printSuccess("Graph snapshot exists for %s", StyleHighlight.Render(result.Prefix))
		printDetail("use --force to rebuild")
	} else {
		printSuccess("Built graph for %s", StyleHighlight.Render(result.Prefix))
	}
	printStats(result.Graph.NodeCount(), result.Graph.EdgeCount(), result.FromCache)
	printClassCounts(result.Graph)
	if result.Report != nil {
		printReport(result)
	}

	if export != "" {
		if err := graph.WriteGraphFile(result.Graph, export); err != nil {
			return fmt.Errorf("export graph: %w", err)
		}
		printFile(export)
	}

	prog.done(fmt.Sprintf("Built %s", result.Prefix))
	printNextStep("Compare paths", fmt.Sprintf("%s solve --l1l2 %s --l2 %s", appName, f.nodes, f.categories))
	return nil
}

func printClassCounts(g *layered.Graph) {
	for _, class := range layered.Classes {
		printKeyValue(class.String(), fmt.Sprint(g.CountByClass(class)))
	}
}

// printReport summarizes what the assembler skipped or left out.
func printReport(result *pipeline.BuildResult) {
	r := result.Report
	if n := len(result.Warnings); n > 0 {
		printWarning("%d malformed edge lines skipped", n)
	}
	if n := len(r.SkippedStructural) + len(r.SkippedCategory); n > 0 {
		printWarning("%d edges reference unknown nodes or categories", n)
	}
	if len(r.EmptyCategories) > 0 {
		printDetail("categories without nodes: %s", strings.Join(r.EmptyCategories, ", "))
	}
	for _, g := range r.ExemptGroups {
		printDetail("category %s (%d nodes) has no same-category edges", g.Code, g.Size)
	}
}
