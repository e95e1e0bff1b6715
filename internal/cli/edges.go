package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/render"
)

// edgesCommand creates the edges command, which writes every edge of the
// assembled graph grouped by class.
func (c *CLI) edgesCommand() *cobra.Command {
	var (
		f      sourceFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Write the edge list of the assembled graph",
		Example: `  layerroute edges --l1l2 1050400_L1-L2_DB.txt --l2 1050400_L2_DB.txt
  layerroute edges --l1l2 nodes.txt --l2 categories.txt -o edges.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdges(cmd.Context(), &f, output)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultEdgeList, "edge list file")

	return cmd
}

func (c *CLI) runEdges(ctx context.Context, f *sourceFlags, output string) error {
	runner, err := c.newRunner(ctx, f)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Build(ctx, c.buildOptions(f))
	if err != nil {
		return err
	}
	if err := render.WriteEdgeListFile(result.Graph, output); err != nil {
		return err
	}

	printSuccess("Wrote %d edges", result.Graph.EdgeCount())
	for _, class := range layered.Classes {
		printDetail("%s: %d", class, result.Graph.CountByClass(class))
	}
	printFile(output)
	return nil
}
