package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/layerroute/pkg/layered"
)

// PairsPerLine is the number of "u-v" pairs on one edge listing line.
const PairsPerLine = 20

var sectionTitles = map[layered.Class]string{
	layered.Structural:   "Black Edges (L1 edges)",
	layered.Induced:      "Red Edges (L2 relationship edges)",
	layered.SameCategory: "Blue Edges (Same L2 code, dotted)",
}

// WriteEdgeList writes every edge of g grouped by class. Each section has a
// "### <title> - <count> edges" header followed by "u-v" pairs, 20 per line,
// separated by " | ".
func WriteEdgeList(w io.Writer, g *layered.Graph) error {
	bw := bufio.NewWriter(w)
	for _, c := range layered.Classes {
		edges := g.EdgesByClass(c)
		fmt.Fprintf(bw, "### %s - %d edges\n", sectionTitles[c], len(edges))
		bw.WriteString(FormatPairs(edges))
		bw.WriteString("\n\n\n")
	}
	return bw.Flush()
}

// WriteEdgeListFile writes the edge listing of g to path.
func WriteEdgeListFile(g *layered.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteEdgeList(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// FormatPairs renders edges as "u-v" pairs, [PairsPerLine] per line.
func FormatPairs(edges []layered.Edge) string {
	var lines []string
	for start := 0; start < len(edges); start += PairsPerLine {
		end := min(start+PairsPerLine, len(edges))
		pairs := make([]string, 0, end-start)
		for _, e := range edges[start:end] {
			pairs = append(pairs, fmt.Sprintf("%d-%d", e.U, e.V))
		}
		lines = append(lines, strings.Join(pairs, " | "))
	}
	return strings.Join(lines, "\n")
}
