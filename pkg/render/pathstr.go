package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pathfind"
)

// Connector returns the symbol joining two nodes in a path string:
// "->" for Structural, "=>" for Induced and "--" for SameCategory edges.
func Connector(c layered.Class) string {
	switch c {
	case layered.Induced:
		return "=>"
	case layered.SameCategory:
		return "--"
	default:
		return "->"
	}
}

// PathString formats p as "u<conn>v<conn>...". A pair that is not adjacent
// in g is joined with "??".
func PathString(g *layered.Graph, p pathfind.Path) string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(p)-1; i++ {
		b.WriteString(strconv.Itoa(p[i]))
		if e, ok := g.Edge(p[i], p[i+1]); ok {
			b.WriteString(Connector(e.Class))
		} else {
			b.WriteString("??")
		}
	}
	b.WriteString(strconv.Itoa(p[len(p)-1]))
	return b.String()
}
