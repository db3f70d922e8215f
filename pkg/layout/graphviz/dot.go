package graphviz

import (
	"bytes"
	"fmt"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// pointsPerInch converts between SVG user units (points) and the inch-based
// size attributes of DOT.
const pointsPerInch = 72.0

// rankdirs maps engine directions to DOT rankdir values.
var rankdirs = map[layout.Direction]string{
	layout.Down:  "TB",
	layout.Right: "LR",
	layout.Up:    "BT",
	layout.Left:  "RL",
}

// clusterPrefix namespaces compound nodes; Graphviz treats any subgraph
// whose name starts with "cluster" as a drawable cluster.
const clusterPrefix = "cluster_"

// buildDOT serialises the layout tree to a DOT document with layered layout
// settings: orthogonal splines, fixed node sizes, hierarchy-aware clusters,
// and the requested node/layer spacing.
func buildDOT(root *layout.Tree, opts layout.Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdirs[opts.Direction])
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  splines=ortho;\n")
	fmt.Fprintf(&buf, "  nodesep=%.3f;\n", opts.NodeSpacing/pointsPerInch)
	fmt.Fprintf(&buf, "  ranksep=%.3f;\n", opts.LayerSpacing/pointsPerInch)
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for _, c := range root.Children {
		if c.IsCompound() {
			fmt.Fprintf(&buf, "  subgraph %q {\n", clusterPrefix+c.ID)
			fmt.Fprintf(&buf, "    margin=%.0f;\n", c.Padding)
			for _, leaf := range c.Children {
				fmt.Fprintf(&buf, "    %s\n", nodeStmt(leaf))
			}
			buf.WriteString("  }\n")
		} else {
			fmt.Fprintf(&buf, "  %s\n", nodeStmt(c))
		}
	}

	buf.WriteString("\n")
	for _, e := range root.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeStmt(t *layout.Tree) string {
	return fmt.Sprintf("%q [width=%.3f, height=%.3f];",
		t.ID, t.Width/pointsPerInch, t.Height/pointsPerInch)
}
