// Package graphviz adapts the Graphviz dot engine to the layout.Engine
// interface.
//
// The adapter builds a DOT document from the layout tree (groups become
// clusters, node sizes are fixed), runs it through the embedded Graphviz
// runtime, parses the JSON output back into positions, spline routes, and
// cluster bounding boxes, and rebases cluster members onto the relative
// coordinate contract expected by the flow layout.
package graphviz
