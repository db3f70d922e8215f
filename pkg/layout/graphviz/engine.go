package graphviz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// formatJSON is the Graphviz output format carrying positions, spline
// routes, and cluster bounding boxes.
const formatJSON = graphviz.Format("json")

// Engine runs layered layout through the embedded Graphviz dot engine.
// The zero value is ready to use; each Compute call creates and closes its
// own Graphviz instance, so Engine is safe for concurrent use.
type Engine struct{}

// New creates a Graphviz-backed layout engine.
func New() *Engine {
	return &Engine{}
}

// Compute lays out the tree and returns it with positions, sizes, and edge
// routes filled in per the layout.Engine coordinate contract.
func (e *Engine) Compute(ctx context.Context, root *layout.Tree, opts layout.Options) (*layout.Tree, error) {
	dot := buildDOT(root, opts)

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
	if err := gv.Render(ctx, g, formatJSON, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	if err := applyJSON(buf.Bytes(), root); err != nil {
		return nil, err
	}
	return root, nil
}

// Ensure Engine implements layout.Engine.
var _ layout.Engine = (*Engine)(nil)
