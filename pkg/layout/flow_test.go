package layout

import (
	"context"
	"fmt"
	"testing"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/errors"
)

// stubEngine assigns deterministic positions without running a real layered
// layout: root children are stacked vertically, compound children are packed
// inside their container at the declared padding.
type stubEngine struct {
	err        error
	gotOpts    Options
	emptyRoute bool // return edges with no sections
}

func (s *stubEngine) Compute(_ context.Context, root *Tree, opts Options) (*Tree, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotOpts = opts

	y := 0.0
	width := 0.0
	for _, c := range root.Children {
		if c.IsCompound() {
			inner := 0.0
			cy := c.Padding
			for _, leaf := range c.Children {
				leaf.X = c.Padding
				leaf.Y = cy
				cy += leaf.Height + 10
				if leaf.Width > inner {
					inner = leaf.Width
				}
			}
			c.Width = inner + 2*c.Padding
			c.Height = cy - 10 + c.Padding
		}
		c.X = 0
		c.Y = y
		y += c.Height + 20
		if c.Width > width {
			width = c.Width
		}
	}
	root.Width = width
	if y > 0 {
		root.Height = y - 20
	}

	if !s.emptyRoute {
		for _, e := range root.Edges {
			e.Sections = []Section{{
				Start: Point{X: 1, Y: 2},
				Bends: []Point{{X: 3, Y: 4}},
				End:   Point{X: 5, Y: 6},
			}}
		}
	}
	return root, nil
}

func flowFixture() *diagram.Flow {
	return &diagram.Flow{
		Direction: diagram.DirectionTB,
		Style:     diagram.StyleHandDrawn,
		Nodes: []diagram.Node{
			{ID: "a", Label: "Start", Shape: diagram.ShapeEllipse},
			{ID: "b", Label: "Process data", Shape: diagram.ShapeRectangle},
			{ID: "c", Label: "End", Shape: diagram.ShapeEllipse},
		},
		Edges: []diagram.Edge{
			{From: "a", To: "b", Style: diagram.EdgeSolid, Direction: diagram.ArrowForward},
			{From: "b", To: "c", Style: diagram.EdgeSolid, Direction: diagram.ArrowForward},
		},
		Groups: []diagram.Group{
			{ID: "g1", Label: "Work", Contains: []string{"b"}},
		},
	}
}

func TestNodeSize(t *testing.T) {
	tests := []struct {
		node  diagram.Node
		wantW float64
		wantH float64
	}{
		{diagram.Node{Label: "A"}, NodeMinWidth, NodeHeight},
		{diagram.Node{Label: "a label of 20 chars."}, 20*CharWidth + LabelPadding, NodeHeight},
		{diagram.Node{Label: "A", Width: 300, Height: 90}, 300, 90},
	}

	for _, tt := range tests {
		w, h := NodeSize(tt.node)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("NodeSize(%q) = (%v, %v), want (%v, %v)", tt.node.Label, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestFlowAppliesPaddingAfterAbsolutisation(t *testing.T) {
	eng := &stubEngine{}
	res, err := Flow(context.Background(), flowFixture(), eng)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Nodes) != 3 {
		t.Fatalf("want 3 nodes, got %d", len(res.Nodes))
	}

	// Node b lives inside group g1: its position is the group's absolute
	// position plus the relative child offset plus the global padding.
	var b Node
	var g Group
	for _, n := range res.Nodes {
		if n.ID == "b" {
			b = n
		}
	}
	if len(res.Groups) != 1 {
		t.Fatalf("want 1 group, got %d", len(res.Groups))
	}
	g = res.Groups[0]

	if b.X != g.X+GroupPadding || b.Y != g.Y+GroupPadding {
		t.Errorf("member node not rebased into group: node (%v,%v), group (%v,%v)", b.X, b.Y, g.X, g.Y)
	}

	// The group rect encloses its member.
	if g.X > b.X || g.Y > b.Y || g.X+g.Width < b.X+b.Width || g.Y+g.Height < b.Y+b.Height {
		t.Errorf("group does not enclose member: group (%v,%v,%v,%v), node (%v,%v,%v,%v)",
			g.X, g.Y, g.Width, g.Height, b.X, b.Y, b.Width, b.Height)
	}

	// Every coordinate is offset by the global padding.
	for _, n := range res.Nodes {
		if n.X < Padding || n.Y < Padding {
			t.Errorf("node %s at (%v,%v) inside padding band", n.ID, n.X, n.Y)
		}
	}
	for _, e := range res.Edges {
		for _, p := range e.Points {
			if p.X != 1+Padding && p.X != 3+Padding && p.X != 5+Padding {
				t.Errorf("edge point %v not offset by padding", p)
			}
		}
	}

	// Total size = engine size + 2·padding per axis.
	if res.Width <= 2*Padding || res.Height <= 2*Padding {
		t.Errorf("result size (%v,%v) too small", res.Width, res.Height)
	}
}

func TestFlowPassesSpacingOptions(t *testing.T) {
	eng := &stubEngine{}
	if _, err := Flow(context.Background(), flowFixture(), eng); err != nil {
		t.Fatal(err)
	}

	if eng.gotOpts.Direction != Down {
		t.Errorf("direction = %q, want DOWN", eng.gotOpts.Direction)
	}
	if eng.gotOpts.NodeSpacing != NodeSpacing || eng.gotOpts.LayerSpacing != LayerSpacing {
		t.Errorf("spacing = (%v,%v), want (%v,%v)",
			eng.gotOpts.NodeSpacing, eng.gotOpts.LayerSpacing, NodeSpacing, LayerSpacing)
	}
}

func TestFlowDirectionMapping(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{diagram.DirectionTB, Down},
		{diagram.DirectionLR, Right},
		{diagram.DirectionBT, Up},
		{diagram.DirectionRL, Left},
	}

	for _, tt := range tests {
		f := flowFixture()
		f.Direction = tt.in
		eng := &stubEngine{}
		if _, err := Flow(context.Background(), f, eng); err != nil {
			t.Fatal(err)
		}
		if eng.gotOpts.Direction != tt.want {
			t.Errorf("direction %s → %q, want %q", tt.in, eng.gotOpts.Direction, tt.want)
		}
	}
}

func TestFlowEdgeFallbackRoute(t *testing.T) {
	eng := &stubEngine{emptyRoute: true}
	res, err := Flow(context.Background(), flowFixture(), eng)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(res.Edges))
	}
	nodes := make(map[string]Node)
	for _, n := range res.Nodes {
		nodes[n.ID] = n
	}
	for _, e := range res.Edges {
		if len(e.Points) != 2 {
			t.Fatalf("fallback edge should have 2 points, got %d", len(e.Points))
		}
		from := nodes[e.From]
		if e.Points[0].X != from.X+from.Width/2 || e.Points[0].Y != from.Y+from.Height/2 {
			t.Errorf("fallback start %v is not the source centre", e.Points[0])
		}
	}
}

func TestFlowSkipsDanglingEdges(t *testing.T) {
	f := flowFixture()
	f.Edges = append(f.Edges, diagram.Edge{From: "a", To: "ghost"})

	res, err := Flow(context.Background(), f, &stubEngine{})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range res.Edges {
		if e.To == "ghost" {
			t.Error("dangling edge should be silently dropped")
		}
	}
}

func TestFlowIgnoresUnknownGroupMembers(t *testing.T) {
	f := flowFixture()
	f.Groups = append(f.Groups, diagram.Group{ID: "gx", Contains: []string{"nope"}})

	res, err := Flow(context.Background(), f, &stubEngine{})
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range res.Groups {
		if g.ID == "gx" {
			t.Error("group with no resolvable members should not be laid out")
		}
	}
}

func TestFlowEngineErrorIsLayoutError(t *testing.T) {
	eng := &stubEngine{err: fmt.Errorf("dot crashed")}
	_, err := Flow(context.Background(), flowFixture(), eng)
	if err == nil {
		t.Fatal("want error")
	}
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("want LAYOUT_ERROR, got %v", err)
	}
}

func TestFlowEmptyDiagramCollapsesToPadding(t *testing.T) {
	f := &diagram.Flow{Direction: diagram.DirectionTB}
	res, err := Flow(context.Background(), f, &stubEngine{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 2*Padding {
		t.Errorf("empty diagram width = %v, want %v", res.Width, 2*Padding)
	}
}
