package layout

import (
	"context"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/errors"
)

// Layout constants, in SVG user units.
const (
	// Padding is the uniform border added around the laid-out content.
	Padding = 40.0

	// NodeMinWidth is the minimum width of an auto-sized node.
	NodeMinWidth = 120.0

	// NodeHeight is the default node height.
	NodeHeight = 60.0

	// CharWidth is the estimated per-character label width.
	CharWidth = 10.0

	// LabelPadding is the horizontal padding added around a node label.
	LabelPadding = 40.0

	// NodeSpacing is the spacing between nodes within a layer.
	NodeSpacing = 50.0

	// LayerSpacing is the spacing between layers.
	LayerSpacing = 80.0

	// GroupPadding is the inner padding of a group compound.
	GroupPadding = 30.0
)

// directions maps diagram directions to engine rank directions.
var directions = map[string]Direction{
	diagram.DirectionTB: Down,
	diagram.DirectionLR: Right,
	diagram.DirectionBT: Up,
	diagram.DirectionRL: Left,
}

// Flow lays out a flow diagram using the given layered-layout engine.
//
// Groups become compound containers holding their member nodes; all edges
// attach at the root with hierarchy-aware routing. The engine's returned
// tree is flattened to absolute coordinates, then the uniform [Padding] is
// applied to every coordinate. Edges whose endpoints do not resolve to
// existing nodes are silently dropped; edges the engine returned without
// route points fall back to a straight centre-to-centre line.
func Flow(ctx context.Context, f *diagram.Flow, eng Engine) (*Result, error) {
	byID := make(map[string]diagram.Node, len(f.Nodes))
	for _, n := range f.Nodes {
		byID[n.ID] = n
	}

	root := buildTree(f, byID)

	laid, err := eng.Compute(ctx, root, Options{
		Direction:    directions[f.Direction],
		NodeSpacing:  NodeSpacing,
		LayerSpacing: LayerSpacing,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "layered layout failed")
	}

	return extract(f, byID, laid), nil
}

// NodeSize returns the render dimensions of a node: explicit overrides win,
// otherwise width is estimated from the label length.
func NodeSize(n diagram.Node) (w, h float64) {
	w = n.Width
	if w == 0 {
		w = float64(len(n.Label))*CharWidth + LabelPadding
		if w < NodeMinWidth {
			w = NodeMinWidth
		}
	}
	h = n.Height
	if h == 0 {
		h = NodeHeight
	}
	return w, h
}

// buildTree partitions nodes into group compounds vs root children and
// attaches all resolvable edges at the root.
func buildTree(f *diagram.Flow, byID map[string]diagram.Node) *Tree {
	groupOf := f.GroupOf()

	root := &Tree{ID: "root"}
	compounds := make(map[string]*Tree)

	for _, g := range f.Groups {
		c := &Tree{ID: g.ID, Padding: GroupPadding}
		compounds[g.ID] = c
	}

	for _, n := range f.Nodes {
		w, h := NodeSize(n)
		leaf := &Tree{ID: n.ID, Width: w, Height: h}
		if gid, ok := groupOf[n.ID]; ok {
			compounds[gid].Children = append(compounds[gid].Children, leaf)
		} else {
			root.Children = append(root.Children, leaf)
		}
	}

	// Groups whose contains resolved to no nodes contribute nothing.
	for _, g := range f.Groups {
		if c := compounds[g.ID]; len(c.Children) > 0 {
			root.Children = append(root.Children, c)
		}
	}

	for _, e := range f.Edges {
		if _, ok := byID[e.From]; !ok {
			continue
		}
		if _, ok := byID[e.To]; !ok {
			continue
		}
		root.Edges = append(root.Edges, &TreeEdge{From: e.From, To: e.To})
	}

	return root
}

// extract walks the laid-out tree, flattens child coordinates to absolute,
// and applies the global padding. Padding is added after absolutisation.
func extract(f *diagram.Flow, byID map[string]diagram.Node, laid *Tree) *Result {
	res := &Result{
		Width:  laid.Width + 2*Padding,
		Height: laid.Height + 2*Padding,
	}

	groupIDs := make(map[string]diagram.Group, len(f.Groups))
	for _, g := range f.Groups {
		groupIDs[g.ID] = g
	}

	positions := make(map[string]Node)
	var place func(t *Tree, offX, offY float64)
	place = func(t *Tree, offX, offY float64) {
		absX, absY := t.X+offX, t.Y+offY
		if g, ok := groupIDs[t.ID]; ok {
			res.Groups = append(res.Groups, Group{
				ID:     g.ID,
				Label:  g.Label,
				X:      absX + Padding,
				Y:      absY + Padding,
				Width:  t.Width,
				Height: t.Height,
				Color:  g.Color,
			})
		} else if !t.IsCompound() {
			src := byID[t.ID]
			positions[t.ID] = Node{
				ID:        t.ID,
				X:         absX + Padding,
				Y:         absY + Padding,
				Width:     t.Width,
				Height:    t.Height,
				Label:     src.Label,
				Shape:     src.Shape,
				Color:     src.Color,
				TextColor: src.TextColor,
			}
		}
		// Child coordinates are relative to this container.
		for _, c := range t.Children {
			place(c, absX, absY)
		}
	}
	for _, c := range laid.Children {
		place(c, 0, 0)
	}

	// Preserve input order in the result.
	for _, n := range f.Nodes {
		if ln, ok := positions[n.ID]; ok {
			res.Nodes = append(res.Nodes, ln)
		}
	}

	routes := make(map[[2]string][][]Point)
	for _, te := range laid.Edges {
		var pts []Point
		for _, s := range te.Sections {
			pts = append(pts, offsetPoint(s.Start))
			for _, b := range s.Bends {
				pts = append(pts, offsetPoint(b))
			}
			pts = append(pts, offsetPoint(s.End))
		}
		key := [2]string{te.From, te.To}
		routes[key] = append(routes[key], pts)
	}

	for _, e := range f.Edges {
		if _, ok := positions[e.From]; !ok {
			continue
		}
		if _, ok := positions[e.To]; !ok {
			continue
		}

		var pts []Point
		key := [2]string{e.From, e.To}
		if rs := routes[key]; len(rs) > 0 {
			pts = rs[0]
			routes[key] = rs[1:]
		}
		if len(pts) == 0 {
			// The engine returned no route: straight line between centres.
			from, to := positions[e.From], positions[e.To]
			pts = []Point{
				{X: from.X + from.Width/2, Y: from.Y + from.Height/2},
				{X: to.X + to.Width/2, Y: to.Y + to.Height/2},
			}
		}

		res.Edges = append(res.Edges, Edge{
			From:      e.From,
			To:        e.To,
			Label:     e.Label,
			Style:     e.Style,
			Direction: e.Direction,
			Color:     e.Color,
			Points:    pts,
		})
	}

	return res
}

func offsetPoint(p Point) Point {
	return Point{X: p.X + Padding, Y: p.Y + Padding}
}
