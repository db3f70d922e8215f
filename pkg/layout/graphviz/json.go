package graphviz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// gvDoc mirrors the parts of Graphviz's -Tjson output the adapter consumes.
// Dimensions (width/height) are inches; positions and bounding boxes are
// points with a bottom-left origin.
type gvDoc struct {
	BB      string     `json:"bb"`
	Objects []gvObject `json:"objects"`
	Edges   []gvEdge   `json:"edges"`
}

type gvObject struct {
	GvID   int    `json:"_gvid"`
	Name   string `json:"name"`
	BB     string `json:"bb,omitempty"`  // clusters only
	Pos    string `json:"pos,omitempty"` // node centre "x,y"
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type gvEdge struct {
	Tail int    `json:"tail"`
	Head int    `json:"head"`
	Pos  string `json:"pos,omitempty"` // spline "e,x,y p0 p1 ..."
}

// applyJSON parses Graphviz JSON output and writes positions, sizes, and
// edge routes back into the layout tree, converting to a top-left origin
// and rebasing cluster members to coordinates relative to their cluster.
func applyJSON(data []byte, root *layout.Tree) error {
	var doc gvDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse graphviz json: %w", err)
	}

	llx, lly, urx, ury, err := parseBB(doc.BB)
	if err != nil {
		return fmt.Errorf("graph bounding box: %w", err)
	}
	root.Width = urx - llx
	root.Height = ury - lly

	// flip converts a bottom-left-origin point to top-left origin and
	// normalises away any bounding-box offset.
	flip := func(x, y float64) (float64, float64) {
		return x - llx, ury - y
	}

	names := make(map[int]string, len(doc.Objects))
	byName := make(map[string]*layout.Tree)
	var index func(t *layout.Tree)
	index = func(t *layout.Tree) {
		for _, c := range t.Children {
			byName[c.ID] = c
			index(c)
		}
	}
	index(root)

	for _, obj := range doc.Objects {
		names[obj.GvID] = obj.Name

		if cid, ok := strings.CutPrefix(obj.Name, clusterPrefix); ok {
			t := byName[cid]
			if t == nil || obj.BB == "" {
				continue
			}
			cllx, clly, curx, cury, err := parseBB(obj.BB)
			if err != nil {
				return fmt.Errorf("cluster %s: %w", cid, err)
			}
			t.X, t.Y = flip(cllx, cury)
			t.Width = curx - cllx
			t.Height = cury - clly
			continue
		}

		t := byName[obj.Name]
		if t == nil || obj.Pos == "" {
			continue
		}
		cx, cy, err := parsePoint(obj.Pos)
		if err != nil {
			return fmt.Errorf("node %s: %w", obj.Name, err)
		}
		w, _ := strconv.ParseFloat(obj.Width, 64)
		h, _ := strconv.ParseFloat(obj.Height, 64)
		t.Width = w * pointsPerInch
		t.Height = h * pointsPerInch
		x, y := flip(cx-t.Width/2, cy+t.Height/2)
		t.X, t.Y = x, y
	}

	// Rebase cluster members: the engine contract hands children out
	// relative to their compound container.
	for _, c := range root.Children {
		if !c.IsCompound() {
			continue
		}
		for _, leaf := range c.Children {
			leaf.X -= c.X
			leaf.Y -= c.Y
		}
	}

	// Graphviz emits edges in definition order, matching root.Edges.
	// Fall back to endpoint-name matching if the counts diverge.
	if len(doc.Edges) == len(root.Edges) {
		for i, ge := range doc.Edges {
			root.Edges[i].Sections = splineSections(ge.Pos, flip)
		}
	} else {
		byPair := make(map[[2]string][]*layout.TreeEdge)
		for _, e := range root.Edges {
			key := [2]string{e.From, e.To}
			byPair[key] = append(byPair[key], e)
		}
		for _, ge := range doc.Edges {
			key := [2]string{names[ge.Tail], names[ge.Head]}
			if es := byPair[key]; len(es) > 0 {
				es[0].Sections = splineSections(ge.Pos, flip)
				byPair[key] = es[1:]
			}
		}
	}

	return nil
}

// splineSections converts a DOT spline pos attribute into a single routed
// section. The attribute is a space-separated point list, optionally led by
// "e,x,y" (arrow end point) and/or "s,x,y" (arrow start point).
func splineSections(pos string, flip func(x, y float64) (float64, float64)) []layout.Section {
	if pos == "" {
		return nil
	}

	var pts []layout.Point
	var endPt, startPt *layout.Point

	for _, tok := range strings.Fields(pos) {
		switch {
		case strings.HasPrefix(tok, "e,"):
			if x, y, err := parsePoint(tok[2:]); err == nil {
				fx, fy := flip(x, y)
				endPt = &layout.Point{X: fx, Y: fy}
			}
		case strings.HasPrefix(tok, "s,"):
			if x, y, err := parsePoint(tok[2:]); err == nil {
				fx, fy := flip(x, y)
				startPt = &layout.Point{X: fx, Y: fy}
			}
		default:
			if x, y, err := parsePoint(tok); err == nil {
				fx, fy := flip(x, y)
				pts = append(pts, layout.Point{X: fx, Y: fy})
			}
		}
	}

	if startPt != nil {
		pts = append([]layout.Point{*startPt}, pts...)
	}
	if endPt != nil {
		pts = append(pts, *endPt)
	}
	if len(pts) < 2 {
		return nil
	}

	return []layout.Section{{
		Start: pts[0],
		Bends: pts[1 : len(pts)-1],
		End:   pts[len(pts)-1],
	}}
}

// parseBB parses a "llx,lly,urx,ury" bounding box.
func parseBB(s string) (llx, lly, urx, ury float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("malformed bb %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		if vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("malformed bb %q: %w", s, err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// parsePoint parses an "x,y" pair.
func parsePoint(s string) (x, y float64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed point %q", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("malformed point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("malformed point %q: %w", s, err)
	}
	return x, y, nil
}
