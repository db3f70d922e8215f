package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// darkenAmount is the stroke darkening factor applied to fill colors.
const darkenAmount = 0.3

// cylinderMaxCapRy caps the vertical radius of cylinder end ellipses.
const cylinderMaxCapRy = 15.0

// writeNode renders one node: shape geometry followed by its centred label,
// wrapped in a <g class="node"> element. idx is the node's input position,
// used to pick a palette fill when no explicit color is set.
func writeNode(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, idx int) {
	fill := n.Color
	if fill == "" {
		fill = paletteColor(idx)
	}
	stroke := darken(fill, darkenAmount)
	textColor := n.TextColor
	if textColor == "" {
		textColor = defaultTextColor
	}

	fmt.Fprintf(buf, `<g class="node" data-id="%s">`+"\n", escapeXML(n.ID))

	labelShift := 0.0
	switch n.Shape {
	case diagram.ShapeEllipse:
		writeEllipse(buf, r, t, n, fill, stroke)
	case diagram.ShapeDiamond:
		writeDiamond(buf, r, t, n, fill, stroke)
	case diagram.ShapeCylinder:
		labelShift = writeCylinder(buf, r, t, n, fill, stroke)
	case diagram.ShapeCloud:
		writeCloud(buf, r, t, n, fill, stroke)
		labelShift = n.Height * 0.04
	case diagram.ShapeHexagon:
		writeHexagon(buf, r, t, n, fill, stroke)
	case diagram.ShapeParallelogram:
		writeParallelogram(buf, r, t, n, fill, stroke)
	default:
		writeRectangle(buf, r, t, n, fill, stroke)
	}

	cx, cy := n.X+n.Width/2, n.Y+n.Height/2
	writeCenteredText(buf, t, cx, cy+labelShift, n.Label, nodeFontSize, textColor)

	buf.WriteString("</g>\n")
}

// writeFillPolygon emits the fill pass of a polygon-based shape.
func writeFillPolygon(buf *bytes.Buffer, r *rng, t Theme, pts []point, fill string) {
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="none"/>`+"\n",
		polygonPath(r, t, pts), fill, t.FillOpacity)
}

// writePolygonShape draws a jittered fill polygon plus one sketchy line per
// edge — the shared skeleton of rectangle, diamond, hexagon and
// parallelogram in the sketchy themes.
func writePolygonShape(buf *bytes.Buffer, r *rng, t Theme, pts []point, fill, stroke string) {
	writeFillPolygon(buf, r, t, pts, fill)
	for i := range pts {
		p0 := pts[i]
		p1 := pts[(i+1)%len(pts)]
		sketchyLine(buf, r, t, p0.x, p0.y, p1.x, p1.y, stroke, "")
	}
}

// writeNativePolygon emits a plain <polygon> for the clean themes.
func writeNativePolygon(buf *bytes.Buffer, t Theme, pts []point, fill, stroke string) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.1f,%.1f", p.x, p.y)
	}
	fmt.Fprintf(buf, `  <polygon points="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		strings.Join(coords, " "), fill, t.FillOpacity, stroke, t.StrokeWidth)
}

func writeRectangle(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	if !t.sketchy() {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			n.X, n.Y, n.Width, n.Height, t.CornerRadius, fill, t.FillOpacity, stroke, t.StrokeWidth)
		return
	}
	pts := []point{
		{n.X, n.Y}, {n.X + n.Width, n.Y},
		{n.X + n.Width, n.Y + n.Height}, {n.X, n.Y + n.Height},
	}
	writePolygonShape(buf, r, t, pts, fill, stroke)
}

func writeEllipse(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	cx, cy := n.X+n.Width/2, n.Y+n.Height/2
	rx, ry := n.Width/2, n.Height/2

	if !t.sketchy() {
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			cx, cy, rx, ry, fill, t.FillOpacity, stroke, t.StrokeWidth)
		return
	}

	d := ellipsePath(r, t, cx, cy, rx, ry)
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		d, fill, t.FillOpacity, stroke, t.StrokeWidth)
	if t.DoubleStroke {
		d2 := ellipsePath(r, t, cx, cy, rx, ry)
		fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="%.1f"/>`+"\n",
			d2, stroke, t.StrokeWidth/2, doubleStrokeOpacity)
	}
}

func writeDiamond(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	cx, cy := n.X+n.Width/2, n.Y+n.Height/2
	pts := []point{
		{cx, n.Y}, {n.X + n.Width, cy},
		{cx, n.Y + n.Height}, {n.X, cy},
	}
	if !t.sketchy() {
		writeNativePolygon(buf, t, pts, fill, stroke)
		return
	}
	writePolygonShape(buf, r, t, pts, fill, stroke)
}

// writeCylinder draws a database cylinder: body fill, bottom cap, the two
// side walls, then the top cap above everything. Returns the label shift
// that keeps text clear of the top ellipse.
func writeCylinder(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) float64 {
	ry := n.Height * 0.15
	if ry > cylinderMaxCapRy {
		ry = cylinderMaxCapRy
	}
	cx := n.X + n.Width/2
	rx := n.Width / 2
	topCY := n.Y + ry
	bottomCY := n.Y + n.Height - ry

	// Body fill between the caps.
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="none"/>`+"\n",
		n.X, topCY, n.Width, bottomCY-topCY, fill, t.FillOpacity)

	if !t.sketchy() {
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			cx, bottomCY, rx, ry, fill, t.FillOpacity, stroke, t.StrokeWidth)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			n.X, topCY, n.X, bottomCY, stroke, t.StrokeWidth)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			n.X+n.Width, topCY, n.X+n.Width, bottomCY, stroke, t.StrokeWidth)
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			cx, topCY, rx, ry, fill, t.FillOpacity, stroke, t.StrokeWidth)
		return ry / 2
	}

	bottom := ellipsePath(r, t, cx, bottomCY, rx, ry)
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		bottom, fill, t.FillOpacity, stroke, t.StrokeWidth)
	sketchyLine(buf, r, t, n.X, topCY, n.X, bottomCY, stroke, "")
	sketchyLine(buf, r, t, n.X+n.Width, topCY, n.X+n.Width, bottomCY, stroke, "")
	top := ellipsePath(r, t, cx, topCY, rx, ry)
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		top, fill, t.FillOpacity, stroke, t.StrokeWidth)

	return ry / 2
}

func writeCloud(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	d := cloudPath(r, t, n.X, n.Y, n.Width, n.Height)
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		d, fill, t.FillOpacity, stroke, t.StrokeWidth)
	if t.sketchy() && t.DoubleStroke {
		d2 := cloudPath(r, t, n.X, n.Y, n.Width, n.Height)
		fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="%.1f"/>`+"\n",
			d2, stroke, t.StrokeWidth/2, doubleStrokeOpacity)
	}
}

func writeHexagon(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	inset := n.Width * 0.25
	cy := n.Y + n.Height/2
	pts := []point{
		{n.X + inset, n.Y}, {n.X + n.Width - inset, n.Y},
		{n.X + n.Width, cy},
		{n.X + n.Width - inset, n.Y + n.Height}, {n.X + inset, n.Y + n.Height},
		{n.X, cy},
	}
	if !t.sketchy() {
		writeNativePolygon(buf, t, pts, fill, stroke)
		return
	}
	writePolygonShape(buf, r, t, pts, fill, stroke)
}

// parallelogramSkew is the horizontal offset of the slanted sides.
const parallelogramSkew = 15.0

func writeParallelogram(buf *bytes.Buffer, r *rng, t Theme, n layout.Node, fill, stroke string) {
	pts := []point{
		{n.X + parallelogramSkew, n.Y}, {n.X + n.Width, n.Y},
		{n.X + n.Width - parallelogramSkew, n.Y + n.Height}, {n.X, n.Y + n.Height},
	}
	if !t.sketchy() {
		writeNativePolygon(buf, t, pts, fill, stroke)
		return
	}
	writePolygonShape(buf, r, t, pts, fill, stroke)
}
