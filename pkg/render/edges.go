package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// Arrowhead geometry.
const (
	arrowSize = 10.0
	// arrowAngle is the rotation of the two base points away from the
	// segment direction (≈147.6°, giving a slim triangle).
	arrowAngle = 0.82 * math.Pi
)

// dashArrays maps edge line styles to stroke-dasharray values.
var dashArrays = map[string]string{
	diagram.EdgeSolid:  "",
	diagram.EdgeDashed: "8,4",
	diagram.EdgeDotted: "3,3",
}

// writeEdge renders a routed edge: the polyline, arrowheads per the edge
// direction, and the optional midpoint label, wrapped in a <g class="edge">.
func writeEdge(buf *bytes.Buffer, r *rng, t Theme, e layout.Edge) {
	if len(e.Points) < 2 {
		return
	}
	color := e.Color
	if color == "" {
		color = defaultEdgeColor
	}
	dash := dashArrays[e.Style]

	fmt.Fprintf(buf, `<g class="edge" data-from="%s" data-to="%s">`+"\n",
		escapeXML(e.From), escapeXML(e.To))

	writePolyline(buf, r, t, e.Points, color, dash)

	n := len(e.Points)
	switch e.Direction {
	case diagram.ArrowBackward:
		writeArrowhead(buf, r, t, e.Points[0], e.Points[1], color)
	case diagram.ArrowBoth:
		writeArrowhead(buf, r, t, e.Points[n-1], e.Points[n-2], color)
		writeArrowhead(buf, r, t, e.Points[0], e.Points[1], color)
	case diagram.ArrowNone:
	default: // forward
		writeArrowhead(buf, r, t, e.Points[n-1], e.Points[n-2], color)
	}

	if e.Label != "" {
		mid := midWaypoint(e.Points)
		writeLabelWithBackground(buf, t, mid.X, mid.Y, e.Label, "middle")
	}

	buf.WriteString("</g>\n")
}

// writePolyline draws the waypoint chain. Sketchy themes draw one wobbled
// segment per adjacent pair; clean themes emit a single path.
func writePolyline(buf *bytes.Buffer, r *rng, t Theme, pts []layout.Point, color, dash string) {
	if t.sketchy() {
		for i := 0; i < len(pts)-1; i++ {
			sketchyLine(buf, r, t, pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, color, dash)
		}
		return
	}

	var d bytes.Buffer
	fmt.Fprintf(&d, "M %.1f %.1f", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		fmt.Fprintf(&d, " L %.1f %.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		d.String(), color, t.StrokeWidth, dashAttr(dash))
}

// writeArrowhead draws a filled triangle at tip, oriented along the segment
// from base to tip. Hand-drawn output jitters the three corners slightly.
func writeArrowhead(buf *bytes.Buffer, r *rng, t Theme, tip, base layout.Point, color string) {
	angle := math.Atan2(tip.Y-base.Y, tip.X-base.X)

	p1x := tip.X + arrowSize*math.Cos(angle+arrowAngle)
	p1y := tip.Y + arrowSize*math.Sin(angle+arrowAngle)
	p2x := tip.X + arrowSize*math.Cos(angle-arrowAngle)
	p2y := tip.Y + arrowSize*math.Sin(angle-arrowAngle)

	tx, ty := tip.X, tip.Y
	if t.sketchy() {
		tx, ty = r.jitterPoint(tx, ty, t.JitterAmount/2)
		p1x, p1y = r.jitterPoint(p1x, p1y, t.JitterAmount/2)
		p2x, p2y = r.jitterPoint(p2x, p2y, t.JitterAmount/2)
	}

	fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
		tx, ty, p1x, p1y, p2x, p2y, color)
}

// midWaypoint returns the label anchor: the middle waypoint for odd counts,
// the average of the two middle waypoints for even counts.
func midWaypoint(pts []layout.Point) layout.Point {
	n := len(pts)
	if n%2 == 1 {
		return pts[n/2]
	}
	a, b := pts[n/2-1], pts[n/2]
	return layout.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
