package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

// doubleStrokeOpacity is the opacity of the second pen pass.
const doubleStrokeOpacity = 0.3

// point is a local coordinate pair used while building paths.
type point struct{ x, y float64 }

// sketchyLine draws a line as a quadratic Bézier through a jittered
// midpoint, with jittered endpoints. With double-stroke enabled a second
// pass is drawn at half width and low opacity through a freshly jittered
// midpoint, simulating a repeated pen stroke.
//
// With zero jitter the same call emits a plain line, so callers use one
// code path for all themes. Draw order per segment: start (x,y), end (x,y),
// midpoint (x,y), then the double-stroke midpoint (x,y) when enabled.
func sketchyLine(buf *bytes.Buffer, r *rng, t Theme, x1, y1, x2, y2 float64, color, dash string) {
	if !t.sketchy() {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			x1, y1, x2, y2, color, t.StrokeWidth, dashAttr(dash))
		return
	}

	a := t.JitterAmount
	jx1, jy1 := r.jitterPoint(x1, y1, a)
	jx2, jy2 := r.jitterPoint(x2, y2, a)
	mx, my := r.jitterPoint((x1+x2)/2, (y1+y2)/2, a)

	fmt.Fprintf(buf, `  <path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		jx1, jy1, mx, my, jx2, jy2, color, t.StrokeWidth, dashAttr(dash))

	if t.DoubleStroke {
		m2x, m2y := r.jitterPoint((x1+x2)/2, (y1+y2)/2, a)
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="%.1f"%s/>`+"\n",
			jx1, jy1, m2x, m2y, jx2, jy2, color, t.StrokeWidth/2, doubleStrokeOpacity, dashAttr(dash))
	}
}

// dashAttr formats an optional stroke-dasharray attribute.
func dashAttr(dash string) string {
	if dash == "" {
		return ""
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, dash)
}

// polygonPath builds a closed "M … L … Z" path through the given points,
// jittering each vertex. Used for shape fills.
func polygonPath(r *rng, t Theme, pts []point) string {
	var b strings.Builder
	for i, p := range pts {
		jx, jy := r.jitterPoint(p.x, p.y, t.JitterAmount)
		if i == 0 {
			fmt.Fprintf(&b, "M %.1f %.1f", jx, jy)
		} else {
			fmt.Fprintf(&b, " L %.1f %.1f", jx, jy)
		}
	}
	b.WriteString(" Z")
	return b.String()
}

// ellipsePath builds a closed cubic path through eight jittered samples of
// the parametric ellipse. Control points sit at ±0.4 of each segment with a
// secondary jitter at half amplitude.
func ellipsePath(r *rng, t Theme, cx, cy, rx, ry float64) string {
	const samples = 8
	a := t.JitterAmount

	pts := make([]point, samples)
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / samples
		x := cx + rx*math.Cos(angle)
		y := cy + ry*math.Sin(angle)
		jx, jy := r.jitterPoint(x, y, a)
		pts[i] = point{jx, jy}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %.1f %.1f", pts[0].x, pts[0].y)
	for i := 0; i < samples; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%samples]
		dx, dy := p1.x-p0.x, p1.y-p0.y
		c1x, c1y := r.jitterPoint(p0.x+0.4*dx, p0.y+0.4*dy, a/2)
		c2x, c2y := r.jitterPoint(p1.x-0.4*dx, p1.y-0.4*dy, a/2)
		fmt.Fprintf(&b, " C %.1f %.1f %.1f %.1f %.1f %.1f", c1x, c1y, c2x, c2y, p1.x, p1.y)
	}
	b.WriteString(" Z")
	return b.String()
}

// cloudPath builds a closed cubic path through eight jittered anchors around
// the box, with control points pushed outward from the centre to form puffs.
func cloudPath(r *rng, t Theme, x, y, w, h float64) string {
	a := t.JitterAmount
	cx, cy := x+w/2, y+h/2

	anchors := []point{
		{x, y}, {cx, y}, {x + w, y}, {x + w, cy},
		{x + w, y + h}, {cx, y + h}, {x, y + h}, {x, cy},
	}
	pts := make([]point, len(anchors))
	for i, p := range anchors {
		jx, jy := r.jitterPoint(p.x, p.y, a)
		pts[i] = point{jx, jy}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %.1f %.1f", pts[0].x, pts[0].y)
	for i := range pts {
		p0 := pts[i]
		p1 := pts[(i+1)%len(pts)]
		mx, my := (p0.x+p1.x)/2, (p0.y+p1.y)/2

		// Outward unit vector from the shape centre through the segment midpoint.
		ux, uy := mx-cx, my-cy
		dist := math.Hypot(ux, uy)
		if dist > 0 {
			ux, uy = ux/dist, uy/dist
		}
		bulge := 0.3 * math.Hypot(p1.x-p0.x, p1.y-p0.y)

		c1x, c1y := r.jitterPoint((p0.x+mx)/2+ux*bulge, (p0.y+my)/2+uy*bulge, a)
		c2x, c2y := r.jitterPoint((p1.x+mx)/2+ux*bulge, (p1.y+my)/2+uy*bulge, a)
		fmt.Fprintf(&b, " C %.1f %.1f %.1f %.1f %.1f %.1f", c1x, c1y, c2x, c2y, p1.x, p1.y)
	}
	b.WriteString(" Z")
	return b.String()
}
