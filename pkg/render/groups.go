package render

import (
	"bytes"
	"fmt"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// Group rendering parameters.
const (
	groupDash        = "6,4"
	groupFillOpacity = 0.05
	groupLabelInsetX = 12.0
	groupLabelInsetY = 14.0
)

// writeGroup renders a group container as a dashed rectangle behind its
// member nodes, with an optional left-anchored label below the top-left
// corner.
func writeGroup(buf *bytes.Buffer, r *rng, t Theme, g layout.Group) {
	fill := defaultGroupFill
	stroke := defaultGroupStroke
	if g.Color != "" {
		fill = g.Color
		stroke = darken(g.Color, darkenAmount)
	}

	fmt.Fprintf(buf, `<g class="group" data-id="%s">`+"\n", escapeXML(g.ID))

	if t.sketchy() {
		pts := []point{
			{g.X, g.Y}, {g.X + g.Width, g.Y},
			{g.X + g.Width, g.Y + g.Height}, {g.X, g.Y + g.Height},
		}
		fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="none"/>`+"\n",
			polygonPath(r, t, pts), fill, groupFillOpacity)
		for i := range pts {
			p0 := pts[i]
			p1 := pts[(i+1)%len(pts)]
			sketchyLine(buf, r, t, p0.x, p0.y, p1.x, p1.y, stroke, groupDash)
		}
	} else {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f" stroke-dasharray="%s"/>`+"\n",
			g.X, g.Y, g.Width, g.Height, t.CornerRadius, fill, groupFillOpacity, stroke, t.StrokeWidth, groupDash)
	}

	if g.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family='%s' font-size="%.1f" fill="%s" text-anchor="start">%s</text>`+"\n",
			g.X+groupLabelInsetX, g.Y+groupLabelInsetY, t.FontFamily, edgeFontSize, defaultTextColor, escapeXML(g.Label))
	}

	buf.WriteString("</g>\n")
}
