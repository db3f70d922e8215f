package render

import (
	"bytes"
	"fmt"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// Sequence rendering parameters.
const (
	lifelineDash = "6,4"

	selfLoopWidth  = 30.0
	selfLoopHeight = 20.0

	// messageLabelLift raises a message label above its line.
	messageLabelLift = 8.0

	// selfLabelGap separates a self-message label from its loop.
	selfLabelGap = 8.0
)

// Sequence renders a positioned sequence diagram as a complete SVG
// document. Draw order: lifelines, participant boxes (top and bottom),
// then messages in input order.
func Sequence(res *layout.SequenceResult, title, style string) []byte {
	t := themeFor(style)
	r := newRNG()
	r.reset()

	byID := make(map[string]layout.SequenceParticipant, len(res.Participants))
	for _, p := range res.Participants {
		byID[p.ID] = p
	}

	var body bytes.Buffer

	for _, p := range res.Participants {
		writeLifeline(&body, r, t, p.X, res.TopY+layout.ParticipantBoxHeight, res.LifelineBottom)
	}
	for i, p := range res.Participants {
		writeParticipantBox(&body, r, t, p, i, res.TopY)
		writeParticipantBox(&body, r, t, p, i, res.LifelineBottom)
	}
	for _, m := range res.Messages {
		writeMessage(&body, r, t, m, byID)
	}

	return document(body.Bytes(), res.Width, res.Height, title, t)
}

// writeLifeline draws the dashed vertical line under a participant.
func writeLifeline(buf *bytes.Buffer, r *rng, t Theme, x, top, bottom float64) {
	sketchyLine(buf, r, t, x, top, x, bottom, lifelineColor, lifelineDash)
}

// writeParticipantBox draws one participant rectangle with its centred
// label at the given vertical position (used for both top and bottom rows).
func writeParticipantBox(buf *bytes.Buffer, r *rng, t Theme, p layout.SequenceParticipant, idx int, y float64) {
	fill := p.Color
	if fill == "" {
		fill = paletteColor(idx)
	}
	stroke := darken(fill, darkenAmount)

	n := layout.Node{
		X:      p.X - p.Width/2,
		Y:      y,
		Width:  p.Width,
		Height: layout.ParticipantBoxHeight,
	}
	writeRectangle(buf, r, t, n, fill, stroke)
	writeCenteredText(buf, t, p.X, y+layout.ParticipantBoxHeight/2, p.Label, participantFontSize, defaultTextColor)
}

// writeMessage draws one message: a horizontal arrow between lifelines, or
// a right-going loop when sender and receiver coincide. Messages whose
// participants do not resolve are skipped.
func writeMessage(buf *bytes.Buffer, r *rng, t Theme, m layout.SequenceMessage, byID map[string]layout.SequenceParticipant) {
	from, okF := byID[m.From]
	to, okT := byID[m.To]
	if !okF || !okT {
		return
	}

	color := m.Color
	if color == "" {
		color = defaultEdgeColor
	}
	dash := dashArrays[m.Style]

	fmt.Fprintf(buf, `<g class="message" data-from="%s" data-to="%s">`+"\n",
		escapeXML(m.From), escapeXML(m.To))

	if m.Self {
		writeSelfMessage(buf, r, t, m, from.X, color, dash)
	} else {
		sketchyLine(buf, r, t, from.X, m.Y, to.X, m.Y, color, dash)
		writeArrowhead(buf, r, t,
			layout.Point{X: to.X, Y: m.Y},
			layout.Point{X: from.X, Y: m.Y},
			color)
		if m.Label != "" {
			writeLabelWithBackground(buf, t, (from.X+to.X)/2, m.Y-messageLabelLift, m.Label, "middle")
		}
	}

	buf.WriteString("</g>\n")
}

// writeSelfMessage draws the right-going loop of a self-message with the
// arrowhead pointing back left at the return end.
func writeSelfMessage(buf *bytes.Buffer, r *rng, t Theme, m layout.SequenceMessage, x float64, color, dash string) {
	right := x + selfLoopWidth
	bottom := m.Y + selfLoopHeight

	sketchyLine(buf, r, t, x, m.Y, right, m.Y, color, dash)
	sketchyLine(buf, r, t, right, m.Y, right, bottom, color, dash)
	sketchyLine(buf, r, t, right, bottom, x, bottom, color, dash)
	writeArrowhead(buf, r, t,
		layout.Point{X: x, Y: bottom},
		layout.Point{X: right, Y: bottom},
		color)

	if m.Label != "" {
		writeLabelWithBackground(buf, t, right+selfLabelGap, m.Y+selfLoopHeight/2, m.Label, "start")
	}
}
