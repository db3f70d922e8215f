package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

func seqResult() *layout.SequenceResult {
	return &layout.SequenceResult{
		Width:          500,
		Height:         400,
		TopY:           40,
		LifelineBottom: 320,
		Participants: []layout.SequenceParticipant{
			{ID: "web", Label: "Web", X: 90, Width: 100},
			{ID: "api", Label: "API", X: 250, Width: 100},
		},
		Messages: []layout.SequenceMessage{
			{From: "web", To: "api", Label: "request", Style: diagram.EdgeSolid, Y: 130},
			{From: "api", To: "api", Label: "tick", Style: diagram.EdgeSolid, Y: 180, Self: true},
			{From: "api", To: "web", Label: "response", Style: diagram.EdgeDashed, Y: 260},
		},
	}
}

func TestSequenceDeterminism(t *testing.T) {
	a := Sequence(seqResult(), "Ping", diagram.StyleHandDrawn)
	b := Sequence(seqResult(), "Ping", diagram.StyleHandDrawn)
	if !bytes.Equal(a, b) {
		t.Error("repeated sequence renders differ")
	}
}

func TestSequenceStructure(t *testing.T) {
	out := string(Sequence(seqResult(), "Ping", diagram.StyleClean))

	for _, want := range []string{
		"Ping", "Web", "API", "request", "tick", "response",
		`stroke-dasharray="6,4"`, // lifelines
		`stroke-dasharray="8,4"`, // dashed response
		`<g class="message" data-from="web" data-to="api">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Two participants, boxes at both top and bottom: four rects plus the
	// background and label backings.
	if n := strings.Count(out, "<rect"); n < 5 {
		t.Errorf("expected at least 5 rects (background + 4 participant boxes), got %d", n)
	}
}

func TestSequenceSelfMessageLoop(t *testing.T) {
	out := string(Sequence(seqResult(), "", diagram.StyleClean))

	// The loop's vertical run sits selfLoopWidth right of the lifeline.
	if !strings.Contains(out, `x1="280.0"`) {
		t.Errorf("self-message loop should extend 30 right of the participant centre: %s", out)
	}
	// Label sits to the right of the loop, start-anchored.
	if !strings.Contains(out, `text-anchor="start"`) {
		t.Error("self-message label should be start-anchored")
	}
}

func TestSequenceHandDrawnUsesPaths(t *testing.T) {
	out := string(Sequence(seqResult(), "", diagram.StyleHandDrawn))
	if !strings.Contains(out, "<path") {
		t.Error("hand-drawn sequence should draw sketchy paths")
	}
	if !strings.Contains(out, `stroke-opacity="0.3"`) {
		t.Error("hand-drawn sequence should double-stroke")
	}
}

func TestSequenceSkipsUnknownParticipants(t *testing.T) {
	res := seqResult()
	res.Messages = append(res.Messages, layout.SequenceMessage{From: "web", To: "ghost", Label: "lost", Y: 300})

	out := string(Sequence(res, "", diagram.StyleClean))
	if strings.Contains(out, "lost") {
		t.Error("message to unknown participant should be skipped")
	}
}
