package layout

import "github.com/iishyfishyy/sketchflow/pkg/diagram"

// Sequence layout constants, in SVG user units.
const (
	// ParticipantBoxHeight is the height of a participant box.
	ParticipantBoxHeight = 40.0

	// ParticipantGap is the horizontal gap between participant boxes.
	ParticipantGap = 60.0

	// ParticipantMinWidth is the minimum participant box width.
	ParticipantMinWidth = 100.0

	// TitleHeight is the vertical space reserved for a title.
	TitleHeight = 40.0

	// MessageSpacing is the vertical spacing between messages.
	MessageSpacing = 50.0

	// SelfMessageExtra is the additional height consumed by a self-message loop.
	SelfMessageExtra = 30.0

	// LifelinePadding is the space between the last message and the bottom boxes.
	LifelinePadding = 40.0
)

// Sequence computes a sequence diagram layout with pure arithmetic:
// participants along X in input order, messages along Y in input order.
func Sequence(s *diagram.Sequence) *SequenceResult {
	res := &SequenceResult{}

	topY := Padding
	if s.Title != "" {
		topY += TitleHeight
	}
	res.TopY = topY

	// Place participants left to right.
	cursor := Padding
	for _, p := range s.Participants {
		w := float64(len(p.Label))*CharWidth + LabelPadding
		if w < ParticipantMinWidth {
			w = ParticipantMinWidth
		}
		res.Participants = append(res.Participants, SequenceParticipant{
			ID:    p.ID,
			Label: p.Label,
			X:     cursor + w/2,
			Width: w,
			Color: p.Color,
		})
		cursor += w + ParticipantGap
	}

	// Assign message rows.
	y := topY + ParticipantBoxHeight + MessageSpacing
	lastY := 0.0
	lastSelf := false
	for _, m := range s.Messages {
		self := m.From == m.To
		res.Messages = append(res.Messages, SequenceMessage{
			From:  m.From,
			To:    m.To,
			Label: m.Label,
			Style: m.Style,
			Color: m.Color,
			Y:     y,
			Self:  self,
		})
		lastY, lastSelf = y, self
		if self {
			y += MessageSpacing + SelfMessageExtra
		} else {
			y += MessageSpacing
		}
	}

	bottom := topY + ParticipantBoxHeight
	if len(res.Messages) > 0 {
		msgBottom := lastY
		if lastSelf {
			msgBottom += SelfMessageExtra
		}
		if msgBottom > bottom {
			bottom = msgBottom
		}
	}
	res.LifelineBottom = bottom + LifelinePadding

	if n := len(res.Participants); n > 0 {
		last := res.Participants[n-1]
		res.Width = last.X + last.Width/2 + Padding
	} else {
		res.Width = 2 * Padding
	}
	res.Height = res.LifelineBottom + Padding

	return res
}
