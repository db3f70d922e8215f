// Package layout computes positioned diagram geometry from parsed input.
//
// Flow diagrams are laid out by delegating to a hierarchical layered-layout
// [Engine] (groups become compound containers) and re-absolutising the
// returned tree. Sequence diagrams are placed with pure arithmetic.
//
// All coordinates are SVG user units with the origin at the top-left.
// Positions in the results are absolute and non-negative; a uniform padding
// is applied around the content.
package layout

// Point is an absolute 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned flow-diagram node. X/Y is the top-left corner.
type Node struct {
	ID        string
	X, Y      float64
	Width     float64
	Height    float64
	Label     string
	Shape     string
	Color     string
	TextColor string
}

// Edge is a routed flow-diagram edge. Points holds at least two absolute
// waypoints including both endpoints.
type Edge struct {
	From      string
	To        string
	Label     string
	Style     string
	Direction string
	Color     string
	Points    []Point
}

// Group is a positioned group container.
type Group struct {
	ID     string
	Label  string
	X, Y   float64
	Width  float64
	Height float64
	Color  string
}

// Result is a positioned flow diagram ready for rendering.
type Result struct {
	Width  float64
	Height float64
	Nodes  []Node
	Edges  []Edge
	Groups []Group
}

// SequenceParticipant is a placed participant. X is the lifeline centre.
type SequenceParticipant struct {
	ID    string
	Label string
	X     float64
	Width float64
	Color string
}

// SequenceMessage is a placed message at vertical position Y.
type SequenceMessage struct {
	From  string
	To    string
	Label string
	Style string
	Color string
	Y     float64
	Self  bool
}

// SequenceResult is a positioned sequence diagram ready for rendering.
type SequenceResult struct {
	Width          float64
	Height         float64
	TopY           float64
	LifelineBottom float64
	Participants   []SequenceParticipant
	Messages       []SequenceMessage
}
