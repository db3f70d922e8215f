package render

import (
	"bytes"

	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

// Flow renders a positioned flow diagram as a complete SVG document.
//
// Draw order is fixed to pin the random stream: groups (behind), then nodes
// in input order, then edges in input order. The sketch RNG is reset at
// entry, so equal inputs yield byte-identical documents.
func Flow(res *layout.Result, title, style string) []byte {
	t := themeFor(style)
	r := newRNG()
	r.reset()

	var body bytes.Buffer
	for _, g := range res.Groups {
		writeGroup(&body, r, t, g)
	}
	for i, n := range res.Nodes {
		writeNode(&body, r, t, n, i)
	}
	for _, e := range res.Edges {
		writeEdge(&body, r, t, e)
	}

	return document(body.Bytes(), res.Width, res.Height, title, t)
}
