package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
)

func flowResult() *layout.Result {
	return &layout.Result{
		Width:  400,
		Height: 320,
		Nodes: []layout.Node{
			{ID: "a", X: 140, Y: 40, Width: 120, Height: 60, Label: "Start", Shape: diagram.ShapeEllipse},
			{ID: "b", X: 140, Y: 200, Width: 120, Height: 60, Label: "End", Shape: diagram.ShapeEllipse},
		},
		Edges: []layout.Edge{
			{From: "a", To: "b", Style: diagram.EdgeSolid, Direction: diagram.ArrowForward,
				Points: []layout.Point{{X: 200, Y: 100}, {X: 200, Y: 200}}},
		},
	}
}

func TestFlowDeterminism(t *testing.T) {
	for _, style := range []string{diagram.StyleHandDrawn, diagram.StyleClean, diagram.StyleMinimal} {
		a := Flow(flowResult(), "Test", style)
		b := Flow(flowResult(), "Test", style)
		if !bytes.Equal(a, b) {
			t.Errorf("style %s: repeated renders differ", style)
		}
	}
}

func TestFlowWellFormed(t *testing.T) {
	out := string(Flow(flowResult(), "Test", diagram.StyleHandDrawn))

	if !strings.HasPrefix(out, "<svg") {
		t.Error("output should begin with <svg")
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Error("output should end with </svg>")
	}
	for _, want := range []string{"Test", "Start", "End", `<g class="node" data-id="a">`, "<polygon"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestThemeSignatures(t *testing.T) {
	hand := string(Flow(flowResult(), "", diagram.StyleHandDrawn))
	if !strings.Contains(hand, "<path") {
		t.Error("hand-drawn ellipses should be paths")
	}
	if strings.Contains(hand, "<ellipse") {
		t.Error("hand-drawn output should not use native ellipses")
	}

	for _, style := range []string{diagram.StyleClean, diagram.StyleMinimal} {
		out := string(Flow(flowResult(), "", style))
		if !strings.Contains(out, "<ellipse") {
			t.Errorf("%s ellipses should be native primitives", style)
		}
	}
}

func TestMinimalThemeStrokes(t *testing.T) {
	out := string(Flow(flowResult(), "", diagram.StyleMinimal))
	if !strings.Contains(out, `stroke-width="1.0"`) {
		t.Error("minimal theme should stroke at 1.0")
	}
	if !strings.Contains(out, `fill-opacity="0.05"`) {
		t.Error("minimal theme should fill at 0.05")
	}
}

func TestDashSignatures(t *testing.T) {
	res := flowResult()
	res.Edges[0].Style = diagram.EdgeDashed
	res.Edges[0].Label = "maybe"
	out := string(Flow(res, "", diagram.StyleClean))

	if !strings.Contains(out, `stroke-dasharray="8,4"`) {
		t.Error("dashed edge should emit 8,4 dasharray")
	}
	if !strings.Contains(out, `<g class="edge" data-from="a" data-to="b">`) {
		t.Error("edge group missing")
	}
	if !strings.Contains(out, "maybe") {
		t.Error("edge label missing")
	}

	res.Edges[0].Style = diagram.EdgeDotted
	out = string(Flow(res, "", diagram.StyleClean))
	if !strings.Contains(out, `stroke-dasharray="3,3"`) {
		t.Error("dotted edge should emit 3,3 dasharray")
	}
}

func TestArrowDirections(t *testing.T) {
	count := func(dir string) int {
		res := flowResult()
		res.Edges[0].Direction = dir
		out := string(Flow(res, "", diagram.StyleClean))
		return strings.Count(out, "<polygon")
	}

	if n := count(diagram.ArrowForward); n != 1 {
		t.Errorf("forward: %d arrowheads, want 1", n)
	}
	if n := count(diagram.ArrowBackward); n != 1 {
		t.Errorf("backward: %d arrowheads, want 1", n)
	}
	if n := count(diagram.ArrowBoth); n != 2 {
		t.Errorf("both: %d arrowheads, want 2", n)
	}
	if n := count(diagram.ArrowNone); n != 0 {
		t.Errorf("none: %d arrowheads, want 0", n)
	}
}

func TestAllShapesRenderInAllThemes(t *testing.T) {
	shapes := []string{
		diagram.ShapeRectangle, diagram.ShapeEllipse, diagram.ShapeDiamond,
		diagram.ShapeCylinder, diagram.ShapeCloud, diagram.ShapeHexagon,
		diagram.ShapeParallelogram,
	}

	for _, style := range []string{diagram.StyleHandDrawn, diagram.StyleClean, diagram.StyleMinimal} {
		res := &layout.Result{Width: 2000, Height: 200}
		for i, s := range shapes {
			res.Nodes = append(res.Nodes, layout.Node{
				ID: s, X: float64(40 + i*200), Y: 40, Width: 140, Height: 70,
				Label: s, Shape: s,
			})
		}

		out := string(Flow(res, "", style))
		for _, s := range shapes {
			if !strings.Contains(out, `data-id="`+s+`"`) {
				t.Errorf("%s/%s: node group missing", style, s)
			}
			if !strings.Contains(out, ">"+s+"<") {
				t.Errorf("%s/%s: label missing", style, s)
			}
		}
	}
}

func TestNodeColorOverridesAndDarkenedStroke(t *testing.T) {
	res := flowResult()
	res.Nodes[0].Color = "#ff6b6b"
	out := string(Flow(res, "", diagram.StyleClean))

	if !strings.Contains(out, `fill="#ff6b6b"`) {
		t.Error("explicit node color should be used as fill")
	}
	if !strings.Contains(out, `stroke="#b34b4b"`) {
		t.Error("stroke should be the fill darkened by 0.3")
	}
}

func TestPaletteAssignmentByIndex(t *testing.T) {
	res := flowResult()
	out := string(Flow(res, "", diagram.StyleClean))

	if !strings.Contains(out, `fill="#4ecdc4"`) {
		t.Error("first node should take palette[0]")
	}
	if !strings.Contains(out, `fill="#ff6b6b"`) {
		t.Error("second node should take palette[1]")
	}
}

func TestGroupRendering(t *testing.T) {
	res := flowResult()
	res.Groups = []layout.Group{{ID: "g1", Label: "Stage", X: 100, Y: 20, Width: 220, Height: 260}}

	for _, style := range []string{diagram.StyleHandDrawn, diagram.StyleClean} {
		out := string(Flow(res, "", style))
		if !strings.Contains(out, `<g class="group" data-id="g1">`) {
			t.Errorf("%s: group wrapper missing", style)
		}
		if !strings.Contains(out, `stroke-dasharray="6,4"`) {
			t.Errorf("%s: group should be dashed 6,4", style)
		}
		if !strings.Contains(out, "Stage") {
			t.Errorf("%s: group label missing", style)
		}
	}
}

func TestTitleWrapsContent(t *testing.T) {
	res := flowResult()

	withTitle := string(Flow(res, "Hello", diagram.StyleClean))
	if !strings.Contains(withTitle, `<g transform="translate(0, 40)">`) {
		t.Error("titled output should translate content down")
	}
	if !strings.Contains(withTitle, `height="360.0"`) {
		t.Error("titled output should grow by the title offset")
	}

	without := string(Flow(res, "", diagram.StyleClean))
	if strings.Contains(without, "translate(0, 40)") {
		t.Error("untitled output should not translate content")
	}
	if !strings.Contains(without, `height="320.0"`) {
		t.Error("untitled output should keep the layout height")
	}
}

func TestLabelsAreEscaped(t *testing.T) {
	res := flowResult()
	res.Nodes[0].Label = `a & <b>`
	res.Nodes[0].ID = `n"1`
	res.Edges = nil

	out := string(Flow(res, "", diagram.StyleClean))
	if !strings.Contains(out, "a &amp; &lt;b&gt;") {
		t.Error("node label should be XML-escaped")
	}
	if !strings.Contains(out, `data-id="n&#34;1"`) {
		t.Error("node id should be XML-escaped")
	}
	if strings.Contains(out, "<b>") {
		t.Error("raw markup must not leak into the document")
	}
}

func TestEdgeWithTooFewPointsSkipped(t *testing.T) {
	res := flowResult()
	res.Edges[0].Points = []layout.Point{{X: 10, Y: 10}}

	out := string(Flow(res, "", diagram.StyleClean))
	if strings.Contains(out, `class="edge"`) {
		t.Error("edge without a usable route should be skipped")
	}
}
