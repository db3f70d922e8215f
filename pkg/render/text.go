package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Text metrics.
const (
	nodeFontSize        = 14.0
	edgeFontSize        = 12.0
	participantFontSize = 13.0
	titleFontSize       = 18.0

	wrapThreshold   = 20  // labels longer than this get word-wrapped
	maxCharsPerLine = 18  // greedy wrap width
	lineHeightScale = 1.3 // tspan advance as a multiple of font size

	labelCharWidth  = 7.0  // estimated edge-label character width
	labelPadX       = 12.0 // edge-label background horizontal padding
	labelMinWidth   = 30.0
	labelBoxHeight  = 20.0
	labelBoxRadius  = 3.0
	labelBoxOpacity = 0.9
)

// escapeXML escapes user-supplied text for embedding in the document
// (& < > " ').
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// wrapText greedily wraps s into lines of at most maxChars characters.
// Single words longer than maxChars occupy a line of their own.
func wrapText(s string, maxChars int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{s}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= maxChars {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	return append(lines, line)
}

// labelLines returns the rendered lines of a label: wrapped when the text is
// longer than the wrap threshold, otherwise a single line.
func labelLines(s string) []string {
	if len(s) > wrapThreshold {
		return wrapText(s, maxCharsPerLine)
	}
	return []string{s}
}

// writeCenteredText writes label text centred on (x, y), wrapping long
// labels into tspans. The block is shifted up by half its total height so
// the visual centre stays on y.
func writeCenteredText(buf *bytes.Buffer, t Theme, x, y float64, label string, fontSize float64, color string) {
	lines := labelLines(label)
	lineHeight := lineHeightScale * fontSize
	startY := y - float64(len(lines)-1)*lineHeight/2

	if len(lines) == 1 {
		fmt.Fprintf(buf,
			`  <text x="%.1f" y="%.1f" font-family='%s' font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x, startY, t.FontFamily, fontSize, color, escapeXML(label))
		return
	}

	fmt.Fprintf(buf,
		`  <text font-family='%s' font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">`,
		t.FontFamily, fontSize, color)
	for i, line := range lines {
		fmt.Fprintf(buf, `<tspan x="%.1f" y="%.1f">%s</tspan>`, x, startY+float64(i)*lineHeight, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// writeLabelWithBackground writes a small label with a white rounded
// backing rect, used on edges and messages. anchor is an SVG text-anchor
// value; the background is sized from the estimated text width.
func writeLabelWithBackground(buf *bytes.Buffer, t Theme, x, y float64, label, anchor string) {
	w := float64(len(label))*labelCharWidth + labelPadX
	if w < labelMinWidth {
		w = labelMinWidth
	}

	bx := x - w/2
	if anchor == "start" {
		bx = x - labelPadX/2
	}
	fmt.Fprintf(buf,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="%.1f"/>`+"\n",
		bx, y-labelBoxHeight/2, w, labelBoxHeight, labelBoxRadius, labelBackground, labelBoxOpacity)
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-family='%s' font-size="%.1f" fill="%s" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
		x, y, t.FontFamily, edgeFontSize, defaultTextColor, anchor, escapeXML(label))
}
