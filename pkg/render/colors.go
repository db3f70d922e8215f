package render

import (
	"fmt"
	"math"
	"strconv"
)

// palette is the fixed fill rotation for nodes and participants without an
// explicit color, indexed by input order.
var palette = [10]string{
	"#4ecdc4", "#ff6b6b", "#45b7d1", "#96ceb4", "#ffeaa7",
	"#dda0dd", "#98d8c8", "#f7dc6f", "#bb8fce", "#85c1e9",
}

// Default colors.
const (
	defaultTextColor   = "#333333"
	defaultEdgeColor   = "#333333"
	defaultGroupStroke = "#aaaaaa"
	defaultGroupFill   = "#f5f5f5"
	lifelineColor      = "#999999"
	labelBackground    = "#ffffff"
)

// paletteColor returns the palette entry for the i-th element.
func paletteColor(i int) string {
	return palette[i%len(palette)]
}

// darken scales each RGB channel of a #rrggbb color towards black:
// channel ← round(channel·(1−amount)). The result is lowercase #rrggbb.
// Malformed input is returned unchanged.
func darken(hex string, amount float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return hex
	}
	scale := func(c uint64) uint64 {
		return uint64(math.Round(float64(c) * (1 - amount)))
	}
	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}
