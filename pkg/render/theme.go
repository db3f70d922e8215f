package render

import "github.com/iishyfishyy/sketchflow/pkg/diagram"

// Theme bundles the visual parameters of one rendering style.
type Theme struct {
	Name         string
	StrokeWidth  float64
	JitterAmount float64
	FillOpacity  float64
	FontFamily   string
	DoubleStroke bool
	CornerRadius float64
}

// sketchy reports whether shapes are built from jittered paths rather than
// native primitives.
func (t Theme) sketchy() bool { return t.JitterAmount > 0 }

const (
	handDrawnFont = `"Segoe Print", "Comic Sans MS", cursive`
	cleanFont     = `Inter, Helvetica, Arial, sans-serif`
)

var themes = map[string]Theme{
	diagram.StyleHandDrawn: {
		Name:         diagram.StyleHandDrawn,
		StrokeWidth:  1.5,
		JitterAmount: 2,
		FillOpacity:  0.15,
		FontFamily:   handDrawnFont,
		DoubleStroke: true,
		CornerRadius: 0,
	},
	diagram.StyleClean: {
		Name:         diagram.StyleClean,
		StrokeWidth:  1.5,
		JitterAmount: 0,
		FillOpacity:  0.10,
		FontFamily:   cleanFont,
		DoubleStroke: false,
		CornerRadius: 3,
	},
	diagram.StyleMinimal: {
		Name:         diagram.StyleMinimal,
		StrokeWidth:  1.0,
		JitterAmount: 0,
		FillOpacity:  0.05,
		FontFamily:   cleanFont,
		DoubleStroke: false,
		CornerRadius: 3,
	},
}

// themeFor returns the theme for a style name, defaulting to hand-drawn.
func themeFor(style string) Theme {
	if t, ok := themes[style]; ok {
		return t
	}
	return themes[diagram.StyleHandDrawn]
}
