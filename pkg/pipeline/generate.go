package pipeline

import (
	"context"
	"time"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
	"github.com/iishyfishyy/sketchflow/pkg/layout/graphviz"
	"github.com/iishyfishyy/sketchflow/pkg/render"
	"github.com/iishyfishyy/sketchflow/pkg/render/raster"
)

// Generate runs the full pipeline on raw diagram input: parse, layout,
// render, and optionally rasterise to PNG.
//
// Errors carry structured codes: SCHEMA_ERROR for invalid input,
// LAYOUT_ERROR when the layered-layout engine fails, PNG_ERROR when
// rasterisation fails. On PNG_ERROR the returned Result still holds the
// SVG so callers can fall back to it.
func Generate(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	d, err := diagram.Parse(raw)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("parsed diagram", "type", d.Type, "duration", time.Since(parseStart))

	style := opts.Style
	if style == "" {
		style = d.Style()
	}

	var svg []byte
	layoutStart := time.Now()
	switch {
	case d.IsSequence():
		res := layout.Sequence(d.Sequence)
		opts.Logger.Debug("computed sequence layout",
			"participants", len(res.Participants),
			"messages", len(res.Messages),
			"duration", time.Since(layoutStart))
		svg = render.Sequence(res, d.Sequence.Title, style)
	default:
		eng := opts.Engine
		if eng == nil {
			eng = graphviz.New()
		}
		res, err := layout.Flow(ctx, d.Flow, eng)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("computed flow layout",
			"nodes", len(res.Nodes),
			"edges", len(res.Edges),
			"duration", time.Since(layoutStart))
		svg = render.Flow(res, d.Flow.Title, style)
	}

	result := &Result{SVG: svg}
	if opts.PNG {
		png, err := raster.ToPNG(svg, opts.Scale)
		if err != nil {
			// SVG stays available on rasterisation failure.
			return result, err
		}
		result.PNG = png
	}

	return result, nil
}
