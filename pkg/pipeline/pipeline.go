// Package pipeline provides the core generation pipeline for sketchflow.
//
// This package implements the complete parse → layout → render pipeline
// used by the CLI, the MCP server, and the preview server. By centralizing
// this logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: validate raw JSON input and build the typed diagram
//  2. Layout: compute positions (layered layout for flow, arithmetic for sequence)
//  3. Render: emit the SVG document, optionally rasterised to PNG
//
// # Usage
//
// One-shot generation:
//
//	result, err := pipeline.Generate(ctx, raw, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.SVG
//
// With caching across calls, create a Runner:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Generate(ctx, raw, opts)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/errors"
	"github.com/iishyfishyy/sketchflow/pkg/layout"
	"github.com/iishyfishyy/sketchflow/pkg/render/raster"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// DefaultScale is the default PNG rasterisation scale factor.
const DefaultScale = raster.DefaultScale

// Options configures a generation run.
// The zero value renders SVG only with the diagram's own style.
type Options struct {
	// PNG requests rasterisation of the produced SVG.
	PNG bool `json:"png,omitempty"`

	// Scale is the PNG scale factor (default 2.0).
	Scale float64 `json:"scale,omitempty"`

	// Style overrides the diagram's style when non-empty.
	Style string `json:"style,omitempty"`

	// Runtime options (not serialized)
	Engine layout.Engine `json:"-"` // layered-layout engine; nil uses Graphviz
	Logger *log.Logger   `json:"-"`
}

// Result contains the outputs of a generation run.
type Result struct {
	// SVG is the rendered document.
	SVG []byte

	// PNG holds the rasterised document when Options.PNG was set.
	PNG []byte
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidStyles is the set of supported style overrides.
var ValidStyles = map[string]bool{
	diagram.StyleHandDrawn: true,
	diagram.StyleClean:     true,
	diagram.StyleMinimal:   true,
}

// ValidateStyle checks that a style override is valid. An empty style is
// allowed and means "use the diagram's own style".
func ValidateStyle(style string) error {
	if style != "" && !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: hand-drawn, clean, minimal)", style)
	}
	return nil
}

// setDefaults applies option defaults in place.
func (o *Options) setDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// validate checks option values after defaulting.
func (o *Options) validate() error {
	return ValidateStyle(o.Style)
}
