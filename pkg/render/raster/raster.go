// Package raster converts rendered SVG documents to PNG via an external
// SVG renderer.
package raster

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/iishyfishyy/sketchflow/pkg/errors"
)

// DefaultScale is the rasterisation scale factor (2x resolution).
const DefaultScale = 2.0

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale
// factor. Failures carry the PNG_ERROR code; callers still hold the SVG.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodePNG,
			"PNG export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.Command("rsvg-convert", "-f", "png", "-z", fmt.Sprintf("%.2f", scale))
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodePNG, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
