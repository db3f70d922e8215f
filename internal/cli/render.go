package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iishyfishyy/sketchflow/pkg/errors"
	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "png"
	style   string   // theme override: hand-drawn, clean, minimal
	scale   float64  // PNG scale factor
	noCache bool     // disable artifact caching
}

// renderCommand creates the render command for generating diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		style: c.Config.Style,
		scale: c.Config.Scale,
	}

	cmd := &cobra.Command{
		Use:   "render [diagram.json]",
		Short: "Render a diagram file to SVG or PNG",
		Long: `Render a diagram file to SVG or PNG.

The input is a JSON diagram definition ("-" reads from stdin). Rendering is
deterministic: the same input always produces byte-identical SVG output.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Format)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "theme override: hand-drawn, clean, minimal")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice,
// falling back to the configured default.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = pipeline.FormatSVG
		}
		return []string{fallback}
	}
	return strings.Split(s, ",")
}

// runRender reads the input, runs the pipeline, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	raw, err := readInput(input)
	if err != nil {
		return err
	}

	wantPNG := false
	for _, f := range opts.formats {
		if f == pipeline.FormatPNG {
			wantPNG = true
		}
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	result, err := runner.Generate(ctx, raw, pipeline.Options{
		PNG:   wantPNG,
		Scale: opts.scale,
		Style: opts.style,
	})
	if err != nil {
		// A PNG failure still leaves the SVG usable; surface it after
		// writing what we have.
		if result == nil || !errors.Is(err, errors.ErrCodePNG) {
			printError("%s", errors.UserMessage(err))
			return err
		}
		printError("PNG export failed: %s", errors.UserMessage(err))
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case pipeline.FormatSVG:
			data = result.SVG
		case pipeline.FormatPNG:
			data = result.PNG
		}
		if len(data) == 0 {
			continue
		}

		path := outputPath(base, opts.output, format, len(opts.formats))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("rendered %s", input)
	return nil
}

// readInput loads the diagram bytes from a file or stdin ("-").
func readInput(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", input)
	}
	return raw, err
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "diagram"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath builds the final path for one format. With a single requested
// format an explicit --output is used verbatim.
func outputPath(base, explicit, format string, formatCount int) string {
	if explicit != "" && formatCount == 1 {
		return explicit
	}
	return base + "." + format
}
