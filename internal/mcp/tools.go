package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/iishyfishyy/sketchflow/pkg/diagram"
	"github.com/iishyfishyy/sketchflow/pkg/errors"
	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

// --- Tool definitions ---

func generateTool() mcp.Tool {
	return mcp.NewTool("diagram.generate",
		mcp.WithDescription("Render a flow or sequence diagram definition to SVG. Optionally writes a PNG next to the returned SVG text."),
		mcp.WithObject("diagram", mcp.Required(), mcp.Description("The diagram definition (type, nodes/edges/groups or participants/messages)")),
		mcp.WithString("style", mcp.Enum("hand-drawn", "clean", "minimal"),
			mcp.Description("Theme override (default: the diagram's own style)")),
		mcp.WithString("png_path", mcp.Description("When set, also rasterise to PNG and write it to this path")),
	)
}

func validateTool() mcp.Tool {
	return mcp.NewTool("diagram.validate",
		mcp.WithDescription("Validate a diagram definition against the schema without rendering"),
		mcp.WithObject("diagram", mcp.Required(), mcp.Description("The diagram definition to check")),
	)
}

// --- Handlers ---

// handleGenerate renders the diagram and returns the SVG text. When
// png_path is set the rasterised PNG is written to disk as a side effect.
func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := diagramArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	style := req.GetString("style", "")
	pngPath := req.GetString("png_path", "")

	result, genErr := s.runner.Generate(ctx, raw, pipeline.Options{
		Style:  style,
		PNG:    pngPath != "",
		Logger: s.logger,
	})
	if genErr != nil {
		if result != nil && len(result.SVG) > 0 && errors.Is(genErr, errors.ErrCodePNG) {
			// Rasterisation failed but the SVG is intact: log a warning and
			// return the SVG.
			s.logger.Warn("png rasterisation failed", "err", genErr)
			return mcp.NewToolResultText(string(result.SVG)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", errors.GetCode(genErr), errors.UserMessage(genErr))), nil
	}

	if pngPath != "" && len(result.PNG) > 0 {
		if writeErr := os.WriteFile(pngPath, result.PNG, 0644); writeErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("write png: %v", writeErr)), nil
		}
		s.logger.Info("wrote png", "path", pngPath, "bytes", len(result.PNG))
	}

	return mcp.NewToolResultText(string(result.SVG)), nil
}

// handleValidate runs schema validation only.
func (s *Server) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := diagramArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, parseErr := diagram.Parse(raw)
	if parseErr != nil {
		return mcp.NewToolResultError(errors.UserMessage(parseErr)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("valid %s diagram", d.Type)), nil
}

// diagramArg extracts the required diagram object argument as raw JSON.
func diagramArg(req mcp.CallToolRequest) ([]byte, error) {
	def := mcp.ParseStringMap(req, "diagram", nil)
	if def == nil {
		return nil, fmt.Errorf("diagram is required")
	}
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("serialize diagram: %w", err)
	}
	return raw, nil
}
