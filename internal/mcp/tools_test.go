package mcp

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

func newRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: args,
		},
	}
}

func testServerForTools() *Server {
	runner := pipeline.NewRunner(nil, log.New(io.Discard))
	return NewServer(runner, log.New(io.Discard))
}

func seqDef() map[string]any {
	return map[string]any{
		"type": "sequence",
		"participants": []any{
			map[string]any{"id": "svc", "label": "Service"},
		},
		"messages": []any{
			map[string]any{"from": "svc", "to": "svc", "label": "tick"},
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestGenerateToolReturnsSVG(t *testing.T) {
	s := testServerForTools()
	req := newRequest("diagram.generate", map[string]any{"diagram": seqDef()})

	result, err := s.handleGenerate(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected tool error: %v", result.Content)

	text := textContent(t, result)
	assert.True(t, strings.HasPrefix(text, "<svg"))
	assert.Contains(t, text, "tick")
}

func TestGenerateToolRequiresDiagram(t *testing.T) {
	s := testServerForTools()
	req := newRequest("diagram.generate", map[string]any{})

	result, err := s.handleGenerate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGenerateToolSchemaError(t *testing.T) {
	s := testServerForTools()
	req := newRequest("diagram.generate", map[string]any{
		"diagram": map[string]any{"type": "gantt"},
	})

	result, err := s.handleGenerate(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "SCHEMA_ERROR")
}

func TestValidateTool(t *testing.T) {
	s := testServerForTools()

	result, err := s.handleValidate(context.Background(), newRequest("diagram.validate", map[string]any{"diagram": seqDef()}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textContent(t, result), "valid sequence diagram")

	bad := newRequest("diagram.validate", map[string]any{
		"diagram": map[string]any{"type": "flow", "nodes": []any{map[string]any{"id": "a"}}},
	})
	result, err = s.handleValidate(context.Background(), bad)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
