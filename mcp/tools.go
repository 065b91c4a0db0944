package mcp

import (
	"context"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ListSourcesTool = "list_llms_txt_sources"
	FetchTool       = "fetch_llms_txt"
)

// FetchFailurePrefix starts the text of every failed fetch_llms_txt result.
const FetchFailurePrefix = "Failed to process fetch request: "

func (s *Server) registerTools() {
	s.mcp.AddTool(
		&gomcp.Tool{
			Name:        ListSourcesTool,
			Title:       "List llms.txt Sources",
			Description: "Lists the source urls configured for llms.txt.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
			Annotations: &gomcp.ToolAnnotations{
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  boolPtr(false),
			},
		},
		s.handleListSources,
	)

	s.mcp.AddTool(
		&gomcp.Tool{
			Name:  FetchTool,
			Title: "Fetch llms.txt",
			Description: "Fetches the content of one or more llms.txt sources. " +
				"Pass a single location as url or several as urls; every location " +
				"must succeed or the whole request fails.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "An http(s) URL, file: URL or local path.",
					},
					"urls": map[string]any{
						"type":        "array",
						"description": "Locations fetched in order; results are returned in the same order.",
						"items":       map[string]any{"type": "string"},
						"minItems":    1,
					},
				},
			},
			Annotations: &gomcp.ToolAnnotations{
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  boolPtr(true),
			},
		},
		s.handleFetch,
	)
}

func (s *Server) handleListSources(_ context.Context, _ *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.logger.Debug("tool call", "tool", ListSourcesTool, "sources", s.registry.Len())
	return textResult(llmstxt.FormatSources(s.registry)), nil
}

func (s *Server) handleFetch(ctx context.Context, req *gomcp.CallToolRequest) (result *gomcp.CallToolResult, _ error) {
	logger := s.logger.With("tool", FetchTool, "request_id", uuid.NewString())

	inputs, err := ParseFetchInput(req.Params.Arguments)
	if err != nil {
		logger.Warn("invalid fetch arguments", "err", err)
		return errorResult(FetchFailurePrefix + err.Error()), nil
	}

	logger.Info("processing fetch request", "inputs", inputs)
	begin := time.Now()
	contents, err := s.fetcher.FetchAll(ctx, inputs)
	if err != nil {
		logger.Error("fetch request failed", "err", err, "duration", time.Since(begin))
		return errorResult(FetchFailurePrefix + err.Error()), nil
	}
	logger.Info("fetch request complete", "sources", len(contents), "duration", time.Since(begin))

	result = &gomcp.CallToolResult{Content: make([]gomcp.Content, 0, len(contents))}
	for _, c := range contents {
		result.Content = append(result.Content, &gomcp.TextContent{Text: c.Text})
	}
	return result, nil
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{
			&gomcp.TextContent{Text: text},
		},
	}
}

// errorResult reports a tool-level failure the client can read, rather than a
// protocol error.
func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{
			&gomcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

func boolPtr(b bool) *bool { return &b }
