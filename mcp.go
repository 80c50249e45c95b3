package domsift

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domsift/snapshot"
)

// RegisterMCP registers domsift tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyzeTool(srv)
	s.registerCaptureTool(srv)
	s.registerQuantizeTool(srv)
	s.registerRunsTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// registerTool binds a typed endpoint to an MCP tool. Decode extracts
// the request from raw arguments; responses are marshalled to JSON text.
// Endpoint errors become tool errors, not protocol errors.
func registerTool(srv *mcp.Server, tool *mcp.Tool, endpoint func(context.Context, any) (any, error), decode func(*mcp.CallToolRequest) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decoded, err := decode(req)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := endpoint(ctx, decoded)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- analyze ---

type analyzeRequest struct {
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
	HTML     string          `json:"html,omitempty"`
	PageURL  string          `json:"page_url,omitempty"`
}

func (s *Service) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domsift_analyze",
		Description: "Analyze a DOM snapshot or raw HTML: components, layouts, repeated patterns, design tokens, sections.",
		InputSchema: inputSchema(map[string]any{
			"snapshot": map[string]any{"type": "object", "description": "Serialized snapshot tree (root node)"},
			"html":     map[string]any{"type": "string", "description": "Raw HTML to parse instead of a snapshot"},
			"page_url": map[string]any{"type": "string", "description": "URL recorded with the run"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*analyzeRequest)
		switch {
		case len(r.Snapshot) > 0 && r.HTML != "":
			return nil, errors.New("snapshot and html are mutually exclusive")
		case len(r.Snapshot) > 0:
			root, err := snapshot.DecodeBytes(r.Snapshot)
			if err != nil {
				return nil, err
			}
			return s.AnalyzeSnapshot(ctx, root, r.PageURL)
		case r.HTML != "":
			return s.AnalyzeHTML(ctx, strings.NewReader(r.HTML), r.PageURL)
		default:
			return nil, errors.New("snapshot or html required")
		}
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r analyzeRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, endpoint, decode)
}

// --- capture ---

type captureRequest struct {
	URL string `json:"url"`
}

func (s *Service) registerCaptureTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domsift_capture",
		Description: "Capture a live page in the attached browser and analyze it. Fails when no browser is attached.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "Page URL (http or https)"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*captureRequest)
		return s.AnalyzeURL(ctx, r.URL)
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r captureRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, endpoint, decode)
}

// --- quantize ---

type quantizeRequest struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

func (s *Service) registerQuantizeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domsift_quantize",
		Description: "Map a raw CSS value onto the canonical design scale for a category.",
		InputSchema: inputSchema(map[string]any{
			"category": map[string]any{"type": "string", "enum": []any{"color", "spacing", "font-size", "font-weight", "radius"}, "description": "Token category"},
			"value":    map[string]any{"type": "string", "description": "Raw CSS value (e.g. 17px, rgb(59, 130, 246))"},
		}, []string{"category", "value"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*quantizeRequest)
		name, ok := s.QuantizeToken(r.Category, r.Value)
		return map[string]any{
			"category": r.Category,
			"value":    r.Value,
			"token":    name,
			"matched":  ok,
		}, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r quantizeRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, endpoint, decode)
}

// --- runs ---

type runsRequest struct {
	Limit int `json:"limit,omitempty"`
}

func (s *Service) registerRunsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domsift_runs",
		Description: "List recent persisted analysis runs, newest first. Fails when persistence is disabled.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Max runs (default 50)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*runsRequest)
		runs, err := s.ListRuns(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		if runs == nil {
			runs = []Run{}
		}
		return map[string]any{"runs": runs}, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r runsRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, endpoint, decode)
}
