package domsift

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domsift/analyze"
)

var testMCPImpl = &mcp.Implementation{Name: "domsift-test", Version: "0.1.0"}

func mcpSession(t *testing.T, svc *Service) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) tool error: %s", name, tc.Text)
	}
	return tc.Text
}

func mcpCallToolErr(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if !result.IsError {
		t.Fatalf("CallTool(%s): expected tool error", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

// --- domsift_analyze ---

func TestMCPAnalyzeHTML(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	text := mcpCallTool(t, session, "domsift_analyze", map[string]any{
		"html":     samplePage,
		"page_url": "https://example.com",
	})

	var resp struct {
		Run struct {
			ID             string `json:"id"`
			Source         string `json:"source"`
			ComponentCount int    `json:"component_count"`
		} `json:"run"`
		Report analyze.Report `json:"report"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Run.ID == "" || resp.Run.Source != "html" {
		t.Errorf("run = %+v", resp.Run)
	}
	if resp.Run.ComponentCount != 4 || len(resp.Report.Components) != 4 {
		t.Errorf("components = %d / %d, want 4", resp.Run.ComponentCount, len(resp.Report.Components))
	}
	buttons := resp.Report.ComponentsOf(analyze.TypeButton)
	if len(buttons) != 2 {
		t.Errorf("buttons = %+v", buttons)
	}
}

func TestMCPAnalyzeRequiresSource(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	msg := mcpCallToolErr(t, session, "domsift_analyze", map[string]any{})
	if !strings.Contains(msg, "snapshot or html") {
		t.Errorf("error = %q", msg)
	}
}

func TestMCPAnalyzeRejectsBothSources(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	msg := mcpCallToolErr(t, session, "domsift_analyze", map[string]any{
		"html":     "<div></div>",
		"snapshot": map[string]any{"tag": "div"},
	})
	if !strings.Contains(msg, "mutually exclusive") {
		t.Errorf("error = %q", msg)
	}
}

func TestMCPAnalyzeSnapshotTree(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	text := mcpCallTool(t, session, "domsift_analyze", map[string]any{
		"snapshot": map[string]any{
			"tag":     "div",
			"classes": []string{"card"},
			"children": []map[string]any{
				{"tag": "h2", "text": "Plan"},
				{"tag": "p", "text": "Details"},
			},
		},
	})

	var resp struct {
		Report analyze.Report `json:"report"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cards := resp.Report.ComponentsOf(analyze.TypeCard)
	if len(cards) != 1 || cards[0].Signature != "div:card:2" {
		t.Errorf("cards = %+v", cards)
	}
}

// --- domsift_capture ---

func TestMCPCaptureWithoutBrowser(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	msg := mcpCallToolErr(t, session, "domsift_capture", map[string]any{"url": "https://example.com"})
	if !strings.Contains(msg, "no capturer") {
		t.Errorf("error = %q", msg)
	}
}

// --- domsift_quantize ---

func TestMCPQuantize(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	text := mcpCallTool(t, session, "domsift_quantize", map[string]any{
		"category": "spacing",
		"value":    "10px",
	})

	var resp struct {
		Token   string `json:"token"`
		Matched bool   `json:"matched"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Matched || resp.Token != "2" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestMCPQuantizeMiss(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	text := mcpCallTool(t, session, "domsift_quantize", map[string]any{
		"category": "color",
		"value":    "rgb(1, 2, 3)",
	})

	var resp struct {
		Token   string `json:"token"`
		Matched bool   `json:"matched"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Matched || resp.Token != "" {
		t.Errorf("resp = %+v", resp)
	}
}

// --- domsift_runs ---

func TestMCPRuns(t *testing.T) {
	svc := newTestService(t, true)
	if _, err := svc.AnalyzeHTML(context.Background(), strings.NewReader(samplePage), "https://example.com"); err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}
	session := mcpSession(t, svc)

	text := mcpCallTool(t, session, "domsift_runs", map[string]any{"limit": 5})

	var resp struct {
		Runs []Run `json:"runs"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Runs) != 1 || resp.Runs[0].PageURL != "https://example.com" {
		t.Errorf("runs = %+v", resp.Runs)
	}
}

func TestMCPRunsWithoutStore(t *testing.T) {
	session := mcpSession(t, newTestService(t, false))

	msg := mcpCallToolErr(t, session, "domsift_runs", map[string]any{})
	if !strings.Contains(msg, "no store") {
		t.Errorf("error = %q", msg)
	}
}
