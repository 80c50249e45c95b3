package store

import (
	"context"
	"encoding/json"
	"testing"
)

func sampleRun(id, url string, createdAt int64) *Run {
	return &Run{
		ID:             id,
		PageURL:        url,
		Title:          "Example",
		Source:         "url",
		NodeCount:      42,
		ComponentCount: 5,
		PatternCount:   2,
		Truncated:      false,
		Report:         json.RawMessage(`{"components":[],"truncated":false}`),
		CreatedAt:      createdAt,
	}
}

func TestInsertAndGetRun(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	run := sampleRun("run-1", "https://example.com/pricing", 1000)
	patterns := []PatternRow{
		{Signature: "button:btn.btn-primary:0", Count: 3},
		{Signature: "li:item:1", Count: 8},
	}
	tokens := []TokenRow{
		{Category: "color", Position: 0, Raw: "rgb(59, 130, 246)", Token: "blue-500"},
		{Category: "color", Position: 1, Raw: "rgb(1, 2, 3)"}, // unnamed
		{Category: "spacing", Position: 0, Raw: "16px", Token: "4"},
	}
	if err := s.InsertRun(ctx, run, patterns, tokens); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	if got.PageURL != run.PageURL || got.NodeCount != 42 || got.PatternCount != 2 {
		t.Errorf("run fields: %+v", got)
	}
	if len(got.Report) == 0 {
		t.Error("report payload missing")
	}

	rows, err := s.RunTokens(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunTokens: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("token rows = %d, want 3", len(rows))
	}
	// Ordered by category then position: color[0], color[1], spacing[0].
	if rows[0].Token != "blue-500" || rows[1].Token != "" || rows[2].Token != "4" {
		t.Errorf("token rows = %+v", rows)
	}

	n, err := s.CountRuns(ctx)
	if err != nil || n != 1 {
		t.Errorf("CountRuns = %d, %v", n, err)
	}
}

func TestGetRunMissing(t *testing.T) {
	s := OpenMemory(t)
	got, err := s.GetRun(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		if err := s.InsertRun(ctx, sampleRun(id, "https://example.com", int64(1000+i)), nil, nil); err != nil {
			t.Fatalf("InsertRun %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2 (limit)", len(runs))
	}
	if runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Errorf("order = %s, %s; want new, mid", runs[0].ID, runs[1].ID)
	}
	// List view omits the payload.
	if len(runs[0].Report) != 0 {
		t.Error("list returned report payloads")
	}
}

// WHAT: deleting a run removes its flattened rows through the FK cascade.
func TestDeleteRunCascades(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	run := sampleRun("run-x", "https://example.com", 1000)
	if err := s.InsertRun(ctx, run,
		[]PatternRow{{Signature: "div:card:3", Count: 4}},
		[]TokenRow{{Category: "radius", Position: 0, Raw: "8px", Token: "md"}},
	); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	if err := s.DeleteRun(ctx, "run-x"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if got, _ := s.GetRun(ctx, "run-x"); got != nil {
		t.Error("run survived delete")
	}
	rows, err := s.RunTokens(ctx, "run-x")
	if err != nil {
		t.Fatalf("RunTokens: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("orphaned token rows: %+v", rows)
	}
	stats, _ := s.TopPatterns(ctx, 10)
	if len(stats) != 0 {
		t.Errorf("orphaned pattern rows: %+v", stats)
	}
}

func TestTopPatterns(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	s.InsertRun(ctx, sampleRun("a", "https://a.example", 1), []PatternRow{
		{Signature: "button:btn:0", Count: 3},
		{Signature: "li:item:1", Count: 10},
	}, nil)
	s.InsertRun(ctx, sampleRun("b", "https://b.example", 2), []PatternRow{
		{Signature: "button:btn:0", Count: 5},
	}, nil)

	stats, err := s.TopPatterns(ctx, 10)
	if err != nil {
		t.Fatalf("TopPatterns: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d, want 2", len(stats))
	}
	// li:item:1 totals 10; button:btn:0 totals 8 across 2 runs.
	if stats[0].Signature != "li:item:1" || stats[0].Total != 10 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Signature != "button:btn:0" || stats[1].Runs != 2 || stats[1].Total != 8 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestInsertRunRequiresID(t *testing.T) {
	s := OpenMemory(t)
	run := sampleRun("", "https://example.com", 1)
	if err := s.InsertRun(context.Background(), run, nil, nil); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestPruneRunsKeepsNewest(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		run := sampleRun(id, "https://example.com/"+id, int64(100+i))
		err := s.InsertRun(ctx, run, []PatternRow{{Signature: "div:row:2", Count: 2}}, nil)
		if err != nil {
			t.Fatalf("InsertRun(%s): %v", id, err)
		}
	}

	removed, err := s.PruneRuns(ctx, 2)
	if err != nil {
		t.Fatalf("PruneRuns: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Errorf("surviving runs = %+v", runs)
	}
	// Cascade cleans the pruned run's side tables too.
	stats, err := s.TopPatterns(ctx, 10)
	if err != nil {
		t.Fatalf("TopPatterns: %v", err)
	}
	if len(stats) != 1 || stats[0].Runs != 2 {
		t.Errorf("stats after prune = %+v", stats)
	}
}
