// Package domsift turns DOM snapshots into structural analysis reports.
//
// It sits between a page source (live Chrome capture, static HTML, or a
// pre-serialized snapshot) and downstream consumers (MCP tools, HTTP
// clients, code generators). The pipeline:
//
//	capture / snapshot.FromHTML → analyze → report → store / emit
//
// Key features:
//   - Structural signatures: tag + classes + child count, position-free
//   - Repeated-pattern detection across the whole tree
//   - Heuristic component and layout classification
//   - Design-token extraction with scale quantization
//   - Emitters: utility-class config and typed component stubs
//   - MCP tools and HTTP endpoints over the same service
//
// Usage:
//
//	svc, err := domsift.New(cfg, logger)
//	defer svc.Close()
//	res, err := svc.AnalyzeHTML(ctx, file, "https://example.com")
//	svc.RegisterMCP(mcpServer)
//	svc.RegisterHTTP(router)
package domsift

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hazyhaar/domsift/analyze"
	"github.com/hazyhaar/domsift/capture"
	"github.com/hazyhaar/domsift/emit"
	"github.com/hazyhaar/domsift/internal/store"
	"github.com/hazyhaar/domsift/snapshot"
	"github.com/hazyhaar/domsift/tokens"
)

// ErrNoCapturer is returned by AnalyzeURL when no browser is attached.
var ErrNoCapturer = errors.New("domsift: no capturer configured")

// ErrNoStore is returned by run queries when persistence is disabled.
var ErrNoStore = errors.New("domsift: no store configured")

// Service is the main domsift orchestrator.
type Service struct {
	analyzer *analyze.Analyzer
	quant    *tokens.Quantizer
	emitter  *emit.Emitter
	capturer *capture.Capturer // optional, enables AnalyzeURL
	store    *store.Store      // optional, enables run persistence
	logger   *slog.Logger
	config   *Config
	newID    func() string
}

// ServiceOption configures a Service during creation.
type ServiceOption func(*Service)

// WithCapturer attaches a started browser capturer, enabling AnalyzeURL
// and the domsift_capture tool. The caller keeps ownership: Close the
// capturer separately from the service.
func WithCapturer(c *capture.Capturer) ServiceOption {
	return func(s *Service) { s.capturer = c }
}

// New creates a domsift Service. Opens the SQLite run store when
// cfg.DBPath is set.
func New(cfg *Config, logger *slog.Logger, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		analyzer: analyze.New(analyze.Config{MaxDepth: cfg.Analyze.MaxDepth, Logger: logger}),
		quant:    tokens.NewQuantizer(),
		emitter:  emit.New(),
		logger:   logger,
		config:   cfg,
		newID:    newRunID,
	}

	if cfg.DBPath != "" {
		s, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("domsift: open store: %w", err)
		}
		svc.store = s
	}

	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Close releases the run store. An attached capturer stays open; its
// owner closes it.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Store returns the underlying run store for direct access (testing,
// admin). Nil when persistence is disabled.
func (s *Service) Store() *store.Store {
	return s.store
}

// AnalysisResult pairs the run record with the full report. The Run
// carries metadata only; Report holds the payload.
type AnalysisResult struct {
	Run    *Run            `json:"run"`
	Report *analyze.Report `json:"report"`
}

// AnalyzeSnapshot analyzes an already-decoded snapshot tree and persists
// the run when a store is configured.
func (s *Service) AnalyzeSnapshot(ctx context.Context, root *snapshot.Node, pageURL string) (*AnalysisResult, error) {
	return s.record(ctx, root, pageURL, "", "snapshot", false)
}

// AnalyzeHTML parses static HTML and analyzes the resulting tree. The
// tree carries no geometry, so visibility and layout reflect markup and
// inline styles only.
func (s *Service) AnalyzeHTML(ctx context.Context, r io.Reader, pageURL string) (*AnalysisResult, error) {
	root, err := snapshot.FromHTML(r)
	if err != nil {
		return nil, fmt.Errorf("domsift: parse html: %w", err)
	}
	return s.record(ctx, root, pageURL, "", "html", false)
}

// AnalyzeURL captures a live page and analyzes it. Requires a capturer.
func (s *Service) AnalyzeURL(ctx context.Context, pageURL string) (*AnalysisResult, error) {
	if s.capturer == nil {
		return nil, ErrNoCapturer
	}
	res, err := s.capturer.Capture(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, res.Root, pageURL, res.Title, "url", res.Truncated)
}

// record runs the analyzer and assembles the run row. preTruncated marks
// trees already cut at capture time, before the analyzer's own bound.
func (s *Service) record(ctx context.Context, root *snapshot.Node, pageURL, title, source string, preTruncated bool) (*AnalysisResult, error) {
	if root == nil {
		return nil, errors.New("domsift: nil snapshot root")
	}

	rep := s.analyzer.Analyze(root)
	rep.Truncated = rep.Truncated || preTruncated

	run := &Run{
		ID:             s.newID(),
		PageURL:        pageURL,
		Title:          title,
		Source:         source,
		NodeCount:      snapshot.Count(root, s.config.Analyze.MaxDepth),
		ComponentCount: len(rep.Components),
		PatternCount:   len(rep.RepeatedPatterns),
		Truncated:      rep.Truncated,
		CreatedAt:      time.Now().UnixMilli(),
	}

	if s.store != nil {
		data, err := json.Marshal(rep)
		if err != nil {
			return nil, fmt.Errorf("domsift: encode report: %w", err)
		}
		stored := *run
		stored.Report = data
		if err := s.store.InsertRun(ctx, &stored, flattenPatterns(rep), s.tokenRows(rep.DesignTokens)); err != nil {
			return nil, fmt.Errorf("domsift: persist run: %w", err)
		}
		if s.config.KeepRuns > 0 {
			if _, err := s.store.PruneRuns(ctx, s.config.KeepRuns); err != nil {
				s.logger.Warn("domsift: prune runs", "error", err)
			}
		}
	}

	s.logger.Info("domsift: analyzed",
		"run_id", run.ID,
		"source", source,
		"url", pageURL,
		"nodes", run.NodeCount,
		"components", run.ComponentCount,
		"patterns", run.PatternCount,
		"truncated", run.Truncated)

	return &AnalysisResult{Run: run, Report: rep}, nil
}

// GetRun returns a persisted run with its report payload. Nil when the
// ID is unknown.
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.GetRun(ctx, id)
}

// ListRuns returns recent run metadata, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rows, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	var runs []Run
	for _, r := range rows {
		runs = append(runs, *r)
	}
	return runs, nil
}

// TopPatterns aggregates repeated signatures across all persisted runs.
func (s *Service) TopPatterns(ctx context.Context, limit int) ([]PatternStat, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.TopPatterns(ctx, limit)
}

// RenderBundle renders the utility-class config and component stubs for
// a report. Keys are file names, values file contents.
func (s *Service) RenderBundle(rep *analyze.Report) (map[string]string, error) {
	return s.emitter.Bundle(rep)
}

// QuantizeToken maps a raw CSS value onto the canonical scale for a
// category. The second return reports whether a name was resolved.
func (s *Service) QuantizeToken(category, raw string) (string, bool) {
	return s.quant.Name(tokens.Category(category), raw)
}

// flattenPatterns projects the report's pattern map into rows, ordered
// by signature so inserts are deterministic.
func flattenPatterns(rep *analyze.Report) []store.PatternRow {
	if len(rep.RepeatedPatterns) == 0 {
		return nil
	}
	sigs := make([]string, 0, len(rep.RepeatedPatterns))
	for sig := range rep.RepeatedPatterns {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	rows := make([]store.PatternRow, 0, len(sigs))
	for _, sig := range sigs {
		rows = append(rows, store.PatternRow{Signature: sig, Count: rep.RepeatedPatterns[sig].Count})
	}
	return rows
}

// tokenRows projects the palette into queryable rows, one per raw value,
// with the quantized name where one resolves. Shadows have no scale and
// store raw only.
func (s *Service) tokenRows(p tokens.Palette) []store.TokenRow {
	var rows []store.TokenRow
	add := func(cat tokens.Category, vals []string) {
		for i, raw := range vals {
			name, _ := s.quant.Name(cat, raw)
			rows = append(rows, store.TokenRow{Category: string(cat), Position: i, Raw: raw, Token: name})
		}
	}
	add(tokens.CategoryColor, p.Colors)
	add(tokens.CategoryFontSize, p.FontSizes)
	add(tokens.CategoryFontWeight, p.FontWeights)
	add(tokens.CategorySpacing, p.Spacing)
	add(tokens.CategoryRadius, p.Radii)
	for i, raw := range p.Shadows {
		rows = append(rows, store.TokenRow{Category: "shadow", Position: i, Raw: raw})
	}
	return rows
}

// newRunID returns a time-sortable UUIDv7 string, falling back to v4 if
// the clock source fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
