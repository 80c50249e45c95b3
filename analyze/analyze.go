package analyze

import (
	"log/slog"
	"sync"

	"github.com/hazyhaar/domsift/snapshot"
	"github.com/hazyhaar/domsift/tokens"
)

// Config configures an Analyzer.
type Config struct {
	// MaxDepth bounds every tree walk. Zero selects snapshot.DefaultMaxDepth.
	MaxDepth int
	// Logger for scan summaries. Nil selects slog.Default.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = snapshot.DefaultMaxDepth
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Analyzer runs the five independent scans over snapshot trees. One
// Analyzer may serve any number of goroutines; it holds no per-run state.
type Analyzer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Analyzer.
func New(cfg Config) *Analyzer {
	cfg.defaults()
	return &Analyzer{cfg: cfg, logger: cfg.Logger}
}

// Analyze produces a Report for one tree. The input is only read, never
// mutated, so the same tree can be analyzed concurrently or repeatedly
// with identical results. A nil root yields an empty report.
//
// The five scans are independent walks over disjoint report fields, so
// they run concurrently; none of them needs the others' output.
func (a *Analyzer) Analyze(root *snapshot.Node) *Report {
	rep := &Report{RepeatedPatterns: map[string]Pattern{}}
	if root == nil {
		return rep
	}

	var wg sync.WaitGroup
	var tPat, tComp, tLay, tTok, tSect bool
	wg.Add(5)
	go func() {
		defer wg.Done()
		rep.RepeatedPatterns, tPat = DetectPatterns(root, a.cfg.MaxDepth)
	}()
	go func() {
		defer wg.Done()
		rep.Components, tComp = ScanComponents(root, a.cfg.MaxDepth)
	}()
	go func() {
		defer wg.Done()
		rep.Layouts, tLay = ScanLayouts(root, a.cfg.MaxDepth)
	}()
	go func() {
		defer wg.Done()
		rep.DesignTokens, tTok = tokens.Extract(root, a.cfg.MaxDepth)
	}()
	go func() {
		defer wg.Done()
		rep.Sections, tSect = ScanSections(root, a.cfg.MaxDepth)
	}()
	wg.Wait()

	rep.Truncated = tPat || tComp || tLay || tTok || tSect
	a.logger.Debug("analyze: report built",
		"components", len(rep.Components),
		"layouts", len(rep.Layouts),
		"patterns", len(rep.RepeatedPatterns),
		"sections", len(rep.Sections),
		"truncated", rep.Truncated)
	return rep
}
