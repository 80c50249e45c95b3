// Package capture drives a headless Chrome instance over the DevTools
// protocol and serializes rendered pages into snapshot trees.
//
// The serializer runs inside the page (snapshot.js) so computed styles
// and geometry come straight from the rendering engine; the Go side
// only decodes the resulting JSON. The depth ceiling applied in the
// page matches the one the analysis walks enforce, so a capture is
// never deeper than what analysis would visit anyway.
package capture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/domsift/snapshot"
)

//go:embed snapshot.js
var captureJS string

// Config configures a Capturer.
type Config struct {
	// ControlURL connects to an already-running Chrome (DevTools
	// WebSocket URL). Empty launches a local headless instance.
	ControlURL string `yaml:"control_url"`
	// Headful shows the browser window for local launches, for
	// debugging. Captures run headless by default.
	Headful bool `yaml:"headful"`
	// Stealth applies anti-automation evasion to new pages.
	Stealth bool `yaml:"stealth"`
	// NavTimeout bounds navigation plus load wait.
	NavTimeout time.Duration `yaml:"nav_timeout"`
	// SettleDelay waits after load for late layout and script work.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// MaxDepth bounds the serialized tree. Zero selects
	// snapshot.DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`
	// BlockResources lists resource classes to abort before fetch
	// (images, fonts, media, stylesheets). Blocking stylesheets changes
	// computed styles; only do that when tokens do not matter.
	BlockResources []string `yaml:"block_resources"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.NavTimeout == 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = 1 * time.Second
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = snapshot.DefaultMaxDepth
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result is one captured page.
type Result struct {
	PageURL    string         `json:"page_url"`
	Title      string         `json:"title"`
	CapturedAt int64          `json:"captured_at"` // epoch millis
	Truncated  bool           `json:"truncated,omitempty"`
	Root       *snapshot.Node `json:"root"`
}

// Capturer owns one browser and serializes pages on demand. Safe for
// concurrent Capture calls; each gets its own page.
type Capturer struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// New creates a Capturer. Call Start before Capture.
func New(cfg Config) *Capturer {
	cfg.defaults()
	return &Capturer{cfg: cfg, logger: cfg.Logger}
}

// Start connects to the configured browser or launches a local one.
func (c *Capturer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		return nil
	}

	controlURL := c.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(!c.cfg.Headful).Leakless(true)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("capture: launch browser: %w", err)
		}
		c.lnch = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("capture: connect browser: %w", err)
	}
	c.browser = browser
	c.logger.Info("capture: browser ready",
		"remote", c.cfg.ControlURL != "", "headless", !c.cfg.Headful)
	return nil
}

// Close shuts the browser down and kills a locally launched process.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	if c.lnch != nil {
		c.lnch.Kill()
		c.lnch = nil
	}
	if err != nil {
		return fmt.Errorf("capture: close browser: %w", err)
	}
	return nil
}

// capturePayload matches what snapshot.js stringifies.
type capturePayload struct {
	Title     string         `json:"title"`
	Truncated bool           `json:"truncated"`
	Root      *snapshot.Node `json:"root"`
}

// Capture navigates to pageURL, waits for load plus the settle delay,
// and serializes the rendered DOM.
func (c *Capturer) Capture(ctx context.Context, pageURL string) (*Result, error) {
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		return nil, fmt.Errorf("capture: unsupported url scheme: %s", pageURL)
	}
	c.mu.Lock()
	browser := c.browser
	c.mu.Unlock()
	if browser == nil {
		return nil, fmt.Errorf("capture: not started")
	}

	navCtx, cancel := context.WithTimeout(ctx, c.cfg.NavTimeout)
	defer cancel()

	page, err := c.newPage(navCtx, browser)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if len(c.cfg.BlockResources) > 0 {
		blockResources(page, c.cfg.BlockResources)
	}

	start := time.Now()
	if err := page.Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("capture: navigate %s: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("capture: wait load %s: %w", pageURL, err)
	}
	select {
	case <-time.After(c.cfg.SettleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	res, err := page.Context(ctx).Eval(captureJS, c.cfg.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("capture: serialize %s: %w", pageURL, err)
	}
	var payload capturePayload
	if err := json.Unmarshal([]byte(res.Value.Str()), &payload); err != nil {
		return nil, fmt.Errorf("capture: decode payload: %w", err)
	}
	if payload.Root == nil {
		return nil, fmt.Errorf("capture: empty document at %s", pageURL)
	}

	c.logger.Info("capture: page serialized",
		"url", pageURL,
		"nodes", snapshot.Count(payload.Root, c.cfg.MaxDepth),
		"truncated", payload.Truncated,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &Result{
		PageURL:    pageURL,
		Title:      payload.Title,
		CapturedAt: time.Now().UnixMilli(),
		Truncated:  payload.Truncated,
		Root:       payload.Root,
	}, nil
}

func (c *Capturer) newPage(ctx context.Context, browser *rod.Browser) (*rod.Page, error) {
	if c.cfg.Stealth {
		page, err := stealth.Page(browser)
		if err != nil {
			return nil, fmt.Errorf("capture: stealth page: %w", err)
		}
		return page.Context(ctx), nil
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("capture: new page: %w", err)
	}
	return page.Context(ctx), nil
}

// blockResources intercepts requests and aborts the configured resource
// classes before they hit the network.
func blockResources(page *rod.Page, types []string) {
	blockSet := make(map[string]bool, len(types))
	for _, t := range types {
		blockSet[strings.ToLower(t)] = true
	}

	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if shouldBlock(blockSet, string(h.Request.Type())) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
}

func shouldBlock(blockSet map[string]bool, resType string) bool {
	switch strings.ToLower(resType) {
	case "image":
		return blockSet["images"]
	case "font":
		return blockSet["fonts"]
	case "media":
		return blockSet["media"]
	case "stylesheet":
		return blockSet["stylesheets"]
	}
	return blockSet[strings.ToLower(resType)]
}
