// Command domsift analyzes DOM structure into components, layouts,
// repeated patterns, and design tokens.
//
// Usage:
//
//	domsift -html page.html                        # analyze a local HTML file
//	domsift -url https://example.com -out ./gen    # capture live, emit stubs
//	domsift -snapshot page.json -db runs.db        # analyze a serialized snapshot
//	domsift -addr :8080 -db runs.db                # serve the HTTP API
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domsift"
	"github.com/hazyhaar/domsift/capture"
	"github.com/hazyhaar/domsift/snapshot"
)

type flags struct {
	configPath   string
	dbPath       string
	pageURL      string
	htmlPath     string
	snapshotPath string
	outDir       string
	addr         string
	withBrowser  bool
	logLevel     string
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to domsift.yaml config file")
	flag.StringVar(&f.dbPath, "db", "", "path to SQLite run database (enables persistence)")
	flag.StringVar(&f.pageURL, "url", "", "capture and analyze a live page")
	flag.StringVar(&f.htmlPath, "html", "", "analyze a local HTML file")
	flag.StringVar(&f.snapshotPath, "snapshot", "", "analyze a serialized snapshot JSON file")
	flag.StringVar(&f.outDir, "out", "", "write the emitted bundle to this directory")
	flag.StringVar(&f.addr, "addr", "", "serve the HTTP API on this address instead of one-shot analysis")
	flag.BoolVar(&f.withBrowser, "browser", false, "launch a browser in serve mode so url requests work")
	flag.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch f.logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, f); err != nil {
		logger.Error("domsift: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, f flags) error {
	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}

	var opts []domsift.ServiceOption
	if f.pageURL != "" || (f.addr != "" && f.withBrowser) {
		cfg.Capture.Logger = logger
		capt := capture.New(cfg.Capture)
		if err := capt.Start(ctx); err != nil {
			return fmt.Errorf("start browser: %w", err)
		}
		defer capt.Close()
		opts = append(opts, domsift.WithCapturer(capt))
	}

	svc, err := domsift.New(cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer svc.Close()

	if f.addr != "" {
		return serve(ctx, logger, svc, f.addr)
	}

	var res *domsift.AnalysisResult
	switch {
	case f.pageURL != "":
		res, err = svc.AnalyzeURL(ctx, f.pageURL)
	case f.htmlPath != "":
		file, ferr := os.Open(f.htmlPath)
		if ferr != nil {
			return ferr
		}
		res, err = svc.AnalyzeHTML(ctx, file, "file://"+f.htmlPath)
		file.Close()
	case f.snapshotPath != "":
		data, ferr := os.ReadFile(f.snapshotPath)
		if ferr != nil {
			return ferr
		}
		root, derr := snapshot.DecodeBytes(data)
		if derr != nil {
			return derr
		}
		res, err = svc.AnalyzeSnapshot(ctx, root, "file://"+f.snapshotPath)
	default:
		flag.Usage()
		return errors.New("one of -url, -html, -snapshot, or -addr required")
	}
	if err != nil {
		return err
	}

	if f.outDir != "" {
		if err := writeBundle(svc, res, f.outDir, logger); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func resolveConfig(f flags) (*domsift.Config, error) {
	cfg := &domsift.Config{}
	if f.configPath != "" {
		var err error
		cfg, err = domsift.LoadConfigFile(f.configPath)
		if err != nil {
			return nil, err
		}
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	return cfg, nil
}

func writeBundle(svc *domsift.Service, res *domsift.AnalysisResult, dir string, logger *slog.Logger) error {
	files, err := svc.RenderBundle(res.Report)
	if err != nil {
		return fmt.Errorf("render bundle: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
		logger.Info("domsift: wrote", "file", path, "bytes", len(content))
	}
	return nil
}

func serve(ctx context.Context, logger *slog.Logger, svc *domsift.Service, addr string) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	svc.RegisterHTTP(r)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("domsift: serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("domsift: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
