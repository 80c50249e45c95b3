package domsift

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domsift/snapshot"
)

// RegisterHTTP mounts the analysis endpoints on a chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Post("/v1/analyze", s.handleAnalyze)
	r.Get("/v1/runs", s.handleListRuns)
	r.Get("/v1/runs/{id}", s.handleGetRun)
	r.Get("/v1/patterns", s.handleTopPatterns)
	r.Get("/healthz", s.handleHealth)
}

// AnalyzeRequest is the body for POST /v1/analyze. Exactly one of URL,
// HTML, or Snapshot selects the page source.
type AnalyzeRequest struct {
	URL      string          `json:"url,omitempty"`
	HTML     string          `json:"html,omitempty"`
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
	// Emit adds the rendered bundle (file name → content) to the response.
	Emit bool `json:"emit,omitempty"`
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sources := 0
	if req.URL != "" {
		sources++
	}
	if req.HTML != "" {
		sources++
	}
	if len(req.Snapshot) > 0 {
		sources++
	}
	if sources != 1 {
		writeError(w, http.StatusBadRequest, errors.New("exactly one of url, html, snapshot required"))
		return
	}

	ctx := r.Context()
	var res *AnalysisResult
	var err error
	switch {
	case req.URL != "":
		res, err = s.AnalyzeURL(ctx, req.URL)
	case req.HTML != "":
		res, err = s.AnalyzeHTML(ctx, strings.NewReader(req.HTML), "")
	default:
		var root *snapshot.Node
		root, err = snapshot.DecodeBytes(req.Snapshot)
		if err == nil {
			res, err = s.AnalyzeSnapshot(ctx, root, "")
		}
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrNoCapturer):
			status = http.StatusServiceUnavailable
		case strings.Contains(err.Error(), "parse html"),
			strings.Contains(err.Error(), "decode"),
			strings.Contains(err.Error(), "unsupported url scheme"):
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	body := map[string]any{"run": res.Run, "report": res.Report}
	if req.Emit {
		files, err := s.RenderBundle(res.Report)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		body["files"] = files
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Service) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoStore)
		return
	}
	runs, err := s.ListRuns(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Service) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoStore)
		return
	}
	run, err := s.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, errors.New("run not found"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Service) handleTopPatterns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoStore)
		return
	}
	stats, err := s.TopPatterns(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if stats == nil {
		stats = []PatternStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"patterns": stats})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"store":    s.store != nil,
		"capturer": s.capturer != nil,
	})
}

func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
