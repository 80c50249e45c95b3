package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Run is one persisted analysis.
type Run struct {
	ID             string          `json:"id"`
	PageURL        string          `json:"page_url"`
	Title          string          `json:"title,omitempty"`
	Source         string          `json:"source"`
	NodeCount      int             `json:"node_count"`
	ComponentCount int             `json:"component_count"`
	PatternCount   int             `json:"pattern_count"`
	Truncated      bool            `json:"truncated"`
	Report         json.RawMessage `json:"report,omitempty"`
	CreatedAt      int64           `json:"created_at"`
}

// PatternRow is one flattened repeated-pattern entry.
type PatternRow struct {
	Signature string `json:"signature"`
	Count     int    `json:"count"`
}

// TokenRow is one flattened palette value. Token is "" when the raw
// value had no name on its scale.
type TokenRow struct {
	Category string `json:"category"`
	Position int    `json:"position"`
	Raw      string `json:"raw"`
	Token    string `json:"token,omitempty"`
}

// PatternStat aggregates one signature across runs.
type PatternStat struct {
	Signature string `json:"signature"`
	Runs      int    `json:"runs"`
	Total     int    `json:"total"`
}

// InsertRun persists a run with its flattened patterns and tokens in
// one transaction.
func (s *Store) InsertRun(ctx context.Context, r *Run, patterns []PatternRow, tokens []TokenRow) error {
	if r.ID == "" {
		return fmt.Errorf("store: insert run: empty id")
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analysis_runs
		(id, page_url, title, source, node_count, component_count, pattern_count, truncated, report, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.PageURL, r.Title, r.Source, r.NodeCount, r.ComponentCount,
		r.PatternCount, boolInt(r.Truncated), string(r.Report), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	for _, p := range patterns {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_patterns (run_id, signature, count) VALUES (?,?,?)`,
			r.ID, p.Signature, p.Count); err != nil {
			return fmt.Errorf("store: insert pattern: %w", err)
		}
	}
	for _, tok := range tokens {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_tokens (run_id, category, position, raw, token) VALUES (?,?,?,?,?)`,
			r.ID, tok.Category, tok.Position, tok.Raw, tok.Token); err != nil {
			return fmt.Errorf("store: insert token: %w", err)
		}
	}
	return tx.Commit()
}

// GetRun retrieves a run by ID, report included. Nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	r := &Run{}
	var truncated int
	var report string
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, page_url, title, source, node_count, component_count, pattern_count, truncated, report, created_at
		FROM analysis_runs WHERE id = ?`, id).Scan(
		&r.ID, &r.PageURL, &r.Title, &r.Source, &r.NodeCount, &r.ComponentCount,
		&r.PatternCount, &truncated, &report, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Truncated = truncated != 0
	r.Report = json.RawMessage(report)
	return r, nil
}

// ListRuns returns the most recent runs, newest first, without the
// report payload. limit <= 0 selects 50.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, page_url, title, source, node_count, component_count, pattern_count, truncated, created_at
		FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		var truncated int
		if err := rows.Scan(&r.ID, &r.PageURL, &r.Title, &r.Source, &r.NodeCount,
			&r.ComponentCount, &r.PatternCount, &truncated, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Truncated = truncated != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run; patterns and tokens cascade.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM analysis_runs WHERE id = ?`, id)
	return err
}

// CountRuns returns the total number of stored runs.
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_runs`).Scan(&n)
	return n, err
}

// RunTokens returns a run's flattened palette in stored order.
func (s *Store) RunTokens(ctx context.Context, runID string) ([]TokenRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT category, position, raw, token
		FROM run_tokens WHERE run_id = ? ORDER BY category, position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []TokenRow
	for rows.Next() {
		var t TokenRow
		if err := rows.Scan(&t.Category, &t.Position, &t.Raw, &t.Token); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// TopPatterns aggregates signatures across all runs: in how many runs
// each repeated, and the total occurrence count. limit <= 0 selects 20.
func (s *Store) TopPatterns(ctx context.Context, limit int) ([]PatternStat, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT signature, COUNT(DISTINCT run_id) AS runs, SUM(count) AS total
		FROM run_patterns
		GROUP BY signature
		ORDER BY total DESC, signature
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PatternStat
	for rows.Next() {
		var st PatternStat
		if err := rows.Scan(&st.Signature, &st.Runs, &st.Total); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// PruneRuns deletes all but the newest keep runs. Side tables follow
// through ON DELETE CASCADE. Returns the number of runs removed.
func (s *Store) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.DB.ExecContext(ctx, `
		DELETE FROM analysis_runs
		WHERE id NOT IN (
			SELECT id FROM analysis_runs
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("store: prune runs: %w", err)
	}
	return res.RowsAffected()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
