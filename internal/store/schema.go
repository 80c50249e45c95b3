package store

// Schema contains the complete DDL for the domsift tables.
const Schema = `
-- Analysis runs: one row per analyzed snapshot, report stored whole
CREATE TABLE IF NOT EXISTS analysis_runs (
    id              TEXT PRIMARY KEY,
    page_url        TEXT NOT NULL,
    title           TEXT NOT NULL DEFAULT '',
    source          TEXT NOT NULL DEFAULT 'url',
    node_count      INTEGER NOT NULL DEFAULT 0,
    component_count INTEGER NOT NULL DEFAULT 0,
    pattern_count   INTEGER NOT NULL DEFAULT 0,
    truncated       INTEGER NOT NULL DEFAULT 0,
    report          TEXT NOT NULL,
    created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_url ON analysis_runs(page_url);
CREATE INDEX IF NOT EXISTS idx_runs_created ON analysis_runs(created_at DESC);

-- Repeated patterns flattened per run, for cross-run structure queries
CREATE TABLE IF NOT EXISTS run_patterns (
    run_id    TEXT NOT NULL,
    signature TEXT NOT NULL,
    count     INTEGER NOT NULL,
    PRIMARY KEY (run_id, signature),
    FOREIGN KEY (run_id) REFERENCES analysis_runs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_patterns_sig ON run_patterns(signature);

-- Palette values flattened per run; token is the quantized name or ''
CREATE TABLE IF NOT EXISTS run_tokens (
    run_id   TEXT NOT NULL,
    category TEXT NOT NULL,
    position INTEGER NOT NULL,
    raw      TEXT NOT NULL,
    token    TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, category, position),
    FOREIGN KEY (run_id) REFERENCES analysis_runs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tokens_raw ON run_tokens(category, raw);
`
