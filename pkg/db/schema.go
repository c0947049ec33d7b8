package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Reports: one row per completed analysis, full result as JSON
CREATE TABLE IF NOT EXISTS reports (
    report_id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_kind TEXT NOT NULL,        -- pasted, fetched, uploaded
    origin TEXT,                      -- URL or filename, empty for pasted text
    title TEXT,                       -- page title for fetched documents
    result TEXT NOT NULL,             -- models.AnalysisResult as JSON
    keyword_count INTEGER NOT NULL DEFAULT 0,
    entity_count INTEGER NOT NULL DEFAULT 0,
    reading_ease REAL,                -- NULL when degraded to N/A
    reading_grade REAL,
    language TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
CREATE INDEX IF NOT EXISTS idx_reports_source ON reports(source_kind);

-- Fetch log: outcome of every URL retrieval
CREATE TABLE IF NOT EXISTS fetches (
    fetch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    status TEXT NOT NULL,             -- ok, invalid, failed, insufficient, cached
    chars INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fetches_url ON fetches(url);
`
