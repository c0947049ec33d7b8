package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hbatwal/seo-intel/models"
)

// Report is a stored analysis with its origin metadata.
type Report struct {
	ID         int64                  `json:"id"`
	SourceKind models.SourceKind      `json:"source_kind"`
	Origin     string                 `json:"origin,omitempty"`
	Title      string                 `json:"title,omitempty"`
	Result     *models.AnalysisResult `json:"result"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ReportSummary is the lightweight listing row for the history view.
type ReportSummary struct {
	ID           int64             `json:"id"`
	SourceKind   models.SourceKind `json:"source_kind"`
	Origin       string            `json:"origin,omitempty"`
	Title        string            `json:"title,omitempty"`
	KeywordCount int               `json:"keyword_count"`
	EntityCount  int               `json:"entity_count"`
	ReadingEase  models.Metric     `json:"reading_ease"`
	Language     string            `json:"language,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// InsertReport stores a completed analysis and returns its ID.
func (db *DB) InsertReport(doc *models.Document, result *models.AnalysisResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal result: %w", err)
	}

	var ease, grade any
	if result.ReadingEase.Valid {
		ease = result.ReadingEase.Value
	}
	if result.ReadingGrade.Valid {
		grade = result.ReadingGrade.Value
	}

	res, err := db.Exec(`
		INSERT INTO reports (source_kind, origin, title, result, keyword_count, entity_count, reading_ease, reading_grade, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(doc.Source), doc.Origin, doc.PageTitle, string(payload),
		len(result.Keywords), len(result.Entities), ease, grade, result.Language,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}
	return res.LastInsertId()
}

// GetReport loads a stored report by ID. Returns sql.ErrNoRows through
// the wrap when the ID is unknown.
func (db *DB) GetReport(id int64) (*Report, error) {
	var (
		r       Report
		kind    string
		payload string
	)
	err := db.QueryRow(`
		SELECT report_id, source_kind, origin, title, result, created_at
		FROM reports WHERE report_id = ?`, id,
	).Scan(&r.ID, &kind, &r.Origin, &r.Title, &payload, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load report %d: %w", id, err)
	}

	r.SourceKind = models.SourceKind(kind)
	r.Result = &models.AnalysisResult{}
	if err := json.Unmarshal([]byte(payload), r.Result); err != nil {
		return nil, fmt.Errorf("failed to decode report %d: %w", id, err)
	}
	return &r, nil
}

// ListReports returns the most recent reports, newest first.
func (db *DB) ListReports(limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT report_id, source_kind, origin, title, keyword_count, entity_count, reading_ease, language, created_at
		FROM reports ORDER BY report_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var (
			s    ReportSummary
			kind string
			ease sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &kind, &s.Origin, &s.Title, &s.KeywordCount, &s.EntityCount, &ease, &s.Language, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		s.SourceKind = models.SourceKind(kind)
		if ease.Valid {
			s.ReadingEase = models.Metric{Value: ease.Float64, Valid: true}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LogFetch records the outcome of one URL retrieval.
func (db *DB) LogFetch(url, status string, chars int, duration time.Duration) error {
	_, err := db.Exec(`
		INSERT INTO fetches (url, status, chars, duration_ms) VALUES (?, ?, ?, ?)`,
		url, status, chars, duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to log fetch: %w", err)
	}
	return nil
}
