package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/acquire"
	"github.com/hbatwal/seo-intel/pkg/analysis"
	"github.com/hbatwal/seo-intel/pkg/annotate"
	"github.com/hbatwal/seo-intel/pkg/caching"
	"github.com/hbatwal/seo-intel/pkg/db"
	"github.com/hbatwal/seo-intel/pkg/fetcher"
	"github.com/hbatwal/seo-intel/pkg/keywords"
)

const articleText = "Solar energy adoption is growing across Europe. Wind turbines now power " +
	"entire coastal towns in Denmark. Battery storage makes renewable grids stable " +
	"through the night. Engineers keep improving solar panels and wind turbines every year."

// newTestServer builds a full server backed by an in-memory database and
// the local keyword ranker.
func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	annotator, err := annotate.NewAnnotator()
	if err != nil {
		t.Fatalf("failed to build annotator: %v", err)
	}
	extractor := keywords.NewExtractor(context.Background(), keywords.Config{})
	pipe := analysis.NewPipeline(annotator, extractor)

	f := fetcher.NewFetcher(5*time.Second, "Mozilla/5.0")
	acq := acquire.NewAcquirer(f, caching.NewCache(time.Minute))

	return New(acq, pipe, database, extractor.RankerName()), database
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echoContentType, "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func TestAnalyzeTextMode(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/api/analyze", url.Values{
		"mode": {"text"},
		"text": {articleText},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReportID int64                  `json:"report_id"`
		Result   *models.AnalysisResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ReportID == 0 {
		t.Error("analysis should be stored and return a report ID")
	}
	if len(resp.Result.Keywords) == 0 {
		t.Error("no keywords extracted")
	}
	if !resp.Result.ReadingEase.Valid {
		t.Error("reading ease should be computed for real prose")
	}
	if resp.Result.MetaTitle == "N/A" {
		t.Errorf("MetaTitle = %q", resp.Result.MetaTitle)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/api/analyze", url.Values{
		"mode": {"text"},
		"text": {"   "},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["warning"] != true {
		t.Errorf("4xx errors should be flagged as warnings: %v", body)
	}
}

func TestAnalyzeBadMode(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/api/analyze", url.Values{"mode": {"carrier-pigeon"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/api/analyze", url.Values{
		"mode": {"url"},
		"url":  {"not a url"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeFileMode(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("mode", "file"); err != nil {
		t.Fatal(err)
	}
	fw, err := w.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(articleText)); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(buf.String()))
	req.Header.Set(echoContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document *models.Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Document.Source != models.SourceUploaded || resp.Document.Origin != "notes.txt" {
		t.Errorf("document = %+v", resp.Document)
	}
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	f := fetcher.NewFetcher(5*time.Second, "Mozilla/5.0")
	acq := acquire.NewAcquirer(f, caching.NewCache(time.Minute))
	srv := New(acq, analysis.NewPipeline(nil, nil), database, "none")

	rec := postForm(t, srv, "/api/analyze", url.Values{
		"mode": {"text"},
		"text": {articleText},
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body %s", rec.Code, rec.Body.String())
	}
}

func TestCompareValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing b", `{"url_a": "https://example.com"}`},
		{"invalid url", `{"url_a": "https://example.com", "url_b": "nonsense"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(tt.body))
			req.Header.Set(echoContentType, "application/json")
			rec := httptest.NewRecorder()
			srv.Echo().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCompareFetchesBothPages(t *testing.T) {
	srv, _ := newTestServer(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + articleText + "</p></body></html>"))
	}))
	defer page.Close()

	body := `{"url_a": "` + page.URL + `/a", "url_b": "` + page.URL + `/b"}`
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary []struct {
			Metric string `json:"metric"`
			A      string `json:"a"`
			B      string `json:"b"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Summary) != 4 {
		t.Fatalf("got %d summary rows, want 4", len(resp.Summary))
	}
	if resp.Summary[0].Metric != "Keyword Count" {
		t.Errorf("first row = %q", resp.Summary[0].Metric)
	}
	// Identical pages produce identical metrics.
	for _, row := range resp.Summary {
		if row.A != row.B {
			t.Errorf("%s: %q != %q for identical pages", row.Metric, row.A, row.B)
		}
	}
}

func TestReportCSVRoundTrip(t *testing.T) {
	srv, database := newTestServer(t)

	doc := &models.Document{Source: models.SourcePasted}
	result := models.EmptyResult()
	result.Keywords = []models.Keyword{{Phrase: "solar energy", Score: 0.81}}
	result.Density = []models.DensityEntry{{Phrase: "solar energy", Percent: 22.22}}
	id, err := database.InsertReport(doc, result)
	if err != nil {
		t.Fatalf("InsertReport() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/"+strconv.FormatInt(id, 10)+"/csv", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "seo_report.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][2] != "Density (%)" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "solar energy" || rows[1][1] != "0.81" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestReportCSVMissing(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/9999/csv", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListReports(t *testing.T) {
	srv, database := newTestServer(t)

	doc := &models.Document{Source: models.SourcePasted}
	if _, err := database.InsertReport(doc, models.EmptyResult()); err != nil {
		t.Fatalf("InsertReport() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var reports []db.ReportSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("got %d reports, want 1", len(reports))
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}
