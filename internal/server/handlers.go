package server

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/acquire"
	"github.com/hbatwal/seo-intel/pkg/analysis"
	"github.com/hbatwal/seo-intel/pkg/db"
	"github.com/hbatwal/seo-intel/pkg/export"
)

// AnalyzeHandler serves the analysis, comparison and report endpoints.
type AnalyzeHandler struct {
	Acquirer *acquire.Acquirer
	Pipeline *analysis.Pipeline
	DB       *db.DB
}

// Register mounts the API endpoints under the provided group.
func (h *AnalyzeHandler) Register(g *echo.Group) {
	g.POST("/analyze", h.analyze)
	g.POST("/compare", h.compare)
	g.GET("/reports", h.listReports)
	g.GET("/reports/:id/csv", h.reportCSV)
}

// analyzeResponse is the JSON shape for one completed analysis.
type analyzeResponse struct {
	ReportID int64                  `json:"report_id,omitempty"`
	Document *models.Document       `json:"document"`
	Result   *models.AnalysisResult `json:"result"`
}

// analyze accepts a multipart form with mode=text|url|file and the
// matching field (text, url, or file upload restricted to .txt/.docx).
func (h *AnalyzeHandler) analyze(c echo.Context) error {
	src, err := h.sourceFromRequest(c)
	if err != nil {
		return echo.NewHTTPError(httpStatus(err), err.Error())
	}

	resp, err := h.runAnalysis(c, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AnalyzeHandler) sourceFromRequest(c echo.Context) (acquire.Source, error) {
	mode := c.FormValue("mode")
	switch mode {
	case "text":
		text := c.FormValue("text")
		if strings.TrimSpace(text) == "" {
			return acquire.Source{}, models.ValidationErr("no text to analyze")
		}
		return acquire.Source{Kind: models.SourcePasted, Text: text}, nil

	case "url":
		rawURL := strings.TrimSpace(c.FormValue("url"))
		if rawURL == "" {
			return acquire.Source{}, models.ValidationErr("no URL given")
		}
		return acquire.Source{Kind: models.SourceFetched, URL: rawURL}, nil

	case "file":
		fh, err := c.FormFile("file")
		if err != nil {
			return acquire.Source{}, models.ValidationErr("no file uploaded")
		}
		f, err := fh.Open()
		if err != nil {
			return acquire.Source{}, models.ValidationErr("could not open upload: %s", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return acquire.Source{}, models.ValidationErr("could not read upload: %s", err)
		}
		return acquire.Source{Kind: models.SourceUploaded, Filename: fh.Filename, Data: data}, nil

	default:
		return acquire.Source{}, models.ValidationErr("mode must be text, url or file")
	}
}

// runAnalysis acquires text for a source, runs the pipeline and stores
// the report.
func (h *AnalyzeHandler) runAnalysis(c echo.Context, src acquire.Source) (*analyzeResponse, error) {
	ctx := c.Request().Context()

	start := time.Now()
	doc, err := h.Acquirer.Acquire(ctx, src)
	if src.Kind == models.SourceFetched {
		h.logFetch(src.URL, err, doc, time.Since(start))
	}
	if err != nil && !errors.Is(err, models.ErrExtraction) {
		return nil, echo.NewHTTPError(httpStatus(err), err.Error())
	}
	// Extraction failures degrade to empty text; the emptiness check
	// below turns that into a user-facing warning.
	if strings.TrimSpace(doc.Text) == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no analyzable text in input")
	}

	result, err := h.Pipeline.Analyze(ctx, doc.Text)
	if err != nil {
		return nil, echo.NewHTTPError(httpStatus(err), err.Error())
	}

	resp := &analyzeResponse{Document: doc, Result: result}
	if h.DB != nil {
		if id, err := h.DB.InsertReport(doc, result); err == nil {
			resp.ReportID = id
		} else {
			slog.Warn("failed to store report", "error", err)
		}
	}
	return resp, nil
}

func (h *AnalyzeHandler) logFetch(url string, err error, doc *models.Document, took time.Duration) {
	if h.DB == nil {
		return
	}
	status := "ok"
	chars := 0
	switch {
	case errors.Is(err, models.ErrValidation):
		status = "invalid"
	case errors.Is(err, models.ErrInsufficientContent):
		status = "insufficient"
	case err != nil:
		status = "failed"
	default:
		chars = len(doc.Text)
	}
	if err := h.DB.LogFetch(url, status, chars, took); err != nil {
		slog.Warn("failed to log fetch", "url", url, "error", err)
	}
}

// compareRequest holds the two competitor URLs.
type compareRequest struct {
	URLA string `json:"url_a" form:"url_a"`
	URLB string `json:"url_b" form:"url_b"`
}

// comparisonRow is one metric of the side-by-side summary table.
type comparisonRow struct {
	Metric string `json:"metric"`
	A      string `json:"a"`
	B      string `json:"b"`
}

type compareResponse struct {
	A       *analyzeResponse `json:"a"`
	B       *analyzeResponse `json:"b"`
	Summary []comparisonRow  `json:"summary"`
}

// compare fetches and analyzes two competitor URLs sequentially, then
// builds the summary table: keyword count, entity count, readability
// score, grade.
func (h *AnalyzeHandler) compare(c echo.Context) error {
	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse request")
	}
	req.URLA = strings.TrimSpace(req.URLA)
	req.URLB = strings.TrimSpace(req.URLB)
	if req.URLA == "" || req.URLB == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "both URLs are required")
	}
	if !acquire.IsValidURL(req.URLA) || !acquire.IsValidURL(req.URLB) {
		return echo.NewHTTPError(http.StatusBadRequest, "both URLs must have a scheme and a host")
	}

	a, err := h.runAnalysis(c, acquire.Source{Kind: models.SourceFetched, URL: req.URLA})
	if err != nil {
		return err
	}
	b, err := h.runAnalysis(c, acquire.Source{Kind: models.SourceFetched, URL: req.URLB})
	if err != nil {
		return err
	}

	resp := &compareResponse{
		A: a,
		B: b,
		Summary: []comparisonRow{
			{Metric: "Keyword Count", A: strconv.Itoa(len(a.Result.Keywords)), B: strconv.Itoa(len(b.Result.Keywords))},
			{Metric: "Unique Entities", A: strconv.Itoa(len(a.Result.Entities)), B: strconv.Itoa(len(b.Result.Entities))},
			{Metric: "Readability", A: a.Result.ReadingEase.String(), B: b.Result.ReadingEase.String()},
			{Metric: "Grade Level", A: a.Result.ReadingGrade.String(), B: b.Result.ReadingGrade.String()},
		},
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AnalyzeHandler) listReports(c echo.Context) error {
	if h.DB == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "report store not configured")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	reports, err := h.DB.ListReports(limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reports == nil {
		reports = []db.ReportSummary{}
	}
	return c.JSON(http.StatusOK, reports)
}

// reportCSV serves the stored keyword table as seo_report.csv.
func (h *AnalyzeHandler) reportCSV(c echo.Context) error {
	if h.DB == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "report store not configured")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "report id must be numeric")
	}

	report, err := h.DB.GetReport(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "no such report")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report.Result); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.CSVFilename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
