// Package server exposes the browser UI and the JSON API over echo.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/acquire"
	"github.com/hbatwal/seo-intel/pkg/analysis"
	"github.com/hbatwal/seo-intel/pkg/db"
)

// Server bundles the echo instance with its dependencies.
type Server struct {
	echo *echo.Echo
}

// New builds the HTTP server: UI page, API routes, health check.
func New(acq *acquire.Acquirer, pipe *analysis.Pipeline, database *db.DB, rankerName string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		slog.Warn("request failed",
			"status", code, "method", req.Method, "path", req.URL.Path,
			"remote", c.RealIP(), "error", err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{
				"error":   msg,
				"warning": code < http.StatusInternalServerError,
			})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	registerUI(e, rankerName)

	ah := &AnalyzeHandler{Acquirer: acq, Pipeline: pipe, DB: database}
	ah.Register(e.Group("/api"))

	return &Server{echo: e}
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	slog.Info("listening", "addr", addr)
	return s.echo.Start(addr)
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// httpStatus maps the failure taxonomy to response codes: usage mistakes
// are 4xx warnings, backend failures 5xx errors.
func httpStatus(err error) int {
	switch {
	case models.IsWarning(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
