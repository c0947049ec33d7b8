package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type uiData struct {
	Ranker string
}

// registerUI mounts the single-page browser UI.
func registerUI(e *echo.Echo, rankerName string) {
	data := uiData{Ranker: rankerName}
	e.GET("/", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return indexTemplate.Execute(c.Response(), data)
	})
}
