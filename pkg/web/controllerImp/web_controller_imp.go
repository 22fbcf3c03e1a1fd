// Package controllerImp serves the landing page that reports the API status.
package controllerImp

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

var stack = []string{
	"Echo for the HTTP API",
	"GORM over SQLite or PostgreSQL",
	"Excelize for material and BOQ workbooks",
	"Zap, Viper and Cobra for logs, config and commands",
}

type WebCtrl struct {
	healthURL string
}

// New takes the API base URL the page calls; empty means the serving origin.
func New(apiBaseURL string) *WebCtrl {
	return &WebCtrl{healthURL: strings.TrimRight(strings.TrimSpace(apiBaseURL), "/") + "/health"}
}

type indexData struct {
	HealthURL string
	Stack     []string
}

func (h *WebCtrl) Index(c echo.Context) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "index.html", indexData{HealthURL: h.healthURL, Stack: stack}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
