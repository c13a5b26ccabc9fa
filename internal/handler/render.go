package handler

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/adityarama/folio/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// parseTemplates loads the embedded page templates with shared helpers.
func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 January 2006")
		},
		"formatDatePtr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2 January 2006")
		},
		"inputDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"inputDatePtr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"humanDuration": func(d time.Duration) string {
			days := int(d.Hours() / 24)
			switch {
			case days <= 0:
				return "less than a day"
			case days == 1:
				return "1 day"
			case days < 60:
				return fmt.Sprintf("%d days", days)
			default:
				return fmt.Sprintf("%d months", days/30)
			}
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// PageData contains data common to every page.
type PageData struct {
	Title   string
	User    *session.Identity
	Success string
	Error   string
}

// newPageData builds common page data from the current session without
// touching the flash slots.
func newPageData(title string, sess *session.Context) PageData {
	data := PageData{Title: title}
	if sess != nil {
		data.User = sess.User
	}
	return data
}

// render executes a template. Render failures after headers are already
// written can only be logged.
func (h *WebHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// renderStatus renders a template with an explicit status code.
func (h *WebHandler) renderStatus(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
