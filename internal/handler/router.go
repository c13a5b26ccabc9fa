package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/service"
	"github.com/adityarama/folio/internal/session"
)

// WebHandler serves the server-rendered portfolio pages.
type WebHandler struct {
	authService    *service.AuthService
	projectService *service.ProjectService
	sessions       *session.Manager
	templates      *template.Template
	cookieName     string
	cookieSecure   bool
	maxUploadSize  int64
	logger         zerolog.Logger
}

// WebConfig contains configuration for the web handler.
type WebConfig struct {
	AuthService    *service.AuthService
	ProjectService *service.ProjectService
	Sessions       *session.Manager
	CookieName     string
	CookieSecure   bool
	MaxUploadSize  int64
	Logger         zerolog.Logger
}

// NewWebHandler creates a new web handler with parsed templates.
func NewWebHandler(cfg WebConfig) (*WebHandler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		authService:    cfg.AuthService,
		projectService: cfg.ProjectService,
		sessions:       cfg.Sessions,
		templates:      tmpl,
		cookieName:     cfg.CookieName,
		cookieSecure:   cfg.CookieSecure,
		maxUploadSize:  cfg.MaxUploadSize,
		logger:         cfg.Logger.With().Str("handler", "web").Logger(),
	}, nil
}

// RegisterRoutes registers all page routes.
func (h *WebHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Get("/contact", h.handleContact)
	r.Get("/testimonial", h.handleTestimonial)

	r.Get("/register", h.handleRegisterView)
	r.Post("/register", h.handleRegister)
	r.Get("/login", h.handleLoginView)
	r.Post("/login", h.handleLogin)
	r.Get("/logout", h.handleLogout)

	r.Get("/project", h.handleProjectList)
	r.Get("/addproject", h.handleProjectForm)
	r.Post("/project", h.handleProjectCreate)
	r.Get("/detail-project/{id}", h.handleProjectDetail)
	r.Get("/edit-project/{id}", h.handleProjectEditView)
	r.Post("/edit-project/{id}", h.handleProjectEdit)
	r.Get("/delete-project/{id}", h.handleProjectDelete)
}

// HandleHealth handles health check requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// saveSession persists the session, logging instead of failing the
// request when the store write goes wrong.
func (h *WebHandler) saveSession(r *http.Request, sess *session.Context) {
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Warn().Err(err).Msg("failed to persist session")
	}
}

// consumeFlashes moves pending flash messages into the page data and
// persists the cleared state so each message renders exactly once.
func (h *WebHandler) consumeFlashes(r *http.Request, sess *session.Context, data *PageData) {
	hadPending := sess.HasPendingFlash()
	data.Success, _ = sess.ConsumeFlash(session.FlashSuccess)
	data.Error, _ = sess.ConsumeFlash(session.FlashError)
	if hadPending {
		h.saveSession(r, sess)
	}
}

// flashRedirect stores a flash and redirects.
func (h *WebHandler) flashRedirect(w http.ResponseWriter, r *http.Request, sess *session.Context, kind session.FlashKind, message, location string) {
	sess.SetFlash(kind, message)
	h.saveSession(r, sess)
	http.Redirect(w, r, location, http.StatusFound)
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// httpError writes a plain error response for the given domain error.
func (h *WebHandler) httpError(w http.ResponseWriter, err error, op string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("op", op).Msg("request failed")
		http.Error(w, "Internal Server Error", status)
		return
	}
	http.Error(w, http.StatusText(status), status)
}
