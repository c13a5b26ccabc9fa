package handler

import (
	"errors"
	"net/http"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/service"
	"github.com/adityarama/folio/internal/session"
)

func (h *WebHandler) handleRegisterView(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	data := newPageData("Register", sess)
	h.render(w, "register.html", data)
}

func (h *WebHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrEmailTaken) {
			sess := SessionFrom(r.Context())
			data := newPageData("Register", sess)
			data.Error = registerErrorMessage(err)
			h.renderStatus(w, errorStatus(err), "register.html", data)
			return
		}
		h.logger.Error().Err(err).Str("op", "register").Msg("request failed")
		http.Error(w, "Error registering user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *WebHandler) handleLoginView(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	data := newPageData("Login", sess)
	h.consumeFlashes(r, sess, &data)
	h.render(w, "login.html", data)
}

func (h *WebHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	sess := SessionFrom(r.Context())

	newSess, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		PriorToken: sess.Token,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.flashRedirect(w, r, sess, session.FlashError, "User not found", "/login")
		case errors.Is(err, domain.ErrIncorrectPassword):
			h.flashRedirect(w, r, sess, session.FlashError, "Incorrect password", "/login")
		default:
			h.logger.Error().Err(err).Str("op", "login").Msg("request failed")
			h.flashRedirect(w, r, sess, session.FlashError, "Error logging in user", "/login")
		}
		return
	}

	setSessionCookie(w, h.cookieName, newSess.Token, h.sessions.TTL(), h.cookieSecure)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *WebHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.authService.Logout(r.Context(), sess.Token); err != nil {
		h.logger.Error().Err(err).Str("op", "logout").Msg("failed to destroy session")
	} else {
		clearSessionCookie(w, h.cookieName, h.cookieSecure)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// registerErrorMessage maps registration failures to a form message.
func registerErrorMessage(err error) string {
	if errors.Is(err, domain.ErrEmailTaken) {
		return "That email is already registered"
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return "The " + vErr.Field + " field " + vErr.Reason
	}
	return "Invalid input"
}
