// Package handler provides the HTTP layer for the folio server.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFrom extracts the session context from the request context.
// The session middleware guarantees it is present on wrapped routes.
func SessionFrom(ctx context.Context) *session.Context {
	sess, _ := ctx.Value(sessionContextKey).(*session.Context)
	return sess
}

// SessionMiddleware loads the session context for every request and
// injects it into the request context. Absent or expired tokens yield a
// fresh anonymous context; that is never an error. The cookie is set
// whenever the token changed so the client always holds the current one.
func SessionMiddleware(sessions *session.Manager, cookieName string, secure bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			sess, err := sessions.Load(r.Context(), token)
			if err != nil {
				logger.Error().Err(err).Msg("session load failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if sess.Token != token {
				setSessionCookie(w, cookieName, sess.Token, sessions.TTL(), secure)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setSessionCookie writes the session cookie.
func setSessionCookie(w http.ResponseWriter, name, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RequestLogger logs one line per request with method, path, and timing.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}
