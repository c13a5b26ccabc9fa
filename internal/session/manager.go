package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager loads, saves, and destroys session contexts against a Store,
// applying the configured inactivity window.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(store Store, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// TTL returns the configured inactivity window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load returns the context for a token, or a fresh anonymous context when
// the token is empty, unknown, or expired. Store failures other than
// absence are surfaced so the caller can fail the request.
func (m *Manager) Load(ctx context.Context, token string) (*Context, error) {
	if token != "" {
		sess, err := m.store.Get(ctx, token)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	return m.newAnonymous(), nil
}

// Save persists the context and refreshes its inactivity window.
func (m *Manager) Save(ctx context.Context, sess *Context) error {
	sess.LastSeen = time.Now().UTC()
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy invalidates the whole context. Destroying a missing or already
// destroyed session is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	m.logger.Debug().Msg("session destroyed")
	return nil
}

// newAnonymous creates an empty context with a fresh token.
func (m *Manager) newAnonymous() *Context {
	return &Context{
		Token:    uuid.NewString(),
		LastSeen: time.Now().UTC(),
	}
}
