package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no session exists for the token, or it expired.
// Callers treat this as "anonymous", never as a failure.
var ErrNotFound = errors.New("session not found")

// Store persists session contexts keyed by token.
// Implementations must treat expired entries as absent.
type Store interface {
	// Get retrieves the context for a token. Returns ErrNotFound for
	// unknown or expired tokens.
	Get(ctx context.Context, token string) (*Context, error)

	// Save persists the context and resets its time-to-live.
	Save(ctx context.Context, sess *Context, ttl time.Duration) error

	// Delete removes the context. Deleting a missing token is not an
	// error.
	Delete(ctx context.Context, token string) error

	// Close releases store resources.
	Close() error
}
