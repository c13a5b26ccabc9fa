// Package session implements per-client ambient state for the folio server:
// the current identity and one-shot flash messages, keyed by an opaque
// token the client holds in a cookie. Contexts live server-side in a
// pluggable store and expire after a fixed inactivity window.
package session

import (
	"time"
)

// FlashKind distinguishes the two one-shot message slots.
type FlashKind string

const (
	// FlashSuccess is the slot for success notifications.
	FlashSuccess FlashKind = "success"

	// FlashError is the slot for error notifications.
	FlashError FlashKind = "error"
)

// Identity is the authenticated user attached to a session.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Context is the per-client session state. A Context with a nil User is
// anonymous. Each flash slot holds at most one unread message; reading a
// message clears it.
type Context struct {
	// Token is the opaque identifier the client holds.
	Token string `json:"token"`

	// User is the current identity, or nil for anonymous sessions.
	User *Identity `json:"user,omitempty"`

	// SuccessFlash and ErrorFlash are the pending one-shot messages.
	// Empty means no pending message of that kind.
	SuccessFlash string `json:"success_flash,omitempty"`
	ErrorFlash   string `json:"error_flash,omitempty"`

	// LastSeen is refreshed on every save; it anchors the inactivity
	// expiry window.
	LastSeen time.Time `json:"last_seen"`
}

// IsAuthenticated reports whether an identity is attached.
func (c *Context) IsAuthenticated() bool {
	return c.User != nil
}

// SetIdentity binds an identity to the session.
func (c *Context) SetIdentity(userID int64, email, name string) {
	c.User = &Identity{UserID: userID, Email: email, Name: name}
}

// SetFlash stores a one-shot message, overwriting any unread message of
// the same kind.
func (c *Context) SetFlash(kind FlashKind, message string) {
	switch kind {
	case FlashSuccess:
		c.SuccessFlash = message
	case FlashError:
		c.ErrorFlash = message
	}
}

// ConsumeFlash returns the pending message of the given kind and clears
// it. The second return is false when no message was pending. The caller
// must persist the context afterwards so the cleared state survives the
// next request.
func (c *Context) ConsumeFlash(kind FlashKind) (string, bool) {
	var msg string
	switch kind {
	case FlashSuccess:
		msg, c.SuccessFlash = c.SuccessFlash, ""
	case FlashError:
		msg, c.ErrorFlash = c.ErrorFlash, ""
	}
	return msg, msg != ""
}

// HasPendingFlash reports whether either slot holds an unread message.
func (c *Context) HasPendingFlash() bool {
	return c.SuccessFlash != "" || c.ErrorFlash != ""
}
