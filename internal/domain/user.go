// Package domain contains the core business entities for the folio server.
// These are pure Go structs with no external dependencies.
package domain

import (
	"time"
)

// User represents a registered account. Users own the projects they create.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Name is the display name shown next to owned projects.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed in responses or logs.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with timestamps set.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
