// Package repository defines data access interfaces for the folio server.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, mocks for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/adityarama/folio/internal/domain"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user. Returns domain.ErrEmailTaken when the
	// email unique constraint is violated.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by exact email match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// Create creates a new project attributed to its owning user.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by ID.
	GetByID(ctx context.Context, id int64) (*domain.Project, error)

	// List returns all projects, newest first, with OwnerName populated
	// from the joined users table.
	List(ctx context.Context) ([]*domain.Project, error)

	// Update updates the mutable fields of an existing project.
	// The owning-user reference is never changed. Returns ErrNotFound
	// when no row matches.
	Update(ctx context.Context, project *domain.Project) error

	// Delete deletes a project by ID. Returns ErrNotFound when no row
	// matches.
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository instances.
type Repositories struct {
	User    UserRepository
	Project ProjectRepository
}

// DatabaseHealth is an interface for database health checks.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}
