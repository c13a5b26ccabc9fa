// Package domain contains the core business entities for the folio server.
package domain

import (
	"time"
)

// PlaceholderImage is the image reference assigned to a project when no
// file is uploaded at creation time.
const PlaceholderImage = "/assets/img/placeholder.png"

// Project represents a showcased portfolio project.
type Project struct {
	// ID is the unique identifier for the project (auto-generated).
	ID int64 `json:"id"`

	// UserID is the ID of the user who created the project.
	// The owning reference is immutable after creation.
	UserID int64 `json:"user_id"`

	// Name is the project title. Required.
	Name string `json:"name"`

	// Description is free-form text. Optional.
	Description string `json:"description"`

	// StartDate is when work on the project began.
	StartDate time.Time `json:"start_date"`

	// EndDate is when work finished. Nil while the project is ongoing.
	// Ordering relative to StartDate is not enforced by the store.
	EndDate *time.Time `json:"end_date,omitempty"`

	// Technologies is the ordered list of technology tags.
	Technologies []string `json:"technologies"`

	// Image is the URL or path of the project image. Always set;
	// defaults to PlaceholderImage when nothing was uploaded.
	Image string `json:"image"`

	// OwnerName is the display name of the owning user. Populated only
	// by listing queries that join the users table.
	OwnerName string `json:"owner_name,omitempty"`

	// CreatedAt is the timestamp when the project was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewProject creates a new Project owned by the given user.
func NewProject(userID int64, name string) *Project {
	return &Project{
		UserID:    userID,
		Name:      name,
		Image:     PlaceholderImage,
		CreatedAt: time.Now().UTC(),
	}
}

// Duration returns the elapsed time between start and end dates, or zero
// if the project has no end date yet.
func (p *Project) Duration() time.Duration {
	if p.EndDate == nil {
		return 0
	}
	return p.EndDate.Sub(p.StartDate)
}

// IsOwnedBy reports whether the given user created this project.
func (p *Project) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}
