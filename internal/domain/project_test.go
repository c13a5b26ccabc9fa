package domain

import (
	"testing"
	"time"
)

func TestNewProject(t *testing.T) {
	p := NewProject(7, "Folio")

	if p.UserID != 7 {
		t.Errorf("expected owner 7, got %d", p.UserID)
	}
	if p.Name != "Folio" {
		t.Errorf("expected name Folio, got %s", p.Name)
	}
	if p.Image != PlaceholderImage {
		t.Errorf("expected placeholder image, got %s", p.Image)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestProject_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	p := &Project{StartDate: start, EndDate: &end}
	if got := p.Duration(); got != 30*24*time.Hour {
		t.Errorf("expected 30 days, got %v", got)
	}

	// Ongoing projects have no duration yet.
	p.EndDate = nil
	if got := p.Duration(); got != 0 {
		t.Errorf("expected zero duration, got %v", got)
	}
}

func TestProject_IsOwnedBy(t *testing.T) {
	p := NewProject(7, "Folio")

	if !p.IsOwnedBy(7) {
		t.Error("expected owner match")
	}
	if p.IsOwnedBy(8) {
		t.Error("expected non-owner mismatch")
	}
}
