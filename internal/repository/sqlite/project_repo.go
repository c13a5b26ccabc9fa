package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/repository"
)

// dateFormat is the storage format for project start/end dates.
const dateFormat = "2006-01-02"

// projectRepository implements repository.ProjectRepository for SQLite.
// Technologies are stored as a JSON array to preserve ordering.
type projectRepository struct {
	db *DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project attributed to its owning user.
func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	techs, err := json.Marshal(project.Technologies)
	if err != nil {
		return fmt.Errorf("failed to encode technologies: %w", err)
	}

	query := `
		INSERT INTO projects (user_id, name, description, start_date, end_date, technologies, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		project.UserID,
		project.Name,
		project.Description,
		formatDate(project.StartDate),
		formatDatePtr(project.EndDate),
		string(techs),
		project.Image,
		project.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	project.ID = id

	return nil
}

// GetByID retrieves a project by ID.
func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
		SELECT id, user_id, name, description, start_date, end_date, technologies, image, created_at
		FROM projects
		WHERE id = ?
	`

	project := &domain.Project{}
	var startDate, endDate sql.NullString
	var techs, createdAt string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&startDate,
		&endDate,
		&techs,
		&project.Image,
		&createdAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := decodeProjectFields(project, startDate, endDate, techs, createdAt); err != nil {
		return nil, err
	}

	return project, nil
}

// List returns all projects, newest first, with OwnerName populated.
func (r *projectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.start_date, p.end_date,
		       p.technologies, p.image, p.created_at, u.name
		FROM projects p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project := &domain.Project{}
		var startDate, endDate sql.NullString
		var techs, createdAt string

		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&startDate,
			&endDate,
			&techs,
			&project.Image,
			&createdAt,
			&project.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if err := decodeProjectFields(project, startDate, endDate, techs, createdAt); err != nil {
			return nil, err
		}

		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// Update updates the mutable fields of an existing project.
// The owning-user reference is never touched.
func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	techs, err := json.Marshal(project.Technologies)
	if err != nil {
		return fmt.Errorf("failed to encode technologies: %w", err)
	}

	query := `
		UPDATE projects
		SET name = ?, description = ?, start_date = ?, end_date = ?, technologies = ?, image = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		formatDate(project.StartDate),
		formatDatePtr(project.EndDate),
		string(techs),
		project.Image,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a project by ID.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// decodeProjectFields fills the parsed date, technology and timestamp
// fields scanned from their storage representations.
func decodeProjectFields(project *domain.Project, startDate, endDate sql.NullString, techs, createdAt string) error {
	if startDate.Valid && startDate.String != "" {
		t, err := time.Parse(dateFormat, startDate.String)
		if err != nil {
			return fmt.Errorf("failed to parse start date: %w", err)
		}
		project.StartDate = t
	}
	if endDate.Valid && endDate.String != "" {
		t, err := time.Parse(dateFormat, endDate.String)
		if err != nil {
			return fmt.Errorf("failed to parse end date: %w", err)
		}
		project.EndDate = &t
	}
	if err := json.Unmarshal([]byte(techs), &project.Technologies); err != nil {
		return fmt.Errorf("failed to decode technologies: %w", err)
	}
	project.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return nil
}

func formatDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateFormat)
}

func formatDatePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateFormat)
}

// Ensure projectRepository implements repository.ProjectRepository.
var _ repository.ProjectRepository = (*projectRepository)(nil)
