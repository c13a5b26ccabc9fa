package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/repository"
)

// projectRepository implements repository.ProjectRepository for PostgreSQL.
// Technologies map directly to a TEXT[] column.
type projectRepository struct {
	db *DB
}

// NewProjectRepository creates a new PostgreSQL project repository.
func NewProjectRepository(db *DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project attributed to its owning user.
func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (user_id, name, description, start_date, end_date, technologies, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		project.UserID,
		project.Name,
		project.Description,
		nullableDate(project.StartDate),
		project.EndDate,
		project.Technologies,
		project.Image,
		project.CreatedAt,
	).Scan(&project.ID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID.
func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
		SELECT id, user_id, name, description, start_date, end_date,
		       technologies, image, created_at
		FROM projects
		WHERE id = $1
	`

	project := &domain.Project{}
	var startDate *time.Time
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&startDate,
		&project.EndDate,
		&project.Technologies,
		&project.Image,
		&project.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if startDate != nil {
		project.StartDate = *startDate
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

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project := &domain.Project{}
		var startDate *time.Time
		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&startDate,
			&project.EndDate,
			&project.Technologies,
			&project.Image,
			&project.CreatedAt,
			&project.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if startDate != nil {
			project.StartDate = *startDate
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
	query := `
		UPDATE projects
		SET name = $1, description = $2, start_date = $3, end_date = $4, technologies = $5, image = $6
		WHERE id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		project.Name,
		project.Description,
		nullableDate(project.StartDate),
		project.EndDate,
		project.Technologies,
		project.Image,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a project by ID.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// nullableDate maps a zero time to NULL so optional dates round-trip.
func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// Ensure projectRepository implements repository.ProjectRepository.
var _ repository.ProjectRepository = (*projectRepository)(nil)
