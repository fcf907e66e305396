package postgres

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

func (r *repo) AddProject(ctx context.Context, project models.Project) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES ($1, $2, $3)`,
		project.ID, project.Name, project.CreatedAt)
	return mapError(err, "failed to add project")
}

func (r *repo) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, apperrors.NotFoundf("project %s", id)
	}
	if err != nil {
		return models.Project{}, mapError(err, "failed to get project")
	}
	return p, nil
}

func (r *repo) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, created_at FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, mapError(err, "failed to list projects")
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
