package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
	"github.com/julianstephens/projcal/internal/storage"
)

const taskColumns = `id, project_id, name, start_date, end_date, status, created_at, updated_at`

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var endDate sql.NullString
	var status string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.StartDate, &endDate, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, err
	}
	if endDate.Valid {
		t.EndDate = endDate.String
	}
	t.Status = models.TaskStatus(status)
	return t, nil
}

func nullableDate(date string) sql.NullString {
	return sql.NullString{String: date, Valid: date != ""}
}

func (r *repo) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query tasks")
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *repo) AddTask(ctx context.Context, t models.Task) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Name, t.StartDate, nullableDate(t.EndDate), string(t.Status), t.CreatedAt, t.UpdatedAt)
	return mapError(err, "failed to add task")
}

func (r *repo) GetTask(ctx context.Context, id string) (models.Task, error) {
	t, err := scanTask(r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, apperrors.NotFoundf("task %s", id)
	}
	if err != nil {
		return models.Task{}, mapError(err, "failed to get task")
	}
	return t, nil
}

func (r *repo) GetTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY start_date, name`, projectID)
}

func (r *repo) GetOpenTasksBetween(ctx context.Context, projectID, from, to string) ([]models.Task, error) {
	terminal := models.TerminalTaskStatuses
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(terminal)), ", ")

	args := []any{projectID, to, from}
	for _, s := range terminal {
		args = append(args, string(s))
	}

	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE project_id = ?
		  AND start_date <= ?
		  AND COALESCE(end_date, start_date) >= ?
		  AND status NOT IN (`+placeholders+`)
		ORDER BY start_date, id`, args...)
}

func (r *repo) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), storage.Timestamp(), id)
	if err != nil {
		return mapError(err, "failed to update task status")
	}
	return requireRow(res, "task", id)
}

func (r *repo) UpdateTaskDates(ctx context.Context, id, startDate, endDate string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		startDate, nullableDate(endDate), storage.Timestamp(), id)
	if err != nil {
		return mapError(err, "failed to update task dates")
	}
	return requireRow(res, "task", id)
}
