package postgres

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
	"github.com/julianstephens/projcal/internal/storage"
)

const holidayColumns = `id, project_id, date, kind, waivable, notes, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (models.Holiday, error) {
	var h models.Holiday
	var kind, status string
	err := row.Scan(&h.ID, &h.ProjectID, &h.Date, &kind, &h.Waivable, &h.Notes, &status, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return models.Holiday{}, err
	}
	h.Kind = models.HolidayKind(kind)
	h.Status = models.HolidayStatus(status)
	return h, nil
}

func (r *repo) queryHolidays(ctx context.Context, query string, args ...any) ([]models.Holiday, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query holidays")
	}
	defer rows.Close()

	var holidays []models.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *repo) AddHoliday(ctx context.Context, h models.Holiday) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO holidays (`+holidayColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		h.ID, h.ProjectID, h.Date, string(h.Kind), h.Waivable, h.Notes, string(h.Status), h.CreatedAt, h.UpdatedAt)
	return mapError(err, "failed to add holiday")
}

func (r *repo) GetHoliday(ctx context.Context, id string) (models.Holiday, error) {
	h, err := scanHoliday(r.q.QueryRowContext(ctx,
		`SELECT `+holidayColumns+` FROM holidays WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Holiday{}, apperrors.NotFoundf("holiday %s", id)
	}
	if err != nil {
		return models.Holiday{}, mapError(err, "failed to get holiday")
	}
	return h, nil
}

func (r *repo) FindHolidayByDate(ctx context.Context, projectID, date string) (models.Holiday, error) {
	h, err := scanHoliday(r.q.QueryRowContext(ctx, `
		SELECT `+holidayColumns+` FROM holidays
		WHERE project_id = $1 AND date = $2
		ORDER BY (status = 'active') DESC, updated_at DESC
		LIMIT 1`, projectID, date))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Holiday{}, apperrors.NotFoundf("holiday on %s", date)
	}
	if err != nil {
		return models.Holiday{}, mapError(err, "failed to find holiday")
	}
	return h, nil
}

func (r *repo) GetHolidays(ctx context.Context, projectID string, includeDeleted bool) ([]models.Holiday, error) {
	if includeDeleted {
		return r.queryHolidays(ctx, `
			SELECT `+holidayColumns+` FROM holidays
			WHERE project_id = $1 ORDER BY date, updated_at`, projectID)
	}
	return r.queryHolidays(ctx, `
		SELECT `+holidayColumns+` FROM holidays
		WHERE project_id = $1 AND status = 'active' ORDER BY date`, projectID)
}

func (r *repo) GetActiveHolidaysBetween(ctx context.Context, projectID, from, to string) ([]models.Holiday, error) {
	return r.queryHolidays(ctx, `
		SELECT `+holidayColumns+` FROM holidays
		WHERE project_id = $1 AND status = 'active' AND date BETWEEN $2 AND $3
		ORDER BY date`, projectID, from, to)
}

func (r *repo) UpdateHoliday(ctx context.Context, h models.Holiday) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE holidays SET kind = $1, waivable = $2, notes = $3, status = $4, updated_at = $5
		WHERE id = $6`,
		string(h.Kind), h.Waivable, h.Notes, string(h.Status), h.UpdatedAt, h.ID)
	if err != nil {
		return mapError(err, "failed to update holiday")
	}
	return requireRow(res, "holiday", h.ID)
}

func (r *repo) DeleteHoliday(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE holidays SET status = 'deleted', updated_at = $1 WHERE id = $2 AND status = 'active'`,
		storage.Timestamp(), id)
	if err != nil {
		return mapError(err, "failed to delete holiday")
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = r.GetHoliday(ctx, id)
	return err
}

func (r *repo) IsHoliday(ctx context.Context, projectID, date string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM holidays WHERE project_id = $1 AND date = $2 AND status = 'active')`,
		projectID, date).Scan(&exists)
	if err != nil {
		return false, mapError(err, "failed to check holiday")
	}
	return exists, nil
}
