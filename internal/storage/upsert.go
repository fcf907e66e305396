package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

// Now is the clock used for created_at and updated_at.
var Now = func() time.Time { return time.Now().UTC() }

// Timestamp renders the current time the way every table stores it.
func Timestamp() string {
	return Now().Format(time.RFC3339)
}

// UpsertHoliday declares holiday.Date for holiday.ProjectID. An existing row for
// that date, active or soft-deleted, is updated and reactivated; otherwise a new
// active row is inserted. ID, Status and timestamps on the argument are ignored.
func UpsertHoliday(ctx context.Context, repo Repository, holiday models.Holiday) (models.UpsertResult, error) {
	existing, err := repo.FindHolidayByDate(ctx, holiday.ProjectID, holiday.Date)
	switch {
	case err == nil:
		existing.Kind = holiday.Kind
		existing.Waivable = holiday.Waivable
		existing.Notes = holiday.Notes
		existing.Status = models.HolidayStatusActive
		existing.UpdatedAt = Timestamp()
		if err := repo.UpdateHoliday(ctx, existing); err != nil {
			return models.UpsertResult{}, fmt.Errorf("failed to update holiday %s: %w", holiday.Date, err)
		}
		return models.UpsertResult{Action: models.UpsertUpdated, HolidayID: existing.ID}, nil

	case apperrors.IsNotFound(err):
		now := Timestamp()
		holiday.ID = uuid.New().String()
		holiday.Status = models.HolidayStatusActive
		holiday.CreatedAt = now
		holiday.UpdatedAt = now
		if err := repo.AddHoliday(ctx, holiday); err != nil {
			return models.UpsertResult{}, fmt.Errorf("failed to create holiday %s: %w", holiday.Date, err)
		}
		return models.UpsertResult{Action: models.UpsertCreated, HolidayID: holiday.ID}, nil

	default:
		return models.UpsertResult{}, fmt.Errorf("failed to look up holiday %s: %w", holiday.Date, err)
	}
}

// NewProject fills in the store-assigned fields of a project.
func NewProject(name string) models.Project {
	return models.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: Timestamp(),
	}
}

// NewTask fills in the store-assigned fields of a task.
func NewTask(projectID, name, startDate, endDate string, status models.TaskStatus) models.Task {
	now := Timestamp()
	if status == "" {
		status = models.TaskStatusOpen
	}
	return models.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
