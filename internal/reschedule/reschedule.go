// Package reschedule shifts tasks forward by working days, skipping holidays.
package reschedule

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/constants"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/models"
)

// Store is the subset of the repository the rescheduler reads and writes.
type Store interface {
	IsHoliday(ctx context.Context, projectID, date string) (bool, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	UpdateTaskDates(ctx context.Context, id, startDate, endDate string) error
}

type Rescheduler struct {
	store Store
}

func New(store Store) *Rescheduler {
	return &Rescheduler{store: store}
}

// walker answers isHoliday once per date for the lifetime of one request.
type walker struct {
	store     Store
	projectID string
	holidays  map[string]bool
}

func (r *Rescheduler) newWalker(projectID string) *walker {
	return &walker{store: r.store, projectID: projectID, holidays: map[string]bool{}}
}

func (w *walker) isHoliday(ctx context.Context, date string) (bool, error) {
	if v, ok := w.holidays[date]; ok {
		return v, nil
	}
	v, err := w.store.IsHoliday(ctx, w.projectID, date)
	if err != nil {
		return false, err
	}
	w.holidays[date] = v
	return v, nil
}

func (w *walker) addWorkingDays(ctx context.Context, from time.Time, n int) (time.Time, error) {
	if n < 0 {
		return time.Time{}, apperrors.Validationf("working days must not be negative, got %d", n)
	}

	day := calendar.Normalize(from)
	consumed, skipped := 0, 0
	for consumed < n {
		if err := ctx.Err(); err != nil {
			return time.Time{}, err
		}

		day = calendar.Next(day)
		holiday, err := w.isHoliday(ctx, calendar.Format(day))
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to check %s: %w", calendar.Format(day), err)
		}
		if holiday {
			skipped++
			if skipped >= constants.MaxConsecutiveHolidays {
				return time.Time{}, apperrors.Validationf("no working day within %d days after %s", skipped, calendar.Format(day.AddDate(0, 0, -skipped)))
			}
			continue
		}
		skipped = 0
		consumed++
	}
	return day, nil
}

// AddWorkingDays walks forward from one calendar day at a time and returns the
// day on which the n-th non-holiday is reached. n = 0 returns from unchanged.
func (r *Rescheduler) AddWorkingDays(ctx context.Context, projectID string, from time.Time, n int) (time.Time, error) {
	return r.newWalker(projectID).addWorkingDays(ctx, from, n)
}

func (w *walker) shift(ctx context.Context, date string, n int) (string, error) {
	if date == "" {
		return "", nil
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return "", err
	}
	moved, err := w.addWorkingDays(ctx, d, n)
	if err != nil {
		return "", err
	}
	return calendar.Format(moved), nil
}

// MoveTasksForward shifts the start and the end of every listed task by n working
// days. Start and end are walked independently, so a holiday lying strictly inside
// the old span can change the task's length. Every id must belong to projectID;
// otherwise nothing is written. Callers provide the transaction.
func (r *Rescheduler) MoveTasksForward(ctx context.Context, projectID string, taskIDs []string, n int) (models.MoveResult, error) {
	if n < 0 {
		return models.MoveResult{}, apperrors.Validationf("working days must not be negative, got %d", n)
	}

	ids := dedupe(taskIDs)
	if len(ids) == 0 {
		return models.MoveResult{}, apperrors.Validationf("no task ids given")
	}

	tasks := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		task, err := r.store.GetTask(ctx, id)
		if err != nil {
			return models.MoveResult{}, err
		}
		if task.ProjectID != projectID {
			return models.MoveResult{}, apperrors.NotFoundf("task %s in project %s", id, projectID)
		}
		tasks = append(tasks, task)
	}

	w := r.newWalker(projectID)
	result := models.MoveResult{Tasks: make([]models.MovedTask, 0, len(tasks))}
	for _, task := range tasks {
		newStart, err := w.shift(ctx, task.StartDate, n)
		if err != nil {
			return models.MoveResult{}, fmt.Errorf("task %s: %w", task.ID, err)
		}
		newEnd, err := w.shift(ctx, task.EndDate, n)
		if err != nil {
			return models.MoveResult{}, fmt.Errorf("task %s: %w", task.ID, err)
		}

		if newStart != task.StartDate || newEnd != task.EndDate {
			if err := r.store.UpdateTaskDates(ctx, task.ID, newStart, newEnd); err != nil {
				return models.MoveResult{}, fmt.Errorf("failed to move task %s: %w", task.ID, err)
			}
		}
		logger.Debug("Task moved", "task", task.ID, "from", task.StartDate, "to", newStart)

		result.Tasks = append(result.Tasks, models.MovedTask{
			ID:       task.ID,
			OldStart: task.StartDate,
			OldEnd:   task.EndDate,
			NewStart: newStart,
			NewEnd:   newEnd,
		})
	}
	result.MovedCount = len(result.Tasks)
	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
