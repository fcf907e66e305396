// Package holidays coordinates holiday batches, conflict reports and task moves.
// Every write entry point runs inside one transaction of the underlying store.
package holidays

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/conflict"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/models"
	"github.com/julianstephens/projcal/internal/reschedule"
	"github.com/julianstephens/projcal/internal/storage"
)

// Service is the entry point shared by the CLI, the TUI and the HTTP API.
type Service struct {
	store storage.Provider
}

// NewService creates a new Service over store
func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// RunBatch expands req and declares every date for the project. All dates are
// committed together or not at all. Conflicts are reported, never resolved.
func (s *Service) RunBatch(ctx context.Context, projectID string, req calendar.Request) (models.BatchResult, error) {
	dates, err := calendar.Expand(req)
	if err != nil {
		return models.BatchResult{}, err
	}

	logger.Info("Starting holiday batch", "project", projectID, "mode", req.Mode, "dates", len(dates))

	var result models.BatchResult
	err = s.store.WithTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.GetProject(ctx, projectID); err != nil {
			return err
		}

		result = models.BatchResult{
			Conflicts: []models.DateConflict{},
			Entries:   make([]models.BatchEntry, 0, len(dates)),
		}
		for _, d := range dates {
			if err := ctx.Err(); err != nil {
				return err
			}
			up, err := storage.UpsertHoliday(ctx, repo, models.Holiday{
				ProjectID: projectID,
				Date:      calendar.Format(d),
				Kind:      req.Kind(),
				Waivable:  req.Waivable,
				Notes:     req.Notes,
			})
			if err != nil {
				return err
			}
			if up.Action == models.UpsertCreated {
				result.Created++
			} else {
				result.Updated++
			}
			result.Entries = append(result.Entries, models.BatchEntry{
				Date:      calendar.Format(d),
				Action:    up.Action,
				HolidayID: up.HolidayID,
			})
		}

		found, err := conflict.New(repo).Detect(ctx, projectID, dates)
		if err != nil {
			return err
		}
		for i := range result.Entries {
			if tasks, ok := found[result.Entries[i].Date]; ok {
				result.Entries[i].Tasks = tasks
				result.Conflicts = append(result.Conflicts, models.DateConflict{Date: result.Entries[i].Date, Tasks: tasks})
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Holiday batch rolled back", "project", projectID, "mode", req.Mode, "error", err)
		return models.BatchResult{}, err
	}

	logger.Info("Holiday batch committed", "project", projectID, "created", result.Created,
		"updated", result.Updated, "conflicts", len(result.Conflicts))
	return result, nil
}

// CreateRecurrent declares every day in [start, end] falling on one of weekdays.
func (s *Service) CreateRecurrent(ctx context.Context, projectID string, weekdays []time.Weekday, start, end time.Time, waivable bool, notes string) (models.BatchResult, error) {
	return s.RunBatch(ctx, projectID, calendar.Request{
		Mode:     calendar.ModeRecurrent,
		Start:    start,
		End:      end,
		Weekdays: weekdays,
		Waivable: waivable,
		Notes:    notes,
	})
}

// CreateSpecific declares a single date.
func (s *Service) CreateSpecific(ctx context.Context, projectID string, date time.Time, waivable bool, notes string) (models.BatchResult, error) {
	return s.RunBatch(ctx, projectID, calendar.Request{
		Mode:     calendar.ModeSpecific,
		Date:     date,
		Waivable: waivable,
		Notes:    notes,
	})
}

// CreateRange declares every day in [start, end].
func (s *Service) CreateRange(ctx context.Context, projectID string, start, end time.Time, waivable bool, notes string) (models.BatchResult, error) {
	return s.RunBatch(ctx, projectID, calendar.Request{
		Mode:     calendar.ModeRange,
		Start:    start,
		End:      end,
		Waivable: waivable,
		Notes:    notes,
	})
}

func (s *Service) ListHolidays(ctx context.Context, projectID string, includeDeleted bool) ([]models.Holiday, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.GetHolidays(ctx, projectID, includeDeleted)
}

// UpdateHoliday edits a holiday by id without the by-date lookup. Setting the
// status back to active fails with a conflict when another active row holds the date.
func (s *Service) UpdateHoliday(ctx context.Context, id string, update models.HolidayUpdate) (models.Holiday, error) {
	if update.Kind != nil && !update.Kind.Valid() {
		return models.Holiday{}, apperrors.Validationf("invalid holiday kind %q", *update.Kind)
	}
	if update.Status != nil && !update.Status.Valid() {
		return models.Holiday{}, apperrors.Validationf("invalid holiday status %q", *update.Status)
	}

	var updated models.Holiday
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		h, err := repo.GetHoliday(ctx, id)
		if err != nil {
			return err
		}
		update.Apply(&h)
		h.UpdatedAt = storage.Timestamp()
		if err := repo.UpdateHoliday(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return models.Holiday{}, err
	}
	logger.Info("Holiday updated", "id", id, "status", updated.Status)
	return updated, nil
}

// DeleteHoliday soft-deletes a holiday.
func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.store.DeleteHoliday(ctx, id); err != nil {
		return err
	}
	logger.Info("Holiday deleted", "id", id)
	return nil
}

func (s *Service) IsHoliday(ctx context.Context, projectID string, date time.Time) (bool, error) {
	return s.store.IsHoliday(ctx, projectID, calendar.Format(date))
}

// MoveTasks shifts the listed tasks forward by n working days. Either every
// task moves or none does.
func (s *Service) MoveTasks(ctx context.Context, projectID string, taskIDs []string, n int) (models.MoveResult, error) {
	var result models.MoveResult
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.GetProject(ctx, projectID); err != nil {
			return err
		}
		var err error
		result, err = reschedule.New(repo).MoveTasksForward(ctx, projectID, taskIDs, n)
		return err
	})
	if err != nil {
		logger.Error("Task move rolled back", "project", projectID, "tasks", len(taskIDs), "error", err)
		return models.MoveResult{}, err
	}
	logger.Info("Tasks moved", "project", projectID, "moved", result.MovedCount, "days", n)
	return result, nil
}

// ActiveConflicts reports the open tasks colliding with any active holiday of
// the project, ascending by date.
func (s *Service) ActiveConflicts(ctx context.Context, projectID string) ([]models.DateConflict, error) {
	holidays, err := s.ListHolidays(ctx, projectID, false)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		d, err := calendar.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %s has a malformed date: %w", h.ID, err)
		}
		dates = append(dates, d)
	}
	found, err := conflict.New(s.store).Detect(ctx, projectID, dates)
	if err != nil {
		return nil, err
	}
	return found.Conflicts(), nil
}

// AddProject registers a project.
func (s *Service) AddProject(ctx context.Context, name string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, apperrors.Validationf("project name is required")
	}
	p := storage.NewProject(name)
	if err := s.store.AddProject(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// AddTask schedules a task. end may be empty; status defaults to open.
func (s *Service) AddTask(ctx context.Context, projectID, name, start, end string, status models.TaskStatus) (models.Task, error) {
	if strings.TrimSpace(name) == "" {
		return models.Task{}, apperrors.Validationf("task name is required")
	}
	startDate, err := calendar.ParseDate(start)
	if err != nil {
		return models.Task{}, err
	}
	if end != "" {
		endDate, err := calendar.ParseDate(end)
		if err != nil {
			return models.Task{}, err
		}
		if endDate.Before(startDate) {
			return models.Task{}, apperrors.Validationf("task end %s is before its start %s", end, start)
		}
		end = calendar.Format(endDate)
	}
	if status != "" && !status.Valid() {
		return models.Task{}, apperrors.Validationf("invalid task status %q", status)
	}
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return models.Task{}, err
	}

	t := storage.NewTask(projectID, strings.TrimSpace(name), calendar.Format(startDate), end, status)
	if err := s.store.AddTask(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// SetTaskStatus changes a task's status. Terminal statuses drop the task out of conflict detection.
func (s *Service) SetTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	if !status.Valid() {
		return apperrors.Validationf("invalid task status %q", status)
	}
	return s.store.UpdateTaskStatus(ctx, id, status)
}

func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.GetAllProjects(ctx)
}

func (s *Service) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.GetTasks(ctx, projectID)
}
