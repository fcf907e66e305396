// Package conflict finds the tasks that collide with holiday dates.
package conflict

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/models"
)

// TaskFinder is the one range query the detector needs.
type TaskFinder interface {
	GetOpenTasksBetween(ctx context.Context, projectID, from, to string) ([]models.Task, error)
}

// Detector classifies open tasks against candidate holiday dates
type Detector struct {
	tasks TaskFinder
}

// New creates a Detector reading tasks through finder
func New(finder TaskFinder) *Detector {
	return &Detector{tasks: finder}
}

// Result maps a YYYY-MM-DD date to the tasks overlapping it. Dates without
// conflicts are absent.
type Result map[string][]models.TaskSummary

// Dates returns the conflicting dates in ascending order.
func (r Result) Dates() []string {
	dates := make([]string, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Conflicts flattens the result into report entries, ascending by date.
func (r Result) Conflicts() []models.DateConflict {
	out := make([]models.DateConflict, 0, len(r))
	for _, d := range r.Dates() {
		out = append(out, models.DateConflict{Date: d, Tasks: r[d]})
	}
	return out
}

// Detect fetches every open task of the project touching [min(dates), max(dates)]
// in a single query, then buckets each task under every date it overlaps.
func (d *Detector) Detect(ctx context.Context, projectID string, dates []time.Time) (Result, error) {
	result := Result{}
	if len(dates) == 0 {
		return result, nil
	}

	lo, hi := calendar.Normalize(dates[0]), calendar.Normalize(dates[0])
	for _, date := range dates[1:] {
		date = calendar.Normalize(date)
		if date.Before(lo) {
			lo = date
		}
		if date.After(hi) {
			hi = date
		}
	}

	tasks, err := d.tasks.GetOpenTasksBetween(ctx, projectID, calendar.Format(lo), calendar.Format(hi))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks between %s and %s: %w", calendar.Format(lo), calendar.Format(hi), err)
	}
	if len(tasks) == 0 {
		return result, nil
	}

	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		key := calendar.Format(calendar.Normalize(date))
		if seen[key] {
			continue
		}
		seen[key] = true

		for _, task := range tasks {
			if task.Status.IsTerminal() {
				continue
			}
			if Overlaps(task, key) {
				result[key] = append(result[key], task.Summary())
			}
		}
	}
	return result, nil
}

// Overlaps reports whether the task's span touches date: it starts or ends on
// it, or date lies between start and end. A missing end counts as the start.
func Overlaps(task models.Task, date string) bool {
	end := task.EffectiveEnd()
	return task.StartDate == date || end == date || (task.StartDate <= date && date <= end)
}
