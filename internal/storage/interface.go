package storage

import (
	"context"

	"github.com/julianstephens/projcal/internal/models"
)

// Repository is the set of persistence primitives shared by the raw connection
// and by a transaction. Dates are YYYY-MM-DD strings.
type Repository interface {
	// Projects
	AddProject(ctx context.Context, project models.Project) error
	GetProject(ctx context.Context, id string) (models.Project, error)
	GetAllProjects(ctx context.Context) ([]models.Project, error)

	// Holidays
	AddHoliday(ctx context.Context, holiday models.Holiday) error
	GetHoliday(ctx context.Context, id string) (models.Holiday, error)
	// FindHolidayByDate returns the row for (projectID, date), preferring the
	// active one and otherwise the most recently updated deleted one.
	FindHolidayByDate(ctx context.Context, projectID, date string) (models.Holiday, error)
	GetHolidays(ctx context.Context, projectID string, includeDeleted bool) ([]models.Holiday, error)
	GetActiveHolidaysBetween(ctx context.Context, projectID, from, to string) ([]models.Holiday, error)
	UpdateHoliday(ctx context.Context, holiday models.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	IsHoliday(ctx context.Context, projectID, date string) (bool, error)

	// Tasks
	AddTask(ctx context.Context, task models.Task) error
	GetTask(ctx context.Context, id string) (models.Task, error)
	GetTasks(ctx context.Context, projectID string) ([]models.Task, error)
	// GetOpenTasksBetween returns the project's non-terminal tasks whose
	// [start, end] span touches [from, to]. A missing end counts as the start.
	GetOpenTasksBetween(ctx context.Context, projectID, from, to string) ([]models.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error
	UpdateTaskDates(ctx context.Context, id, startDate, endDate string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error

	Repository

	// WithTx runs fn inside one transaction. The transaction commits only when
	// fn returns nil; any error rolls every write back and is returned as is.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Migrate applies pending embedded migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)

	// SchemaVersion reports the applied and the latest embedded migration version.
	SchemaVersion() (current int, latest int, err error)

	// Utils
	GetConfigPath() string
}
