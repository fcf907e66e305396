package models

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusDeleted    TaskStatus = "deleted"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusRejected   TaskStatus = "rejected"
	TaskStatusApproved   TaskStatus = "approved"
)

// TerminalTaskStatuses never take part in conflict detection.
var TerminalTaskStatuses = []TaskStatus{
	TaskStatusCancelled,
	TaskStatusDeleted,
	TaskStatusCompleted,
	TaskStatusRejected,
	TaskStatusApproved,
}

func (s TaskStatus) IsTerminal() bool {
	for _, t := range TerminalTaskStatuses {
		if s == t {
			return true
		}
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusPending, TaskStatusInProgress, TaskStatusInReview:
		return true
	}
	return s.IsTerminal()
}

type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Name      string     `json:"name"`
	StartDate string     `json:"start_date"`         // YYYY-MM-DD format
	EndDate   string     `json:"end_date,omitempty"` // YYYY-MM-DD format, empty when open-ended
	Status    TaskStatus `json:"status"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// EffectiveEnd returns the end date, falling back to the start date when none is set.
func (t Task) EffectiveEnd() string {
	if t.EndDate == "" {
		return t.StartDate
	}
	return t.EndDate
}

// Summary returns the reduced view attached to conflict reports.
func (t Task) Summary() TaskSummary {
	return TaskSummary{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    t.Status,
	}
}

type TaskSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date,omitempty"`
	Status    TaskStatus `json:"status"`
}
