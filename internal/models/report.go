package models

type UpsertAction string

const (
	UpsertCreated UpsertAction = "created"
	UpsertUpdated UpsertAction = "updated"
)

// UpsertResult is the outcome of declaring one holiday date.
type UpsertResult struct {
	Action    UpsertAction `json:"action"`
	HolidayID string       `json:"holiday_id"`
}

// DateConflict lists the tasks colliding with one holiday date.
type DateConflict struct {
	Date  string        `json:"date"`
	Tasks []TaskSummary `json:"tasks"`
}

// BatchEntry is the per-date line of a batch report.
type BatchEntry struct {
	Date      string        `json:"date"`
	Action    UpsertAction  `json:"action"`
	HolidayID string        `json:"holiday_id"`
	Tasks     []TaskSummary `json:"tasks,omitempty"`
}

// BatchResult is returned by every holiday creation batch. Entries and Conflicts are in
// ascending date order.
type BatchResult struct {
	Created   int            `json:"created"`
	Updated   int            `json:"updated"`
	Conflicts []DateConflict `json:"conflicts"`
	Entries   []BatchEntry   `json:"entries"`
}

// HasConflicts returns true if any generated date collides with a task
func (r BatchResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type MovedTask struct {
	ID       string `json:"id"`
	OldStart string `json:"old_start"`
	OldEnd   string `json:"old_end,omitempty"`
	NewStart string `json:"new_start"`
	NewEnd   string `json:"new_end,omitempty"`
}

type MoveResult struct {
	MovedCount int         `json:"moved_count"`
	Tasks      []MovedTask `json:"tasks"`
}
