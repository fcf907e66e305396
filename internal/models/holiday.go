package models

import (
	"time"

	"github.com/julianstephens/projcal/internal/constants"
)

type HolidayKind string

const (
	HolidayKindRecurrent HolidayKind = "recurrent"
	HolidayKindSpecific  HolidayKind = "specific"
)

func (k HolidayKind) Valid() bool {
	return k == HolidayKindRecurrent || k == HolidayKindSpecific
}

type HolidayStatus string

const (
	HolidayStatusActive  HolidayStatus = "active"
	HolidayStatusDeleted HolidayStatus = "deleted"
)

func (s HolidayStatus) Valid() bool {
	return s == HolidayStatusActive || s == HolidayStatusDeleted
}

type Holiday struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"project_id"`
	Date      string        `json:"date"` // YYYY-MM-DD format
	Kind      HolidayKind   `json:"kind"`
	Waivable  bool          `json:"waivable"`
	Notes     string        `json:"notes,omitempty"`
	Status    HolidayStatus `json:"status"`
	CreatedAt string        `json:"created_at"` // RFC3339 timestamp
	UpdatedAt string        `json:"updated_at"` // RFC3339 timestamp
}

// WeekdayName returns the English weekday of the holiday date, or "" if the date is malformed.
func (h Holiday) WeekdayName() string {
	d, err := time.Parse(constants.DateFormat, h.Date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// IsActive reports whether the holiday counts as a non-working day.
func (h Holiday) IsActive() bool {
	return h.Status == HolidayStatusActive
}

// HolidayUpdate carries the editable fields of a holiday. Nil fields are left untouched.
type HolidayUpdate struct {
	Kind     *HolidayKind
	Waivable *bool
	Notes    *string
	Status   *HolidayStatus
}

// Apply copies the set fields onto h.
func (u HolidayUpdate) Apply(h *Holiday) {
	if u.Kind != nil {
		h.Kind = *u.Kind
	}
	if u.Waivable != nil {
		h.Waivable = *u.Waivable
	}
	if u.Notes != nil {
		h.Notes = *u.Notes
	}
	if u.Status != nil {
		h.Status = *u.Status
	}
}
