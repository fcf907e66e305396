package models

import "testing"

func TestTaskStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		terminal bool
		valid    bool
	}{
		{TaskStatusOpen, false, true},
		{TaskStatusPending, false, true},
		{TaskStatusInProgress, false, true},
		{TaskStatusInReview, false, true},
		{TaskStatusCancelled, true, true},
		{TaskStatusDeleted, true, true},
		{TaskStatusCompleted, true, true},
		{TaskStatusRejected, true, true},
		{TaskStatusApproved, true, true},
		{TaskStatus("archived"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTask_EffectiveEnd(t *testing.T) {
	open := Task{StartDate: "2024-01-05"}
	if got := open.EffectiveEnd(); got != "2024-01-05" {
		t.Errorf("EffectiveEnd() without end = %s, want start date", got)
	}

	spanning := Task{StartDate: "2024-01-05", EndDate: "2024-01-08"}
	if got := spanning.EffectiveEnd(); got != "2024-01-08" {
		t.Errorf("EffectiveEnd() = %s, want 2024-01-08", got)
	}
}

func TestHoliday_WeekdayName(t *testing.T) {
	h := Holiday{Date: "2024-01-06"}
	if got := h.WeekdayName(); got != "Saturday" {
		t.Errorf("WeekdayName() = %q, want Saturday", got)
	}

	bad := Holiday{Date: "not-a-date"}
	if got := bad.WeekdayName(); got != "" {
		t.Errorf("WeekdayName() for malformed date = %q, want empty", got)
	}
}

func TestHolidayUpdate_Apply(t *testing.T) {
	h := Holiday{Kind: HolidayKindRecurrent, Notes: "weekend", Status: HolidayStatusDeleted}

	notes := "company retreat"
	status := HolidayStatusActive
	HolidayUpdate{Notes: &notes, Status: &status}.Apply(&h)

	if h.Notes != notes {
		t.Errorf("Notes = %q, want %q", h.Notes, notes)
	}
	if h.Status != HolidayStatusActive {
		t.Errorf("Status = %q, want active", h.Status)
	}
	if h.Kind != HolidayKindRecurrent {
		t.Errorf("Kind changed to %q although it was not set", h.Kind)
	}
}
