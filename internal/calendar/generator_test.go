package calendar

import (
	"testing"
	"time"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

func formatAll(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = Format(d)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpand_RecurrentWeekend(t *testing.T) {
	// 2024-01-01 is a Monday; the 14-day range holds two full weekends.
	req := Request{
		Mode:     ModeRecurrent,
		Start:    MustParseDate("2024-01-01"),
		End:      MustParseDate("2024-01-14"),
		Weekdays: []time.Weekday{time.Saturday, time.Sunday},
	}

	dates, err := Expand(req)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{"2024-01-06", "2024-01-07", "2024-01-13", "2024-01-14"}
	if got := formatAll(dates); !equalStrings(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_DuplicateWeekdaysDoNotDuplicateDates(t *testing.T) {
	req := Request{
		Mode:     ModeRecurrent,
		Start:    MustParseDate("2024-01-01"),
		End:      MustParseDate("2024-01-07"),
		Weekdays: []time.Weekday{time.Sunday, time.Sunday, time.Sunday},
	}

	dates, err := Expand(req)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got := formatAll(dates); !equalStrings(got, []string{"2024-01-07"}) {
		t.Errorf("Expand() = %v, want [2024-01-07]", got)
	}
}

func TestExpand_MultiYearRange(t *testing.T) {
	req := Request{
		Mode:     ModeRecurrent,
		Start:    MustParseDate("2023-01-01"),
		End:      MustParseDate("2025-12-31"),
		Weekdays: []time.Weekday{time.Monday},
	}

	dates, err := Expand(req)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// 2023: 52 Mondays, 2024: 53 Mondays (leap year starting Monday), 2025: 52 Mondays.
	if len(dates) != 157 {
		t.Errorf("len(Expand()) = %d, want 157", len(dates))
	}
	for i, d := range dates {
		if d.Weekday() != time.Monday {
			t.Fatalf("date %s is a %s", Format(d), d.Weekday())
		}
		if d.Hour() != 0 || d.Location() != time.UTC {
			t.Fatalf("date %v is not a UTC midnight", d)
		}
		if i > 0 && DaysBetween(dates[i-1], d) != 7 {
			t.Fatalf("gap between %s and %s is not a week", Format(dates[i-1]), Format(d))
		}
	}
}

func TestExpand_Range(t *testing.T) {
	req := Request{
		Mode:  ModeRange,
		Start: MustParseDate("2024-02-27"),
		End:   MustParseDate("2024-03-02"),
	}

	dates, err := Expand(req)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if got := formatAll(dates); !equalStrings(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
	if req.Kind() != models.HolidayKindRecurrent {
		t.Errorf("Kind() = %s, want recurrent", req.Kind())
	}
}

func TestExpand_SingleDayRange(t *testing.T) {
	d := MustParseDate("2024-05-01")
	dates, err := Expand(Request{Mode: ModeRange, Start: d, End: d})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got := formatAll(dates); !equalStrings(got, []string{"2024-05-01"}) {
		t.Errorf("Expand() = %v", got)
	}
}

func TestExpand_Specific(t *testing.T) {
	req := Request{Mode: ModeSpecific, Date: time.Date(2024, 12, 25, 15, 30, 0, 0, time.UTC)}

	dates, err := Expand(req)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got := formatAll(dates); !equalStrings(got, []string{"2024-12-25"}) {
		t.Errorf("Expand() = %v, want [2024-12-25]", got)
	}
	if !dates[0].Equal(MustParseDate("2024-12-25")) {
		t.Errorf("time of day was not dropped: %v", dates[0])
	}
	if req.Kind() != models.HolidayKindSpecific {
		t.Errorf("Kind() = %s, want specific", req.Kind())
	}
}

func TestExpand_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "inverted recurrent range",
			req: Request{Mode: ModeRecurrent, Start: MustParseDate("2024-02-01"), End: MustParseDate("2024-01-01"),
				Weekdays: []time.Weekday{time.Saturday}},
		},
		{
			name: "inverted range",
			req:  Request{Mode: ModeRange, Start: MustParseDate("2024-02-01"), End: MustParseDate("2024-01-01")},
		},
		{
			name: "empty weekday set",
			req:  Request{Mode: ModeRecurrent, Start: MustParseDate("2024-01-01"), End: MustParseDate("2024-01-31")},
		},
		{
			name: "weekday out of range",
			req: Request{Mode: ModeRecurrent, Start: MustParseDate("2024-01-01"), End: MustParseDate("2024-01-31"),
				Weekdays: []time.Weekday{time.Weekday(9)}},
		},
		{
			name: "missing end",
			req:  Request{Mode: ModeRange, Start: MustParseDate("2024-01-01")},
		},
		{
			name: "missing specific date",
			req:  Request{Mode: ModeSpecific},
		},
		{
			name: "unknown mode",
			req:  Request{Mode: "monthly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := Expand(tt.req)
			if err == nil {
				t.Fatalf("Expand() = %v, want validation error", formatAll(dates))
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("Expand() error = %v, want validation error", err)
			}
		})
	}
}

func TestRecurrent_InvertedRangeIsEmpty(t *testing.T) {
	dates := Recurrent(MustParseDate("2024-01-10"), MustParseDate("2024-01-01"), []time.Weekday{time.Monday})
	if len(dates) != 0 {
		t.Errorf("Recurrent() with start after end = %v, want empty", formatAll(dates))
	}
}
