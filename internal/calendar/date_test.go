package calendar

import (
	"testing"
	"time"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{name: "abbreviations", input: "sat,sun", want: []time.Weekday{time.Saturday, time.Sunday}},
		{name: "full names mixed case", input: "Monday, FRIDAY", want: []time.Weekday{time.Monday, time.Friday}},
		{name: "numbers", input: "0,6", want: []time.Weekday{time.Sunday, time.Saturday}},
		{name: "invalid name", input: "sat,funday", wantErr: true},
		{name: "number out of range", input: "7", wantErr: true},
		{name: "empty", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if Format(d) != "2024-02-29" {
		t.Errorf("Format(ParseDate()) = %s", Format(d))
	}

	if _, err := ParseDate("2023-02-29"); err == nil {
		t.Error("ParseDate() accepted a non-existent date")
	}
	if _, err := ParseDate("01/02/2024"); err == nil {
		t.Error("ParseDate() accepted a non-ISO date")
	}
}

func TestAddDays(t *testing.T) {
	start := MustParseDate("2024-12-30")
	if got := Format(AddDays(start, 3)); got != "2025-01-02" {
		t.Errorf("AddDays() across year end = %s, want 2025-01-02", got)
	}
	if got := Format(Next(MustParseDate("2024-02-28"))); got != "2024-02-29" {
		t.Errorf("Next() in leap year = %s, want 2024-02-29", got)
	}
	if got := DaysBetween(MustParseDate("2024-01-01"), MustParseDate("2025-01-01")); got != 366 {
		t.Errorf("DaysBetween() over leap year = %d, want 366", got)
	}
}

func TestNormalize(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	got := Normalize(time.Date(2024, 3, 10, 23, 30, 0, 0, loc))
	if Format(got) != "2024-03-10" || got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("Normalize() = %v, want 2024-03-10 00:00 UTC", got)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(MustParseDate("2024-02-14"))
	if Format(first) != "2024-02-01" || Format(last) != "2024-02-29" {
		t.Errorf("MonthBounds() = %s..%s, want 2024-02-01..2024-02-29", Format(first), Format(last))
	}

	m, err := ParseMonth("2024-01")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if Format(m) != "2024-01-01" {
		t.Errorf("ParseMonth() = %s", Format(m))
	}
	if _, err := ParseMonth("January"); err == nil {
		t.Error("ParseMonth() accepted an invalid month")
	}
}

func TestFormatWeekdays(t *testing.T) {
	if got := FormatWeekdays([]time.Weekday{time.Saturday, time.Sunday}); got != "Sat,Sun" {
		t.Errorf("FormatWeekdays() = %q", got)
	}
}
