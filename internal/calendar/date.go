// Package calendar holds every piece of calendar arithmetic used by projcal.
//
// Dates are calendar days without a time of day or timezone. Inside this package
// they are time.Time values at UTC midnight; outside it they travel as
// YYYY-MM-DD strings.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/projcal/internal/constants"
	apperrors "github.com/julianstephens/projcal/internal/errors"
)

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.Validationf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Normalize drops the time of day and location, keeping the calendar day as seen in t's location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders a date as YYYY-MM-DD.
func Format(d time.Time) string {
	return d.Format(constants.DateFormat)
}

// AddDays moves a date by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(0, 0, n)
}

// Next returns the following calendar day.
func Next(d time.Time) time.Time {
	return AddDays(d, 1)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, apperrors.Validationf("weekday list is empty")
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}

	return weekdays, nil
}

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a weekday name, abbreviation or number (0=Sunday, 6=Saturday).
func ParseWeekday(s string) (time.Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, apperrors.Validationf("invalid weekday: %s", s)
}

// FormatWeekdays renders a weekday set using three-letter abbreviations.
func FormatWeekdays(weekdays []time.Weekday) string {
	var days []string
	for _, wd := range weekdays {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}

// MonthBounds returns the first and last day of the month containing d.
func MonthBounds(d time.Time) (time.Time, time.Time) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	m, err := time.Parse(constants.MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid month %q (expected YYYY-MM)", apperrors.ErrValidation, s)
	}
	return m, nil
}
