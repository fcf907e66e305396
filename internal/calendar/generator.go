package calendar

import (
	"time"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

// Mode selects how a Request expands into dates
type Mode string

const (
	ModeRecurrent Mode = "recurrent"
	ModeSpecific  Mode = "specific"
	ModeRange     Mode = "range"
)

// Request describes one holiday declaration before it is expanded into dates.
// Start and End are inclusive. Date is only read in specific mode, Weekdays only
// in recurrent mode. Waivable and Notes apply to every generated date.
type Request struct {
	Mode     Mode
	Start    time.Time
	End      time.Time
	Date     time.Time
	Weekdays []time.Weekday
	Waivable bool
	Notes    string
}

// Validate rejects requests that would silently produce no dates.
func (r Request) Validate() error {
	switch r.Mode {
	case ModeSpecific:
		if r.Date.IsZero() {
			return apperrors.Validationf("a date is required")
		}
	case ModeRecurrent, ModeRange:
		if r.Start.IsZero() || r.End.IsZero() {
			return apperrors.Validationf("start and end dates are required")
		}
		if Normalize(r.Start).After(Normalize(r.End)) {
			return apperrors.Validationf("start date %s is after end date %s", Format(r.Start), Format(r.End))
		}
		if r.Mode == ModeRecurrent {
			if len(r.Weekdays) == 0 {
				return apperrors.Validationf("at least one weekday is required for a recurrent holiday")
			}
			for _, wd := range r.Weekdays {
				if wd < time.Sunday || wd > time.Saturday {
					return apperrors.Validationf("invalid weekday: %d", wd)
				}
			}
		}
	default:
		return apperrors.Validationf("unknown holiday mode %q", r.Mode)
	}
	return nil
}

// Kind is the provenance stored on every holiday the request creates. Range
// declarations are rule-generated and therefore recorded as recurrent.
func (r Request) Kind() models.HolidayKind {
	if r.Mode == ModeSpecific {
		return models.HolidayKindSpecific
	}
	return models.HolidayKindRecurrent
}

// Expand validates the request and returns its dates in ascending order without duplicates.
func Expand(r Request) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	switch r.Mode {
	case ModeSpecific:
		return Specific(r.Date), nil
	case ModeRange:
		return Range(r.Start, r.End), nil
	default:
		return Recurrent(r.Start, r.End, r.Weekdays), nil
	}
}

// Recurrent returns every day in [start, end] whose weekday is in the set.
// An inverted range yields no dates.
func Recurrent(start, end time.Time, weekdays []time.Weekday) []time.Time {
	var mask [7]bool
	for _, wd := range weekdays {
		if wd >= time.Sunday && wd <= time.Saturday {
			mask[wd] = true
		}
	}

	start, end = Normalize(start), Normalize(end)
	var dates []time.Time
	for d := start; !d.After(end); d = Next(d) {
		if mask[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// Range returns every day in [start, end].
func Range(start, end time.Time) []time.Time {
	return Recurrent(start, end, []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
	})
}

// Specific returns the single date.
func Specific(d time.Time) []time.Time {
	return []time.Time{Normalize(d)}
}
