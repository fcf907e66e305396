package api

import (
	"time"

	"github.com/julianstephens/projcal/internal/calendar"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

type recurrentRequest struct {
	Weekdays  []string `json:"weekdays" validate:"required,min=1,dive,required"`
	StartDate string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Waivable  bool     `json:"waivable"`
	Notes     string   `json:"notes" validate:"max=500"`
}

func (r recurrentRequest) toRequest() (calendar.Request, error) {
	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, w := range r.Weekdays {
		wd, err := calendar.ParseWeekday(w)
		if err != nil {
			return calendar.Request{}, err
		}
		weekdays = append(weekdays, wd)
	}
	start, end, err := parseSpan(r.StartDate, r.EndDate)
	if err != nil {
		return calendar.Request{}, err
	}
	return calendar.Request{
		Mode:     calendar.ModeRecurrent,
		Start:    start,
		End:      end,
		Weekdays: weekdays,
		Waivable: r.Waivable,
		Notes:    r.Notes,
	}, nil
}

type specificRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Waivable bool   `json:"waivable"`
	Notes    string `json:"notes" validate:"max=500"`
}

func (r specificRequest) toRequest() (calendar.Request, error) {
	d, err := calendar.ParseDate(r.Date)
	if err != nil {
		return calendar.Request{}, err
	}
	return calendar.Request{Mode: calendar.ModeSpecific, Date: d, Waivable: r.Waivable, Notes: r.Notes}, nil
}

type rangeRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Waivable  bool   `json:"waivable"`
	Notes     string `json:"notes" validate:"max=500"`
}

func (r rangeRequest) toRequest() (calendar.Request, error) {
	start, end, err := parseSpan(r.StartDate, r.EndDate)
	if err != nil {
		return calendar.Request{}, err
	}
	return calendar.Request{Mode: calendar.ModeRange, Start: start, End: end, Waivable: r.Waivable, Notes: r.Notes}, nil
}

func parseSpan(start, end string) (time.Time, time.Time, error) {
	s, err := calendar.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

type updateHolidayRequest struct {
	Kind     *string `json:"kind" validate:"omitempty,oneof=recurrent specific"`
	Waivable *bool   `json:"waivable"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
	Status   *string `json:"status" validate:"omitempty,oneof=active deleted"`
}

func (r updateHolidayRequest) toUpdate() (models.HolidayUpdate, error) {
	var u models.HolidayUpdate
	if r.Kind == nil && r.Waivable == nil && r.Notes == nil && r.Status == nil {
		return u, apperrors.Validationf("nothing to update")
	}
	if r.Kind != nil {
		k := models.HolidayKind(*r.Kind)
		u.Kind = &k
	}
	if r.Status != nil {
		s := models.HolidayStatus(*r.Status)
		u.Status = &s
	}
	u.Waivable = r.Waivable
	u.Notes = r.Notes
	return u, nil
}

type moveRequest struct {
	TaskIDs     []string `json:"task_ids" validate:"required,min=1,dive,required"`
	WorkingDays int      `json:"working_days" validate:"gte=0"`
}

type holidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	WeekdayName string `json:"weekday_name"`
	Kind        string `json:"kind"`
	Waivable    bool   `json:"waivable"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
	UpdatedAt   string `json:"updated_at"`
}

func toHolidayResponse(h models.Holiday) holidayResponse {
	return holidayResponse{
		ID:          h.ID,
		Date:        h.Date,
		WeekdayName: h.WeekdayName(),
		Kind:        string(h.Kind),
		Waivable:    h.Waivable,
		Notes:       h.Notes,
		Status:      string(h.Status),
		UpdatedAt:   h.UpdatedAt,
	}
}
