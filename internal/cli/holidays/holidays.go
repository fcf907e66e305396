// Package holidays holds the holiday subcommands.
package holidays

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/cli"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/models"
)

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

type ListCmd struct {
	Project string `arg:"" help:"Project ID."`
	All     bool   `help:"Include deleted holidays."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Service.ListHolidays(ctx.Ctx, c.Project, c.All)
	if err != nil {
		return err
	}
	cli.PrintHolidays(os.Stdout, list)
	return nil
}

type EditCmd struct {
	ID         string `arg:"" help:"Holiday ID."`
	Kind       string `help:"New kind (recurrent or specific)."`
	Waivable   string `help:"Set the waivable flag (true or false)."`
	Notes      string `help:"Replace the notes."`
	ClearNotes bool   `help:"Remove the notes."`
	Status     string `help:"New status (active or deleted)."`
}

func (c *EditCmd) update() (models.HolidayUpdate, error) {
	var u models.HolidayUpdate
	if c.Kind != "" {
		k := models.HolidayKind(c.Kind)
		u.Kind = &k
	}
	if c.Status != "" {
		s := models.HolidayStatus(c.Status)
		u.Status = &s
	}
	if c.Waivable != "" {
		w, err := strconv.ParseBool(c.Waivable)
		if err != nil {
			return u, apperrors.Validationf("invalid waivable value %q", c.Waivable)
		}
		u.Waivable = &w
	}
	switch {
	case c.ClearNotes && c.Notes != "":
		return u, apperrors.Validationf("--notes and --clear-notes are mutually exclusive")
	case c.ClearNotes:
		empty := ""
		u.Notes = &empty
	case c.Notes != "":
		notes := c.Notes
		u.Notes = &notes
	}
	if u.Kind == nil && u.Status == nil && u.Waivable == nil && u.Notes == nil {
		return u, apperrors.Validationf("nothing to update")
	}
	return u, nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	u, err := c.update()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	h, err := ctx.Service.UpdateHoliday(ctx.Ctx, c.ID, u)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated holiday %s (%s, %s, %s)\n", h.ID, h.Date, h.Kind, h.Status)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Holiday ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()
	if err := ctx.Service.DeleteHoliday(ctx.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted holiday %s\n", c.ID)
	return nil
}

type CheckCmd struct {
	Project string `arg:"" help:"Project ID."`
	Date    string `arg:"" help:"Date to check (YYYY-MM-DD)."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	date, err := calendar.ParseDate(c.Date)
	if err != nil {
		return err
	}
	ok, err := ctx.Service.IsHoliday(ctx.Ctx, c.Project, date)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("%s (%s) is a holiday\n", calendar.Format(date), date.Weekday())
	} else {
		fmt.Printf("%s (%s) is a working day\n", calendar.Format(date), date.Weekday())
	}
	return nil
}

type ConflictsCmd struct {
	Project string `arg:"" help:"Project ID."`
}

func (c *ConflictsCmd) Run(ctx *cli.Context) error {
	conflicts, err := ctx.Service.ActiveConflicts(ctx.Ctx, c.Project)
	if err != nil {
		return err
	}
	cli.PrintConflicts(os.Stdout, conflicts)
	return nil
}
