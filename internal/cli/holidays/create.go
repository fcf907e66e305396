package holidays

import (
	"os"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/cli"
)

type RecurrentCmd struct {
	Project  string `arg:"" help:"Project ID."`
	Weekdays string `help:"Comma-separated weekdays (e.g. sat,sun or 0,6)." required:""`
	Start    string `help:"First date of the period (YYYY-MM-DD)." required:""`
	End      string `help:"Last date of the period (YYYY-MM-DD)." required:""`
	Waivable bool   `help:"Mark the holidays as waivable."`
	Notes    string `help:"Free-form notes."`
}

func (c *RecurrentCmd) Run(ctx *cli.Context) error {
	weekdays, err := calendar.ParseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}
	start, end, err := parseSpan(c.Start, c.End)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	result, err := ctx.Service.CreateRecurrent(ctx.Ctx, c.Project, weekdays, start, end, c.Waivable, c.Notes)
	if err != nil {
		return err
	}
	cli.PrintBatch(os.Stdout, result)
	return nil
}

type SpecificCmd struct {
	Project  string `arg:"" help:"Project ID."`
	Date     string `arg:"" help:"Holiday date (YYYY-MM-DD)."`
	Waivable bool   `help:"Mark the holiday as waivable."`
	Notes    string `help:"Free-form notes."`
}

func (c *SpecificCmd) Run(ctx *cli.Context) error {
	date, err := calendar.ParseDate(c.Date)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	result, err := ctx.Service.CreateSpecific(ctx.Ctx, c.Project, date, c.Waivable, c.Notes)
	if err != nil {
		return err
	}
	cli.PrintBatch(os.Stdout, result)
	return nil
}

type RangeCmd struct {
	Project  string `arg:"" help:"Project ID."`
	Start    string `help:"First date of the range (YYYY-MM-DD)." required:""`
	End      string `help:"Last date of the range (YYYY-MM-DD)." required:""`
	Waivable bool   `help:"Mark the holidays as waivable."`
	Notes    string `help:"Free-form notes."`
}

func (c *RangeCmd) Run(ctx *cli.Context) error {
	start, end, err := parseSpan(c.Start, c.End)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	result, err := ctx.Service.CreateRange(ctx.Ctx, c.Project, start, end, c.Waivable, c.Notes)
	if err != nil {
		return err
	}
	cli.PrintBatch(os.Stdout, result)
	return nil
}
