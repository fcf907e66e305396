package system

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/tui"
)

type CalendarCmd struct {
	Project string `arg:"" help:"Project ID."`
	Month   string `help:"Month to open (YYYY-MM), defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	start := time.Now().UTC()
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		start = m
	}
	if _, err := ctx.Service.ListHolidays(ctx.Ctx, c.Project, false); err != nil {
		return err
	}

	// Tasks can be moved from the viewer.
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Ctx, ctx.Service, c.Project, start), tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("calendar viewer failed: %w", err)
	}
	return nil
}
