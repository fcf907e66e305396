package system

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/models"
)

// ResolveCmd walks through the project's conflicts and moves the chosen tasks.
type ResolveCmd struct {
	Project string `arg:"" help:"Project ID."`
}

type resolveForm struct {
	TaskIDs []string
	Days    string
	Confirm bool
}

func (c *ResolveCmd) Run(ctx *cli.Context) error {
	conflicts, err := ctx.Service.ActiveConflicts(ctx.Ctx, c.Project)
	if err != nil {
		return err
	}
	cli.PrintConflicts(os.Stdout, conflicts)
	if len(conflicts) == 0 {
		return nil
	}
	fmt.Println()

	fm := &resolveForm{Days: "1"}
	if err := newResolveForm(conflicts, fm).RunWithContext(ctx.Ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Resolve cancelled.")
			return nil
		}
		return err
	}
	if !fm.Confirm || len(fm.TaskIDs) == 0 {
		fmt.Println("Nothing moved.")
		return nil
	}

	days, err := strconv.Atoi(strings.TrimSpace(fm.Days))
	if err != nil {
		return fmt.Errorf("invalid number of working days: %w", err)
	}

	ctx.PerformAutomaticBackup()
	result, err := ctx.Service.MoveTasks(ctx.Ctx, c.Project, fm.TaskIDs, days)
	if err != nil {
		return err
	}
	cli.PrintMove(os.Stdout, result)
	return nil
}

// conflictOptions lists each conflicting task once, labelled with its earliest conflict date.
func conflictOptions(conflicts []models.DateConflict) []huh.Option[string] {
	seen := map[string]bool{}
	var opts []huh.Option[string]
	for _, c := range conflicts {
		for _, t := range c.Tasks {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (holiday %s)", t.Name, c.Date), t.ID))
		}
	}
	return opts
}

func validateDays(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of working days")
	}
	if n < 0 {
		return errors.New("working days cannot be negative")
	}
	return nil
}

func newResolveForm(conflicts []models.DateConflict, fm *resolveForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tasks to move").
				Options(conflictOptions(conflicts)...).
				Value(&fm.TaskIDs),
			huh.NewInput().
				Title("Working days").
				Description("Holidays are skipped when counting").
				Value(&fm.Days).
				Validate(validateDays),
			huh.NewConfirm().
				Title("Move the selected tasks?").
				Value(&fm.Confirm),
		),
	).WithTheme(huh.ThemeDracula())
}
