package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/projcal/internal/backup"
	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool
	needsDB bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Holiday conflicts", run: checkConflicts, warning: true, needsDB: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx.Ctx, 5*time.Second)
	defer cancel()
	return ctx.Store.Ping(pingCtx)
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run 'projcal migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'projcal backup create'")
	}
	return nil
}

// checkValidation re-checks invariants the schema cannot express on every backend.
func checkValidation(ctx *cli.Context) error {
	projects, err := ctx.Service.ListProjects(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	for _, p := range projects {
		holidays, err := ctx.Service.ListHolidays(ctx.Ctx, p.ID, false)
		if err != nil {
			return fmt.Errorf("failed to get holidays for %s: %w", p.Name, err)
		}
		seen := make(map[string]bool, len(holidays))
		for _, h := range holidays {
			if seen[h.Date] {
				return fmt.Errorf("project %s has more than one active holiday on %s", p.Name, h.Date)
			}
			seen[h.Date] = true
		}

		tasks, err := ctx.Service.ListTasks(ctx.Ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to get tasks for %s: %w", p.Name, err)
		}
		for _, t := range tasks {
			if !t.Status.Valid() {
				return fmt.Errorf("task %s has unknown status %q", t.ID, t.Status)
			}
			if t.EndDate != "" && t.EndDate < t.StartDate {
				return fmt.Errorf("task %s ends (%s) before it starts (%s)", t.ID, t.EndDate, t.StartDate)
			}
		}
	}
	return nil
}

func checkConflicts(ctx *cli.Context) error {
	projects, err := ctx.Service.ListProjects(ctx.Ctx)
	if err != nil {
		return err
	}
	total := 0
	for _, p := range projects {
		conflicts, err := ctx.Service.ActiveConflicts(ctx.Ctx, p.ID)
		if err != nil {
			return err
		}
		total += len(conflicts)
	}
	if total > 0 {
		return fmt.Errorf("%d holiday date(s) have open tasks scheduled, see 'projcal holiday conflicts'", total)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2000 || now.Year() > 2100 {
		return fmt.Errorf("system clock appears to be incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := time.Parse(constants.DateFormat, now.Format(constants.DateFormat)); err != nil {
		return fmt.Errorf("failed to round-trip today's date: %w", err)
	}
	return nil
}
