package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/cli/backups"
	"github.com/julianstephens/projcal/internal/cli/holidays"
	"github.com/julianstephens/projcal/internal/cli/projects"
	"github.com/julianstephens/projcal/internal/cli/system"
	"github.com/julianstephens/projcal/internal/cli/tasks"
	"github.com/julianstephens/projcal/internal/constants"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `name:"db" help:"SQLite file path, PostgreSQL connection string without password, or 'keyring'." default:"${db_path}" env:"PROJCAL_DB"`
	Debug    bool   `help:"Log debug output to stderr." env:"PROJCAL_DEBUG"`
	NoBackup bool   `help:"Skip the automatic backup before writes." env:"PROJCAL_NO_BACKUP"`

	Init     system.InitCmd     `cmd:"" help:"Initialize projcal storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the JSON API."`
	Calendar system.CalendarCmd `cmd:"" help:"Browse a project's holiday calendar."`
	Resolve  system.ResolveCmd  `cmd:"" help:"Interactively move tasks off holidays."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Project  struct {
		Add  projects.AddCmd  `cmd:"" help:"Add a project."`
		List projects.ListCmd `cmd:"" help:"List projects."`
	} `cmd:"" help:"Manage projects."`
	Task struct {
		Add    tasks.AddCmd    `cmd:"" help:"Add a task."`
		List   tasks.ListCmd   `cmd:"" help:"List a project's tasks."`
		Status tasks.StatusCmd `cmd:"" help:"Change a task's status."`
		Move   tasks.MoveCmd   `cmd:"" help:"Move tasks forward by working days."`
	} `cmd:"" help:"Manage tasks."`
	Holiday struct {
		Recurrent holidays.RecurrentCmd `cmd:"" help:"Declare holidays on weekdays within a period."`
		Specific  holidays.SpecificCmd  `cmd:"" help:"Declare a single holiday."`
		Range     holidays.RangeCmd     `cmd:"" help:"Declare every day of a range as a holiday."`
		List      holidays.ListCmd      `cmd:"" help:"List a project's holidays."`
		Edit      holidays.EditCmd      `cmd:"" help:"Edit a holiday."`
		Delete    holidays.DeleteCmd    `cmd:"" help:"Delete a holiday."`
		Check     holidays.CheckCmd     `cmd:"" help:"Check whether a date is a holiday."`
		Conflicts holidays.ConflictsCmd `cmd:"" help:"Show tasks scheduled on holidays."`
	} `cmd:"" help:"Manage holidays."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

// commands that run without an initialized database
var skipLoad = map[string]bool{
	"init":           true,
	"doctor":         true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
	"keyring status": true,
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI, options()...)

	logDir := kong.ExpandPath(constants.DefaultConfigDir)
	store, err := cli.OpenStore(CLI.DB)
	if err != nil {
		apperrors.Fatal(err)
	}
	if s, ok := store.(*sqlite.Store); ok {
		logDir = filepath.Dir(s.GetConfigPath())
	}

	command := ctx.Selected().Path()
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir, Stderr: command == "serve"}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctx.Run(cli.NewContext(runCtx, store, CLI.NoBackup)); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Project holiday calendar and task conflict tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(cli.YAML, constants.DefaultConfigFile),
		kong.Vars{
			"version":     constants.Version,
			"db_path":     constants.DefaultConfigPath,
			"listen_addr": constants.DefaultListenAddr,
		},
	}
}
