package system

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/projcal/internal/cli"
)

type DebugCmd struct {
	DBPath      DebugDBPathCmd      `cmd:"" name:"db-path" help:"Show the database location."`
	DumpHoliday DebugDumpHolidayCmd `cmd:"" help:"Dump a holiday as JSON."`
	DumpTask    DebugDumpTaskCmd    `cmd:"" help:"Dump a task as JSON."`
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, map[string]any{
		"path":           ctx.Store.GetConfigPath(),
		"schema_version": current,
		"latest_version": latest,
	})
}

type DebugDumpHolidayCmd struct {
	ID string `arg:"" help:"Holiday ID."`
}

func (cmd *DebugDumpHolidayCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Store.GetHoliday(ctx.Ctx, cmd.ID)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, h)
}

type DebugDumpTaskCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Store.GetTask(ctx.Ctx, cmd.ID)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, t)
}
