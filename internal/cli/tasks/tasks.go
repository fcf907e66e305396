package tasks

import (
	"fmt"
	"os"

	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/models"
)

type AddCmd struct {
	Project string `arg:"" help:"Project ID."`
	Name    string `arg:"" help:"Task name."`
	Start   string `help:"Start date (YYYY-MM-DD)." required:""`
	End     string `help:"End date (YYYY-MM-DD), empty for a single-day task."`
	Status  string `help:"Initial status." default:"open"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.AddTask(ctx.Ctx, c.Project, c.Name, c.Start, c.End, models.TaskStatus(c.Status))
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added task %s (%s)\n", t.Name, t.ID)
	return nil
}

type ListCmd struct {
	Project string `arg:"" help:"Project ID."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Service.ListTasks(ctx.Ctx, c.Project)
	if err != nil {
		return err
	}
	cli.PrintTasks(os.Stdout, list)
	return nil
}

type StatusCmd struct {
	ID     string `arg:"" help:"Task ID."`
	Status string `arg:"" help:"New status."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.SetTaskStatus(ctx.Ctx, c.ID, models.TaskStatus(c.Status)); err != nil {
		return err
	}
	fmt.Printf("✓ Task %s is now %s\n", c.ID, c.Status)
	return nil
}

// MoveCmd pushes tasks forward by a number of working days.
type MoveCmd struct {
	Project string   `arg:"" help:"Project ID."`
	IDs     []string `arg:"" name:"task-ids" help:"Task IDs to move."`
	Days    int      `help:"Working days to move by." required:""`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()
	result, err := ctx.Service.MoveTasks(ctx.Ctx, c.Project, c.IDs, c.Days)
	if err != nil {
		return err
	}
	cli.PrintMove(os.Stdout, result)
	return nil
}
