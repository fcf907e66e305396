package projects

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/projcal/internal/cli"
)

type AddCmd struct {
	Name string `arg:"" help:"Project name."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Service.AddProject(ctx.Ctx, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added project %s (%s)\n", p.Name, p.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Service.ListProjects(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No projects yet. Add one with 'projcal project add <name>'.")
		return nil
	}
	t := table.New().Headers("NAME", "ID", "CREATED")
	for _, p := range list {
		t.Row(p.Name, p.ID, p.CreatedAt)
	}
	fmt.Println(t.Render())
	return nil
}
