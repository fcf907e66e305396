package system

import (
	"fmt"

	"github.com/julianstephens/projcal/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	count, err := ctx.Store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
