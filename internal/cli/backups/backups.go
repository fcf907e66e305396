package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/projcal/internal/backup"
	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite databases, use pg_dump for PostgreSQL")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Path or file name of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	pids, err := backup.OtherInstances()
	if err != nil {
		logger.Warn("Could not list running processes", "error", err)
	} else if len(pids) > 0 {
		return fmt.Errorf("another %s process is running (pid %v), stop it before restoring", constants.AppName, pids)
	}

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		candidate := filepath.Join(mgr.GetBackupDir(), backupPath)
		if _, err := os.Stat(candidate); err == nil {
			backupPath = candidate
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
		fmt.Println("A backup of your current database will be created before restoring.")
		fmt.Printf("\nRestore from: %s\n", filepath.Base(backupPath))
		fmt.Print("Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Println("✓ Database restored successfully!")
	if previous != "" {
		fmt.Printf("  Previous database saved as %s\n", filepath.Base(previous))
	}
	return nil
}
