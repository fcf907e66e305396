package cli

import (
	"context"

	"github.com/julianstephens/projcal/internal/backup"
	"github.com/julianstephens/projcal/internal/holidays"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/storage"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

// Context is handed to every kong command.
type Context struct {
	Ctx      context.Context
	Store    storage.Provider
	Service  *holidays.Service
	NoBackup bool
}

func NewContext(ctx context.Context, store storage.Provider, noBackup bool) *Context {
	return &Context{
		Ctx:      ctx,
		Store:    store,
		Service:  holidays.NewService(store),
		NoBackup: noBackup,
	}
}

// PerformAutomaticBackup snapshots a SQLite database before a write. Failures
// are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	if c.NoBackup {
		return
	}
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
