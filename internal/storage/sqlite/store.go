package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/migration"
	"github.com/julianstephens/projcal/internal/storage"
	"github.com/julianstephens/projcal/migrations"
)

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

type Store struct {
	path string
	db   *sql.DB
	*repo
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+"?"+pragmas)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; transactions and plain queries share the connection.
	db.SetMaxOpenConns(1)
	s.db = db
	s.repo = &repo{q: db}
	return nil
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'projcal init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.runner().ValidateVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db, s.repo = nil, nil
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not loaded")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) runner() *migration.Runner {
	subFS, err := migrations.SQLite()
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(fmt.Sprintf("sqlite migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite)
}

// Migrate applies pending migrations and returns how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not loaded")
	}
	return s.runner().ApplyMigrations(logFn)
}

func (s *Store) SchemaVersion() (int, int, error) {
	r := s.runner()
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, 0, err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(storage.Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&repo{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repo struct {
	q querier
}

func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrConflict, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("%s %s", kind, id)
	}
	return nil
}
