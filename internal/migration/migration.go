package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the SQL placeholder style used by the runner.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Runner applies the migrations found in an fs.FS to a database.
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, fs: migrationFS, dialect: dialect}
}

// rebind rewrites ? placeholders into the runner's dialect.
func (r *Runner) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *Runner) exec(x execer, query string, args ...any) error {
	_, err := x.Exec(r.rebind(query), args...)
	return err
}

// writeVersion replaces the single schema_version row.
func (r *Runner) writeVersion(x execer, version int) error {
	if err := r.exec(x, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if err := r.exec(x, "INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

func (r *Runner) EnsureSchemaVersionTable() error {
	return r.exec(r.db, createVersionTable)
}

// GetCurrentVersion returns 0 on a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return r.writeVersion(r.db, version)
}

func parseMigrationName(name string) (int, string, error) {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, strings.TrimSuffix(rest, ".sql"), nil
}

// ReadMigrationFiles returns the migrations sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func (r *Runner) GetLatestVersion() (int, error) {
	all, err := r.ReadMigrationFiles()
	if err != nil || len(all) == 0 {
		return 0, err
	}
	return all[len(all)-1].Version, nil
}

// apply runs one migration and its version bump in a single transaction.
func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
}

// ApplyMigrations brings the schema up to the latest version and reports
// how many migrations ran. logFn may be nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	all, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(all) == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	latest := all[len(all)-1].Version
	if current > latest {
		return 0, newerSchemaError(current, latest)
	}

	pending := all[sort.Search(len(all), func(i int) bool { return all[i].Version > current }):]
	if len(pending) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Migrating schema from version %d to %d (%d pending)", current, latest, len(pending)))
	start := time.Now()
	for i, m := range pending {
		logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))
		if err := r.apply(m); err != nil {
			return i, err
		}
	}
	logFn(fmt.Sprintf("Applied %d migration(s) in %v", len(pending), time.Since(start)))
	return len(pending), nil
}

// ValidateVersion fails when the database was written by a newer build.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return newerSchemaError(current, latest)
	}
	return nil
}
