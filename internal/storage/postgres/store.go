package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/projcal/internal/constants"
	apperrors "github.com/julianstephens/projcal/internal/errors"
	"github.com/julianstephens/projcal/internal/logger"
	"github.com/julianstephens/projcal/internal/migration"
	"github.com/julianstephens/projcal/internal/storage"
	"github.com/julianstephens/projcal/migrations"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type Store struct {
	connStr string
	db      *sql.DB
	*repo
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	// Ensure search_path is set to projcal in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else if !hasSearchPathParam(s.connStr) {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasSearchPathParam returns true if the given DSN-style connection string
// contains a search_path parameter key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	return hasDSNKey(connStr, "search_path")
}

// hasSSLMode checks if the connection string contains an sslmode parameter key (case-insensitive).
// It supports both URL-style and DSN-style connection strings.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNKey(connStr, "sslmode")
}

func hasDSNKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks if a connection string is a valid
// PostgreSQL connection string (URI or DSN) and ensures it does not
// contain a password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		for _, pair := range strings.Fields(connStr) {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// IsConnString reports whether path names a PostgreSQL database rather than a file.
func IsConnString(path string) bool {
	return strings.HasPrefix(path, "postgres://") ||
		strings.HasPrefix(path, "postgresql://") ||
		(strings.Contains(path, "host=") && strings.Contains(path, "="))
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool parameters to avoid connection exhaustion
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	s.db = db
	s.repo = &repo{q: db}
	return nil
}

func (s *Store) ping() error {
	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.ping(); err != nil {
		return err
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
	if err := s.open(); err != nil {
		return err
	}
	if err := s.ping(); err != nil {
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
	subFS, err := migrations.Postgres()
	if err != nil {
		panic(fmt.Sprintf("postgres migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres)
}

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
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}

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
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrConflict, what, pqErr.Message)
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
