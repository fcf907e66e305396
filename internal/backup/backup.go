// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// Info describes one backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one database file
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

// NewManager creates a manager keeping backups next to dbPath
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes backups beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(true)
}

func (m *Manager) createBackup(rotate bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Debug("Backup created", "path", backupPath)

	if rotate {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath picks a free file name, falling back to second precision and then a counter.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = name(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// snapshot writes a consistent copy with VACUUM INTO, or copies the file when that is unsupported.
func (m *Manager) snapshot(destPath string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	if err := verify(src); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		src.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// parseStamp reads the timestamp out of a backup file name, ignoring a trailing counter.
func parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	for _, layout := range []string{secondLayout, minuteLayout} {
		if len(stamp) < len(layout) {
			continue
		}
		rest := stamp[len(layout):]
		if rest != "" && !isCounter(rest) {
			continue
		}
		if t, err := time.Parse(layout, stamp[:len(layout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isCounter(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ListBackups returns every backup, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		ts, ok := parseStamp(name)
		if !ok {
			continue
		}
		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: info.Size()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database is
// snapshotted first; its backup path is returned ("" when there was none).
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verifyFile(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if exists(m.dbPath) {
		p, err := m.createBackup(false)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		previous = p
	}

	// Copy next to the database, then rename over it.
	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Database restored", "from", backupPath)
	return previous, nil
}

func verifyFile(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
