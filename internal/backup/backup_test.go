package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/storage"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

// setupTestDB creates an initialized projcal database holding one project.
func setupTestDB(t *testing.T) (string, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "projcal.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	project := storage.NewProject("Apollo")
	if err := store.AddProject(context.Background(), project); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	return dbPath, project.ID
}

func projectCount(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer store.Close()

	projects, err := store.GetAllProjects(context.Background())
	if err != nil {
		t.Fatalf("GetAllProjects failed: %v", err)
	}
	return len(projects)
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", backupPath, mgr.GetBackupDir())
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		t.Errorf("unexpected backup name %q", name)
	}
	if got := projectCount(t, backupPath); got != 1 {
		t.Errorf("backup holds %d projects, want 1", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreateBackupSameMinute(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	mgr := NewManager(dbPath)
	base := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	mgr.now = func() time.Time { return base }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("backup path %s reused", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("got %d backups, want 3", len(backups))
	}
}

func TestListBackupsOrdering(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	// Unrelated files in the backup dir are ignored.
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not newest first: %v then %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if backups[0].Size == 0 {
		t.Error("expected non-zero backup size")
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "projcal.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 24*time.Hour)

	var first string
	for i := 0; i < constants.MaxBackups+3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if i == 0 {
			first = path
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("oldest backup %s should have been rotated out", first)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), time.Minute)

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Add a second project after the snapshot.
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.AddProject(context.Background(), storage.NewProject("Gemini")); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	store.Close()

	if got := projectCount(t, dbPath); got != 2 {
		t.Fatalf("got %d projects before restore, want 2", got)
	}

	previous, err := mgr.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if previous == "" {
		t.Fatal("expected pre-restore backup path")
	}

	if got := projectCount(t, dbPath); got != 1 {
		t.Errorf("got %d projects after restore, want 1", got)
	}
	if got := projectCount(t, previous); got != 2 {
		t.Errorf("pre-restore backup holds %d projects, want 2", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupInvalid(t *testing.T) {
	dbPath, _ := setupTestDB(t)
	mgr := NewManager(dbPath)

	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.db")
			},
		},
		{
			name: "not a database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "junk.db")
				if err := os.WriteFile(path, []byte("definitely not sqlite, just some text padding the header out"), 0600); err != nil {
					t.Fatal(err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mgr.RestoreBackup(tt.setup(t)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if got := projectCount(t, dbPath); got != 1 {
		t.Errorf("database changed by failed restore: %d projects", got)
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		file string
		want time.Time
		ok   bool
	}{
		{"minute", "projcal-20240115-0930.db", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"second", "projcal-20240115-093045.db", time.Date(2024, 1, 15, 9, 30, 45, 0, time.UTC), true},
		{"counter", "projcal-20240115-093045-2.db", time.Date(2024, 1, 15, 9, 30, 45, 0, time.UTC), true},
		{"garbage", "projcal-latest.db", time.Time{}, false},
		{"bad suffix", "projcal-20240115-0930-x.db", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStamp(tt.file)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func TestOtherInstances(t *testing.T) {
	orig := processesFunc
	t.Cleanup(func() { processesFunc = orig })

	self := os.Getpid()
	processesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: self, exe: constants.AppName},
			fakeProcess{pid: self + 1, exe: constants.AppName},
			fakeProcess{pid: self + 2, exe: constants.AppName + ".exe"},
			fakeProcess{pid: self + 3, exe: "bash"},
		}, nil
	}

	pids, err := OtherInstances()
	if err != nil {
		t.Fatalf("OtherInstances failed: %v", err)
	}
	if fmt.Sprint(pids) != fmt.Sprint([]int{self + 1, self + 2}) {
		t.Errorf("got pids %v", pids)
	}

	processesFunc = func() ([]ps.Process, error) { return nil, errors.New("no procfs") }
	if _, err := OtherInstances(); err == nil {
		t.Error("expected error from process listing")
	}
}
