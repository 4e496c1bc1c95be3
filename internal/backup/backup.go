// Package backup snapshots the SQLite database into a sibling backups/
// directory and restores from those snapshots.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/logger"
)

const (
	// MaxBackups is how many snapshots rotation keeps.
	MaxBackups = 14
	DirName    = "backups"
	FilePrefix = "habitual-"
	FileSuffix = ".db"

	stampLayout = "20060102-150405"
)

// backupName matches habitual-YYYYMMDD-HHMMSS.db with an optional -N counter.
var backupName = regexp.MustCompile(`^habitual-(\d{8}-\d{6})(?:-(\d+))?\.db$`)

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), DirName),
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create writes a consistent snapshot of the database and prunes old ones.
func (m *Manager) Create(ctx context.Context) (string, error) {
	path, err := m.create(ctx)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := m.snapshot(ctx, dest); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Created backup", "path", dest)
	return dest, nil
}

func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	path := filepath.Join(m.backupDir, FilePrefix+stamp+FileSuffix)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if i > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", FilePrefix, stamp, i, FileSuffix))
	}
}

// snapshot uses VACUUM INTO, which is safe while other connections hold
// the database open in WAL mode.
func (m *Manager) snapshot(ctx context.Context, dest string) error {
	db, err := sqlx.Open("sqlite", "file:"+m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := check(ctx, db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	_, err = db.ExecContext(ctx, "VACUUM INTO ?", dest)
	return err
}

// List returns the snapshots in the backup directory, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var out []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		match := backupName.FindStringSubmatch(e.Name())
		if match == nil {
			continue
		}
		ts, err := time.ParseInLocation(stampLayout, match[1], time.Local)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		seq, _ := strconv.Atoi(match[2])
		out = append(out, Info{Path: filepath.Join(m.backupDir, e.Name()), Timestamp: ts, Size: fi.Size(), seq: seq})
	}

	slices.SortFunc(out, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return b.seq - a.seq
	})
	return out, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// Restore replaces the database with the snapshot at path. The current
// database is itself snapshotted first; that snapshot is returned.
func (m *Manager) Restore(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := Verify(ctx, path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		if previous, err = m.create(ctx); err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}
	// Stale WAL files would otherwise be replayed over the restored data.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(m.dbPath + suffix)
	}

	logger.Info("Restored database", "from", path, "previous", previous)
	return previous, nil
}

// Verify checks that path is a SQLite database holding the habit schema.
func Verify(ctx context.Context, path string) error {
	db, err := sqlx.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return check(ctx, db)
}

func check(ctx context.Context, db *sqlx.DB) error {
	var tables []string
	err := db.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'habits', 'habit_completions')")
	if err != nil {
		return err
	}
	if len(tables) != 3 {
		return fmt.Errorf("missing habit tables (found %v)", tables)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
