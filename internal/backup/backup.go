// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// ErrInvalidBackup is returned when a file is not a usable quickhire database.
var ErrInvalidBackup = errors.New("not a valid quickhire backup")

var namePattern = regexp.MustCompile(`^` + regexp.QuoteMeta(constants.BackupFilePrefix) +
	`(\d{8}-\d{4}(?:\d{2})?)(?:-(\d+))?` + regexp.QuoteMeta(constants.BackupFileSuffix) + `$`)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

func (i Info) Name() string {
	return filepath.Base(i.Path)
}

// Manager creates, lists and restores backups kept next to the database.
type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:   constants.MaxBackups,
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the database and prunes backups beyond the retention limit.
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to prune old backups", "error", err)
	}
	logger.Info("Backup created", "path", path)
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextName()
	if err != nil {
		return "", err
	}
	if err := vacuumInto(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	return dest, nil
}

// nextName picks a free file name, widening to seconds and then a counter on collision.
func (m *Manager) nextName() (string, error) {
	now := m.now()
	candidate := func(stamp string, seq int) string {
		name := constants.BackupFilePrefix + stamp
		if seq > 0 {
			name += "-" + strconv.Itoa(seq)
		}
		return filepath.Join(m.dir, name+constants.BackupFileSuffix)
	}

	path := candidate(now.Format(minuteLayout), 0)
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format(secondLayout)
	for seq := 0; seq <= 100; seq++ {
		path = candidate(stamp, seq)
		if !exists(path) {
			return path, nil
		}
	}
	return "", errors.New("failed to generate unique backup filename")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// vacuumInto writes a compacted, consistent copy of src to dest.
func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkSchema(db); err != nil {
		return err
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Warn("VACUUM INTO failed, copying file instead", "error", err)
		return copyFile(src, dest)
	}
	return nil
}

// List returns backups newest first. Files that do not follow the naming
// scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		info.Path = filepath.Join(m.dir, entry.Name())
		info.Size = fi.Size()
		backups = append(backups, info)
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		if b.seq != a.seq {
			return b.seq - a.seq
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func parseName(name string) (Info, bool) {
	match := namePattern.FindStringSubmatch(name)
	if match == nil {
		return Info{}, false
	}
	layout := minuteLayout
	if len(match[1]) == len(secondLayout) {
		layout = secondLayout
	}
	ts, err := time.ParseInLocation(layout, match[1], time.Local)
	if err != nil {
		return Info{}, false
	}
	info := Info{Timestamp: ts}
	if match[2] != "" {
		info.seq, _ = strconv.Atoi(match[2])
	}
	return info, true
}

func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}
	for _, b := range backups[m.keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Name(), err)
		}
	}
	return nil
}

// Resolve accepts a backup path or a bare file name from List and returns its path.
// "latest" selects the newest backup.
func (m *Manager) Resolve(ref string) (string, error) {
	if ref == "latest" {
		backups, err := m.List()
		if err != nil {
			return "", err
		}
		if len(backups) == 0 {
			return "", errors.New("no backups found")
		}
		return backups[0].Path, nil
	}
	if !strings.ContainsRune(ref, os.PathSeparator) {
		ref = filepath.Join(m.dir, ref)
	}
	if !exists(ref) {
		return "", fmt.Errorf("backup file does not exist: %s", ref)
	}
	return ref, nil
}

// Restore replaces the database with the backup at path. The current
// database, if any, is snapshotted first; that snapshot's path is returned.
// The database must not be open while restoring.
func (m *Manager) Restore(path string) (string, error) {
	if !exists(path) {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := verify(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	var safety string
	if exists(m.dbPath) {
		var err error
		if safety, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("failed to back up current database before restore: %w", err)
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

	logger.Info("Database restored", "from", path, "safety_backup", safety)
	return safety, nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return checkSchema(db)
}

// checkSchema confirms the database carries quickhire's migration table.
func checkSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return err
	}
	if version == 0 {
		return errors.New("schema has no applied migrations")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
