package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Migration is a single numbered schema change read from an NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status describes where a database sits relative to the bundled migrations.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// UpToDate reports whether no migrations remain to be applied.
func (s Status) UpToDate() bool {
	return len(s.Pending) == 0 && s.Current == s.Latest
}

// Runner applies migrations from an fs.FS to a database/sql handle.
// The same runner drives both the sqlite and postgres backends, so every
// statement it issues itself is dialect neutral.
type Runner struct {
	db *sql.DB
	fs fs.FS
}

// NewRunner creates a runner reading *.sql files from the root of migrationFS.
func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{
		db: db,
		fs: migrationFS,
	}
}

// EnsureSchemaVersionTable creates the schema_version table if it doesn't exist
func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// GetCurrentVersion returns the recorded schema version, or 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// versionStatements returns the statements that record version as current.
// The value is an int formatted directly so no placeholder syntax is needed.
func versionStatements(version int) []string {
	return []string{
		"DELETE FROM schema_version",
		fmt.Sprintf("INSERT INTO schema_version (version) VALUES (%d)", version),
	}
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	for _, stmt := range versionStatements(version) {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to set version: %w", err)
		}
	}
	return nil
}

// ReadMigrationFiles parses every NNN_name.sql file and returns them sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", file.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", file.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// GetLatestVersion returns the highest migration version available
func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}

	if len(migrations) == 0 {
		return 0, nil
	}

	return migrations[len(migrations)-1].Version, nil
}

// Status compares the recorded version against the bundled migrations.
func (r *Runner) Status() (Status, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return Status{}, err
	}

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	if len(migrations) > 0 {
		st.Latest = migrations[len(migrations)-1].Version
	}
	if current > st.Latest {
		return st, newerSchemaError(current, st.Latest)
	}
	for _, m := range migrations {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade quickhire", current, latest)
}

// ApplyMigrations applies every pending migration, each in its own transaction,
// and returns how many were applied. logFn receives progress lines and may be nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	st, err := r.Status()
	if err != nil {
		return 0, err
	}

	if st.Latest == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	if len(st.Pending) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", st.Current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Current schema version: %d", st.Current))
	logFn(fmt.Sprintf("Target schema version: %d", st.Latest))
	logFn(fmt.Sprintf("Applying %d migration(s)...", len(st.Pending)))

	startTime := time.Now()
	appliedCount := 0

	for _, m := range st.Pending {
		logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))
		if err := r.apply(m); err != nil {
			return appliedCount, err
		}
		appliedCount++
		logFn(fmt.Sprintf("  ✓ Migration %d applied successfully", m.Version))
	}

	logFn(fmt.Sprintf("Applied %d migration(s) in %v", appliedCount, time.Since(startTime)))
	return appliedCount, nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}

	for _, stmt := range versionStatements(m.Version) {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record version in migration %d: %w", m.Version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// ValidateVersion checks if the database version is compatible with the application
func (r *Runner) ValidateVersion() error {
	_, err := r.Status()
	return err
}
