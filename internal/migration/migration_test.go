package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count); err != nil {
		t.Fatalf("sqlite_master lookup failed: %v", err)
	}
	return count == 1
}

func TestGetCurrentVersion(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"001_plans.sql": "CREATE TABLE study_plans (id TEXT);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	if err := runner.SetVersion(4); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if version, _ = runner.GetCurrentVersion(); version != 4 {
		t.Errorf("version after SetVersion(4) = %d, want 4", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"002_days.sql":   "CREATE TABLE plan_days (id TEXT);",
		"001_plans.sql":  "CREATE TABLE study_plans (id TEXT);",
		"010_events.sql": "CREATE TABLE career_events (id TEXT);",
		"README.md":      "ignored",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	want := []struct {
		version int
		name    string
	}{{1, "plans"}, {2, "days"}, {10, "events"}}
	if len(migrations) != len(want) {
		t.Fatalf("got %d migrations, want %d", len(migrations), len(want))
	}
	for i, w := range want {
		if migrations[i].Version != w.version || migrations[i].Name != w.name {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, migrations[i].Version, migrations[i].Name, w.version, w.name)
		}
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001plans.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_plans.sql": "SELECT 1;"}, "version must be at least 1"},
		{"non numeric version", map[string]string{"abc_plans.sql": "SELECT 1;"}, "invalid version number"},
		{"duplicate version", map[string]string{"001_plans.sql": "SELECT 1;", "001_days.sql": "SELECT 1;"}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(openTestDB(t), migrationFS(tt.files)).ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadMigrationFiles() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_plans.sql": "CREATE TABLE study_plans (id TEXT PRIMARY KEY, title TEXT);",
		"002_days.sql":  "CREATE TABLE plan_days (id TEXT PRIMARY KEY, plan_id TEXT);",
	}))

	var lines []string
	count, err := runner.ApplyMigrations(func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}
	if len(lines) == 0 {
		t.Error("expected progress lines from ApplyMigrations")
	}

	if version, _ := runner.GetCurrentVersion(); version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
	for _, table := range []string{"study_plans", "plan_days"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s was not created", table)
		}
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := openTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_plans.sql": "CREATE TABLE study_plans (id TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, fsys)

	if count, err := runner.ApplyMigrations(nil); err != nil || count != 1 {
		t.Fatalf("first ApplyMigrations = %d, %v; want 1, nil", count, err)
	}

	fsys["002_jobs.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE job_listings (id TEXT PRIMARY KEY);")}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 || len(st.Pending) != 1 || st.UpToDate() {
		t.Errorf("Status = %+v, want current 1, latest 2, one pending", st)
	}

	if count, err := runner.ApplyMigrations(nil); err != nil || count != 1 {
		t.Fatalf("second ApplyMigrations = %d, %v; want 1, nil", count, err)
	}
	if count, err := runner.ApplyMigrations(nil); err != nil || count != 0 {
		t.Fatalf("third ApplyMigrations = %d, %v; want 0, nil", count, err)
	}

	st, _ = runner.Status()
	if !st.UpToDate() {
		t.Errorf("Status after applying all = %+v, want up to date", st)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_plans.sql": `
			CREATE TABLE study_plans (id TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}))

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should fail on invalid SQL")
	}
	if version, _ := runner.GetCurrentVersion(); version != 0 {
		t.Errorf("version after failed migration = %d, want 0", version)
	}
	if tableExists(t, db, "study_plans") {
		t.Error("study_plans should not exist after a rolled back migration")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"001_plans.sql": "CREATE TABLE study_plans (id TEXT PRIMARY KEY);",
	}))

	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer schema error", err)
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}

func TestApplyMigrationsEmptyFS(t *testing.T) {
	runner := NewRunner(openTestDB(t), fstest.MapFS{})

	var lines []string
	count, err := runner.ApplyMigrations(func(s string) { lines = append(lines, s) })
	if err != nil || count != 0 {
		t.Fatalf("ApplyMigrations = %d, %v; want 0, nil", count, err)
	}
	if len(lines) != 1 || lines[0] != "No migration files found" {
		t.Errorf("log lines = %q", lines)
	}
}
