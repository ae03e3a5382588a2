package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/migration"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/migrations"
)

// Store is the default single-file backend.
type Store struct {
	path string
	db   *sql.DB
	repo *storage.SQLRepository
}

var (
	_ storage.Provider   = (*Store)(nil)
	_ storage.Transactor = (*Store)(nil)
)

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	s.db = db
	s.repo = storage.NewSQLRepository(db, storage.SQLiteDialect)
	return nil
}

func (s *Store) Init() error {
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
		return fmt.Errorf("storage not initialized, run 'quickhire init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		s.repo = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

func (s *Store) SchemaStatus() (migration.Status, error) {
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Backend() string {
	return "sqlite"
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
