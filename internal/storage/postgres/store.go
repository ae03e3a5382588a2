package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/migration"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/migrations"
)

// Store is the PostgreSQL backend. Tables live in a schema named after the app.
type Store struct {
	connStr string
	db      *sql.DB
	repo    *storage.SQLRepository
}

var (
	_ storage.Provider   = (*Store)(nil)
	_ storage.Transactor = (*Store)(nil)
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// IsConnString reports whether s looks like a PostgreSQL URL rather than a file path.
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

// withSearchPath pins search_path to the app schema unless the caller set one.
func withSearchPath(connStr string) string {
	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if dsnHasKey(connStr, "search_path") {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// dsnHasKey reports whether a space separated key=value DSN sets key.
func dsnHasKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return dsnHasKey(connStr, "sslmode")
}

// ValidateConnString checks that connStr is a well formed URL or DSN and
// carries no password. Passwords belong in PGPASSWORD, .pgpass or the keyring.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if dsnHasKey(connStr, "password") {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) connect() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	s.repo = storage.NewSQLRepository(db, storage.PostgresDialect)
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
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
	if err := s.connect(); err != nil {
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
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
	return "postgres"
}

func (s *Store) GetConfigPath() string {
	// The connection string may name hosts and users; keep it out of output.
	return "postgresql"
}
