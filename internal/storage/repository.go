package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/quickhire/internal/migration"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrUnknownTable     = errors.New("unknown table")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrUnsupportedOp    = errors.New("unsupported filter operator")
	ErrUnfilteredWrite  = errors.New("update and remove require at least one filter")
	ErrEmptyRecord      = errors.New("record has no columns")
	ErrNotInitialized   = errors.New("storage not loaded")
	ErrInvalidFilterArg = errors.New("invalid filter value")
)

// Repository is the table-oriented data access surface shared by every backend.
// Table and column names are checked against the schema registry before any
// SQL is built.
type Repository interface {
	// Insert writes rec to table. A missing id is filled with a new UUID and
	// the stored record is returned.
	Insert(ctx context.Context, table string, rec Record) (Record, error)
	// Update sets the columns in changes on every row matching filters.
	Update(ctx context.Context, table string, filters []Filter, changes Record) (int64, error)
	// Remove hard-deletes every row matching filters.
	Remove(ctx context.Context, table string, filters []Filter) (int64, error)
	// Query returns the rows matching q with every registered column populated.
	Query(ctx context.Context, table string, q Query) ([]Record, error)
}

// Transactor is implemented by repositories that can group writes atomically.
type Transactor interface {
	// WithTx calls fn with a repository whose writes commit together when fn
	// returns nil and are rolled back when it returns an error.
	WithTx(ctx context.Context, fn func(Repository) error) error
}

// Atomically runs fn inside a transaction when repo supports one and directly
// against repo otherwise. The bool reports whether a transaction was used.
func Atomically(ctx context.Context, repo Repository, fn func(Repository) error) (bool, error) {
	if tx, ok := repo.(Transactor); ok {
		return true, tx.WithTx(ctx, fn)
	}
	return false, fn(repo)
}

// Provider is a Repository with a lifecycle.
type Provider interface {
	Repository

	// Init creates the store if needed and applies pending migrations.
	Init() error
	// Load opens an existing store and checks its schema version.
	Load() error
	Close() error

	// Migrate applies pending migrations, reporting progress to logFn.
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
	Ping(ctx context.Context) error

	// Backend names the driver, e.g. "sqlite" or "postgres".
	Backend() string
	// GetConfigPath returns a non-sensitive description of where data lives.
	GetConfigPath() string
}
