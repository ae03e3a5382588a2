package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/quickhire/internal/logger"
)

// conn is the subset of *sql.DB and *sql.Tx the repository needs.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLRepository implements Repository over database/sql for any Dialect.
type SQLRepository struct {
	db      *sql.DB
	conn    conn
	dialect Dialect
	inTx    bool
}

var _ Transactor = (*SQLRepository)(nil)

func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{db: db, conn: db, dialect: dialect}
}

// DB returns the underlying connection pool.
func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

// WithTx runs fn against a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Called on
// a repository that is already inside a transaction, fn joins it.
func (r *SQLRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&SQLRepository{db: r.db, conn: tx, dialect: r.dialect, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Debug("repository transaction committed")
	return nil
}

func (r *SQLRepository) Insert(ctx context.Context, table string, rec Record) (Record, error) {
	t, err := LookupTable(table)
	if err != nil {
		return nil, err
	}

	stored := make(Record, len(rec)+1)
	for k, v := range rec {
		stored[k] = v
	}
	if _, hasID := t.Column("id"); hasID {
		if id, _ := stored["id"].(string); id == "" {
			stored["id"] = uuid.New().String()
		}
	}

	query, args, err := r.dialect.buildInsert(t, stored)
	if err != nil {
		return nil, err
	}
	logger.Debug("repository insert", "table", table, "sql", query)
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return stored, nil
}

func (r *SQLRepository) Update(ctx context.Context, table string, filters []Filter, changes Record) (int64, error) {
	t, err := LookupTable(table)
	if err != nil {
		return 0, err
	}
	query, args, err := r.dialect.buildUpdate(t, filters, changes)
	if err != nil {
		return 0, err
	}
	logger.Debug("repository update", "table", table, "sql", query)
	return r.exec(ctx, table, query, args)
}

func (r *SQLRepository) Remove(ctx context.Context, table string, filters []Filter) (int64, error) {
	t, err := LookupTable(table)
	if err != nil {
		return 0, err
	}
	query, args, err := r.dialect.buildDelete(t, filters)
	if err != nil {
		return 0, err
	}
	logger.Debug("repository remove", "table", table, "sql", query)
	return r.exec(ctx, table, query, args)
}

func (r *SQLRepository) exec(ctx context.Context, table, query string, args []any) (int64, error) {
	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	return n, nil
}

func (r *SQLRepository) Query(ctx context.Context, table string, q Query) ([]Record, error) {
	t, err := LookupTable(table)
	if err != nil {
		return nil, err
	}
	query, args, err := r.dialect.buildSelect(t, q)
	if err != nil {
		return nil, err
	}
	logger.Debug("repository query", "table", table, "sql", query)

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		values := make([]any, len(t.Columns))
		ptrs := make([]any, len(t.Columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		rec := make(Record, len(t.Columns))
		for i, c := range t.Columns {
			rec[c.Name] = decode(c, values[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}
	return out, nil
}

// First returns the first record matching filters or ErrNotFound.
func First(ctx context.Context, repo Repository, table string, filters ...Filter) (Record, error) {
	rows, err := repo.Query(ctx, table, Query{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}
