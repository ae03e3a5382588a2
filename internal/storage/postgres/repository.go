package postgres

import (
	"context"

	"github.com/julianstephens/quickhire/internal/storage"
)

func (s *Store) Insert(ctx context.Context, table string, rec storage.Record) (storage.Record, error) {
	if s.repo == nil {
		return nil, storage.ErrNotInitialized
	}
	return s.repo.Insert(ctx, table, rec)
}

func (s *Store) Update(ctx context.Context, table string, filters []storage.Filter, changes storage.Record) (int64, error) {
	if s.repo == nil {
		return 0, storage.ErrNotInitialized
	}
	return s.repo.Update(ctx, table, filters, changes)
}

func (s *Store) Remove(ctx context.Context, table string, filters []storage.Filter) (int64, error) {
	if s.repo == nil {
		return 0, storage.ErrNotInitialized
	}
	return s.repo.Remove(ctx, table, filters)
}

func (s *Store) Query(ctx context.Context, table string, q storage.Query) ([]storage.Record, error) {
	if s.repo == nil {
		return nil, storage.ErrNotInitialized
	}
	return s.repo.Query(ctx, table, q)
}

func (s *Store) WithTx(ctx context.Context, fn func(storage.Repository) error) error {
	if s.repo == nil {
		return storage.ErrNotInitialized
	}
	return s.repo.WithTx(ctx, fn)
}
