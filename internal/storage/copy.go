package storage

import (
	"context"
	"fmt"
)

// CopyAll inserts every row of every registered table from src into dst,
// parents before children. It returns the number of rows copied per table.
func CopyAll(ctx context.Context, src, dst Repository) (map[string]int, error) {
	counts := make(map[string]int, len(tables))
	for _, table := range TableNames() {
		rows, err := src.Query(ctx, table, Query{})
		if err != nil {
			return counts, fmt.Errorf("failed to read %s: %w", table, err)
		}
		for _, row := range rows {
			if _, err := dst.Insert(ctx, table, row); err != nil {
				return counts, fmt.Errorf("failed to copy %s row %s: %w", table, row.String("id"), err)
			}
			counts[table]++
		}
	}
	return counts, nil
}
