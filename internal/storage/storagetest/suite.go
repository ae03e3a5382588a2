// Package storagetest holds a behavioural suite every storage.Repository must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/quickhire/internal/storage"
)

// Run exercises repo against a freshly migrated, empty schema.
func Run(t *testing.T, repo storage.Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("InsertAssignsID", func(t *testing.T) {
		rec, err := repo.Insert(ctx, storage.TableStudyPlans, planRecord("", "React 3-Day Study Plan", "React", "2026-01-01T00:00:00Z"))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if rec.String("id") == "" {
			t.Error("Insert should assign an id")
		}

		got, err := storage.First(ctx, repo, storage.TableStudyPlans, storage.Eq("id", rec.String("id")))
		if err != nil {
			t.Fatalf("First failed: %v", err)
		}
		if got.String("technology") != "React" || got.Int("total_days") != 3 || got.Float("daily_hours") != 2 {
			t.Errorf("stored plan = %v", got)
		}
		if got.StringPtr("deleted_at") != nil {
			t.Errorf("deleted_at = %v, want NULL", got["deleted_at"])
		}
	})

	t.Run("JSONAndBoolRoundTrip", func(t *testing.T) {
		plan, err := repo.Insert(ctx, storage.TableStudyPlans, planRecord("json-plan", "Python", "Python", "2026-01-02T00:00:00Z"))
		if err != nil {
			t.Fatalf("Insert plan failed: %v", err)
		}
		_, err = repo.Insert(ctx, storage.TablePlanDays, storage.Record{
			"plan_id":            plan.String("id"),
			"day_number":         1,
			"title":              "Syntax",
			"concepts":           []string{"Variables", "Loops"},
			"resources":          []map[string]string{{"kind": "docs", "title": "Tutorial", "url": "https://docs.python.org"}},
			"practice_questions": []string{},
			"estimated_hours":    1.5,
			"is_completed":       true,
		})
		if err != nil {
			t.Fatalf("Insert day failed: %v", err)
		}

		day, err := storage.First(ctx, repo, storage.TablePlanDays, storage.Eq("plan_id", plan.String("id")), storage.Eq("is_completed", true))
		if err != nil {
			t.Fatalf("First failed: %v", err)
		}
		var concepts []string
		if err := day.Decode("concepts", &concepts); err != nil {
			t.Fatalf("Decode concepts failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Variables", "Loops"}, concepts); diff != "" {
			t.Errorf("concepts mismatch (-want +got):\n%s", diff)
		}
		if !day.Bool("is_completed") || day.Float("estimated_hours") != 1.5 || day.Int("day_number") != 1 {
			t.Errorf("day = %v", day)
		}
	})

	t.Run("QueryFiltersSortAndPaging", func(t *testing.T) {
		for i, tech := range []string{"Go", "Rust", "Gleam"} {
			created := []string{"2026-02-01T00:00:00Z", "2026-02-02T00:00:00Z", "2026-02-03T00:00:00Z"}[i]
			if _, err := repo.Insert(ctx, storage.TableStudyPlans, planRecord("page-"+tech, tech+" plan", tech, created)); err != nil {
				t.Fatalf("Insert %s failed: %v", tech, err)
			}
		}

		rows, err := repo.Query(ctx, storage.TableStudyPlans, storage.Query{
			Filters: []storage.Filter{storage.Like("id", "PAGE-")},
			Sort:    []storage.Sort{storage.Desc("created_at")},
			Limit:   2,
			Offset:  1,
		})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if got := ids(rows); !cmp.Equal(got, []string{"page-Rust", "page-Go"}) {
			t.Errorf("paged ids = %v, want [page-Rust page-Go]", got)
		}

		rows, err = repo.Query(ctx, storage.TableStudyPlans, storage.Query{
			Filters: []storage.Filter{
				storage.Or(storage.Eq("technology", "Go"), storage.Eq("technology", "Gleam")),
				storage.In("id", "page-Go", "page-Gleam", "page-Rust"),
			},
			Sort: []storage.Sort{storage.Asc("technology")},
		})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if got := ids(rows); !cmp.Equal(got, []string{"page-Gleam", "page-Go"}) {
			t.Errorf("or/in ids = %v, want [page-Gleam page-Go]", got)
		}

		rows, err = repo.Query(ctx, storage.TableStudyPlans, storage.Query{Filters: []storage.Filter{storage.In("id")}})
		if err != nil || len(rows) != 0 {
			t.Errorf("empty In = %v, %v; want no rows", rows, err)
		}
	})

	t.Run("UpdateAndRemove", func(t *testing.T) {
		if _, err := repo.Insert(ctx, storage.TableStudyPlans, planRecord("upd", "Node plan", "Node.js", "2026-03-01T00:00:00Z")); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		n, err := repo.Update(ctx, storage.TableStudyPlans, []storage.Filter{storage.Eq("id", "upd")}, storage.Record{"deleted_at": "2026-03-02T00:00:00Z"})
		if err != nil || n != 1 {
			t.Fatalf("Update = %d, %v; want 1, nil", n, err)
		}
		rows, err := repo.Query(ctx, storage.TableStudyPlans, storage.Query{Filters: []storage.Filter{storage.Eq("id", "upd"), storage.NotNull("deleted_at")}})
		if err != nil || len(rows) != 1 {
			t.Fatalf("soft deleted lookup = %v, %v", rows, err)
		}

		n, err = repo.Update(ctx, storage.TableStudyPlans, []storage.Filter{storage.Eq("id", "upd")}, storage.Record{"deleted_at": nil})
		if err != nil || n != 1 {
			t.Fatalf("clearing deleted_at = %d, %v", n, err)
		}

		n, err = repo.Remove(ctx, storage.TableStudyPlans, []storage.Filter{storage.Eq("id", "upd")})
		if err != nil || n != 1 {
			t.Fatalf("Remove = %d, %v; want 1, nil", n, err)
		}
		if _, err := storage.First(ctx, repo, storage.TableStudyPlans, storage.Eq("id", "upd")); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("First after Remove error = %v, want ErrNotFound", err)
		}

		n, err = repo.Remove(ctx, storage.TableStudyPlans, []storage.Filter{storage.Eq("id", "upd")})
		if err != nil || n != 0 {
			t.Errorf("second Remove = %d, %v; want 0, nil", n, err)
		}
	})

	t.Run("TransactionCommitAndRollback", func(t *testing.T) {
		tx, ok := repo.(storage.Transactor)
		if !ok {
			t.Skip("repository does not support transactions")
		}

		errAbort := errors.New("abort")
		err := tx.WithTx(ctx, func(r storage.Repository) error {
			if _, err := r.Insert(ctx, storage.TableStudyPlans, planRecord("tx-rolled", "Vue plan", "Vue", "2026-04-01T00:00:00Z")); err != nil {
				return err
			}
			return errAbort
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("WithTx error = %v, want abort", err)
		}
		if _, err := storage.First(ctx, repo, storage.TableStudyPlans, storage.Eq("id", "tx-rolled")); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("rolled back row lookup error = %v, want ErrNotFound", err)
		}

		err = tx.WithTx(ctx, func(r storage.Repository) error {
			if _, err := r.Insert(ctx, storage.TableStudyPlans, planRecord("tx-kept", "Vue plan", "Vue", "2026-04-02T00:00:00Z")); err != nil {
				return err
			}
			_, err := r.Insert(ctx, storage.TablePlanDays, storage.Record{
				"plan_id":            "tx-kept",
				"day_number":         1,
				"title":              "Components",
				"concepts":           []string{},
				"resources":          []map[string]string{},
				"practice_questions": []string{},
				"estimated_hours":    2.0,
				"is_completed":       false,
			})
			return err
		})
		if err != nil {
			t.Fatalf("WithTx commit failed: %v", err)
		}
		if _, err := storage.First(ctx, repo, storage.TablePlanDays, storage.Eq("plan_id", "tx-kept")); err != nil {
			t.Errorf("committed day lookup failed: %v", err)
		}
	})

	t.Run("RejectsUnknownNames", func(t *testing.T) {
		if _, err := repo.Query(ctx, "users", storage.Query{}); !errors.Is(err, storage.ErrUnknownTable) {
			t.Errorf("Query(users) error = %v, want ErrUnknownTable", err)
		}
		if _, err := repo.Insert(ctx, storage.TableJobListings, storage.Record{"salary": 1}); !errors.Is(err, storage.ErrUnknownColumn) {
			t.Errorf("Insert(salary) error = %v, want ErrUnknownColumn", err)
		}
		if _, err := repo.Remove(ctx, storage.TableJobListings, nil); !errors.Is(err, storage.ErrUnfilteredWrite) {
			t.Errorf("unfiltered Remove error = %v, want ErrUnfilteredWrite", err)
		}
	})
}

func planRecord(id, title, tech, created string) storage.Record {
	rec := storage.Record{
		"title":             title,
		"technology":        tech,
		"total_days":        3,
		"daily_hours":       2.0,
		"explanation_level": "beginner",
		"created_at":        created,
	}
	if id != "" {
		rec["id"] = id
	}
	return rec
}

func ids(rows []storage.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String("id")
	}
	return out
}
