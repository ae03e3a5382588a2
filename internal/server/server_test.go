package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/quickhire/internal/content"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/planner"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/storage/sqlite"
)

var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "quickhire.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	catalog, err := content.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	srv := New(Config{}, Deps{
		Store:     store,
		Generator: planner.New(catalog),
		Services:  services.New(store),
		Now:       func() time.Time { return fixedNow },
	})
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) ErrorEnvelope {
	t.Helper()
	expectStatus(t, rec, status)
	env := decode[ErrorEnvelope](t, rec)
	if env.Error.Code != code || env.Error.Message == "" {
		t.Errorf("error envelope = %+v, want code %q", env, code)
	}
	return env
}

func TestHealthAndTechnologies(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/health", nil)
	expectStatus(t, rec, http.StatusOK)
	health := decode[map[string]string](t, rec)
	if health["backend"] != "sqlite" || health["database"] != "ok" {
		t.Errorf("health = %v", health)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/technologies", nil)
	expectStatus(t, rec, http.StatusOK)
	techs := decode[[]technologySummary](t, rec)
	names := []string{}
	for _, tech := range techs {
		names = append(names, tech.Name)
	}
	if diff := cmp.Diff([]string{"React", "JavaScript", "Python", "Node.js"}, names); diff != "" {
		t.Errorf("technologies mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePlan(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/plans/generate", map[string]any{
		"technology": "React", "total_days": 3, "daily_hours": 2, "explanation_level": "beginner",
	})
	expectStatus(t, rec, http.StatusOK)
	got := decode[generatedResponse](t, rec)
	if got.Plan.Title != "React 3-Day Study Plan" || len(got.Plan.Days) != 3 || len(got.Notices) != 0 {
		t.Errorf("generated = %+v", got)
	}
	if got.Plan.Days[0].Title != "Components and JSX" || got.Plan.Days[2].EstimatedHours != 2 {
		t.Errorf("days = %+v", got.Plan.Days)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/plans/generate", map[string]any{"technology": "Rust"})
	expectStatus(t, rec, http.StatusOK)
	got = decode[generatedResponse](t, rec)
	if got.Plan.Technology != "React" || got.Plan.TotalDays != 5 || len(got.Notices) != 1 {
		t.Errorf("fallback plan = %s %d days, notices %v", got.Plan.Technology, got.Plan.TotalDays, got.Notices)
	}
}

func TestGeneratePlanRejectsInvalidInput(t *testing.T) {
	h := newTestServer(t)

	env := expectError(t, do(t, h, http.MethodPost, "/api/v1/plans/generate", map[string]any{
		"technology": "React", "total_days": 11, "daily_hours": -1,
	}), http.StatusBadRequest, codeInvalidInput)
	fields := []string{}
	for _, f := range env.Error.Fields {
		fields = append(fields, f.Field)
	}
	if diff := cmp.Diff([]string{"total_days", "daily_hours"}, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	expectError(t, do(t, h, http.MethodPost, "/api/v1/plans/generate", "{not json"), http.StatusBadRequest, codeInvalidInput)
}

func TestPlanLifecycle(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/plans", map[string]any{"technology": "python", "total_days": 2, "daily_hours": 1.5})
	expectStatus(t, rec, http.StatusCreated)
	saved := decode[savedResponse](t, rec).Plan
	if saved.ID == "" || saved.Technology != "Python" || len(saved.Days) != 2 {
		t.Fatalf("saved = %+v", saved)
	}
	base := "/api/v1/plans/" + saved.ID

	rec = do(t, h, http.MethodPatch, base+"/days/1", map[string]any{"completed": true})
	expectStatus(t, rec, http.StatusOK)
	if day := decode[models.PlanDay](t, rec); !day.IsCompleted || day.CompletedAt == nil {
		t.Errorf("day = %+v", day)
	}

	expectError(t, do(t, h, http.MethodPatch, base+"/days/1", map[string]any{}), http.StatusBadRequest, codeInvalidInput)
	expectError(t, do(t, h, http.MethodPatch, base+"/days/zero", map[string]any{"completed": true}), http.StatusBadRequest, codeInvalidInput)
	expectError(t, do(t, h, http.MethodPatch, base+"/days/5", map[string]any{"completed": true}), http.StatusNotFound, codeNotFound)

	rec = do(t, h, http.MethodGet, base+"/progress", nil)
	expectStatus(t, rec, http.StatusOK)
	progress := decode[models.PlanProgress](t, rec)
	if progress.CompletedDays != 1 || progress.TotalDays != 2 || progress.Percent != 50 || progress.NextDay != 2 {
		t.Errorf("progress = %+v", progress)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/plans", nil)
	expectStatus(t, rec, http.StatusOK)
	if plans := decode[[]models.StudyPlan](t, rec); len(plans) != 1 {
		t.Errorf("plans = %+v", plans)
	}

	expectStatus(t, do(t, h, http.MethodDelete, base, nil), http.StatusNoContent)
	expectError(t, do(t, h, http.MethodGet, base, nil), http.StatusNotFound, codeNotFound)
	expectError(t, do(t, h, http.MethodDelete, base, nil), http.StatusNotFound, codeNotFound)

	expectStatus(t, do(t, h, http.MethodPost, base+"/restore", nil), http.StatusNoContent)
	rec = do(t, h, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.StudyPlan](t, rec); len(got.Days) != 2 || !got.Days[0].IsCompleted {
		t.Errorf("restored plan = %+v", got)
	}
}

func TestExperienceEndpoints(t *testing.T) {
	h := newTestServer(t)

	body := map[string]any{
		"company": "Acme", "role": "SDE Intern", "result": "selected", "difficulty": "hard",
		"rounds": []map[string]any{{"name": "Coding", "questions": []string{"LRU cache"}}},
	}
	rec := do(t, h, http.MethodPost, "/api/v1/experiences", body)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[models.Experience](t, rec)

	body["result"] = "rejected"
	rec = do(t, h, http.MethodPut, "/api/v1/experiences/"+created.ID, body)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Experience](t, rec); got.Result != models.ResultRejected || got.ID != created.ID {
		t.Errorf("updated = %+v", got)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/experiences?company=acme&result=rejected", nil)
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]models.Experience](t, rec); len(list) != 1 {
		t.Errorf("list = %+v", list)
	}

	expectError(t, do(t, h, http.MethodGet, "/api/v1/experiences?limit=-2", nil), http.StatusBadRequest, codeInvalidInput)
	expectError(t, do(t, h, http.MethodPost, "/api/v1/experiences", map[string]any{"company": "Acme"}), http.StatusBadRequest, codeInvalidInput)
	expectError(t, do(t, h, http.MethodPut, "/api/v1/experiences/missing", body), http.StatusNotFound, codeNotFound)

	expectStatus(t, do(t, h, http.MethodDelete, "/api/v1/experiences/"+created.ID, nil), http.StatusNoContent)
	expectError(t, do(t, h, http.MethodGet, "/api/v1/experiences/"+created.ID, nil), http.StatusNotFound, codeNotFound)
}

func TestJobEndpoints(t *testing.T) {
	h := newTestServer(t)

	for _, j := range []map[string]any{
		{"company": "Acme", "title": "Frontend Intern", "job_type": "internship", "tags": []string{"react"}},
		{"company": "Globex", "title": "Backend Engineer", "job_type": "full-time", "location": "Remote"},
	} {
		expectStatus(t, do(t, h, http.MethodPost, "/api/v1/jobs", j), http.StatusCreated)
	}

	rec := do(t, h, http.MethodGet, "/api/v1/jobs?q=REACT", nil)
	expectStatus(t, rec, http.StatusOK)
	list := decode[[]models.JobListing](t, rec)
	if len(list) != 1 || list[0].Company != "Acme" {
		t.Fatalf("list = %+v", list)
	}

	expectStatus(t, do(t, h, http.MethodGet, "/api/v1/jobs/"+list[0].ID, nil), http.StatusOK)
	expectError(t, do(t, h, http.MethodPost, "/api/v1/jobs", map[string]any{"company": "X", "title": "Y", "job_type": "gig"}), http.StatusBadRequest, codeInvalidInput)
	expectStatus(t, do(t, h, http.MethodDelete, "/api/v1/jobs/"+list[0].ID, nil), http.StatusNoContent)
	expectError(t, do(t, h, http.MethodDelete, "/api/v1/jobs/"+list[0].ID, nil), http.StatusNotFound, codeNotFound)
}

func TestEventEndpoints(t *testing.T) {
	h := newTestServer(t)

	for _, e := range []map[string]any{
		{"title": "Past fair", "event_type": "career-fair", "starts_at": "2026-03-01T09:00:00Z", "ends_at": "2026-03-01T17:00:00Z"},
		{"title": "Hackathon", "event_type": "hackathon", "starts_at": "2026-03-10T09:00:00Z", "ends_at": "2026-03-11T09:00:00Z"},
	} {
		expectStatus(t, do(t, h, http.MethodPost, "/api/v1/events", e), http.StatusCreated)
	}

	rec := do(t, h, http.MethodGet, "/api/v1/events/upcoming", nil)
	expectStatus(t, rec, http.StatusOK)
	upcoming := decode[[]models.CareerEvent](t, rec)
	if len(upcoming) != 1 || upcoming[0].Title != "Hackathon" {
		t.Fatalf("upcoming = %+v", upcoming)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/events?from=2026-02-01&to=2026-03-05", nil)
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]models.CareerEvent](t, rec); len(list) != 1 || list[0].Title != "Past fair" {
		t.Errorf("ranged list = %+v", list)
	}

	expectError(t, do(t, h, http.MethodGet, "/api/v1/events?from=soon", nil), http.StatusBadRequest, codeInvalidInput)
	expectStatus(t, do(t, h, http.MethodGet, "/api/v1/events/"+upcoming[0].ID, nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodDelete, "/api/v1/events/"+upcoming[0].ID, nil), http.StatusNoContent)
}

func TestUnknownRouteAndCORS(t *testing.T) {
	h := newTestServer(t)
	expectError(t, do(t, h, http.MethodGet, "/api/v1/nope", nil), http.StatusNotFound, codeNotFound)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "quickhire.db"))
	catalog, err := content.LoadEmbedded()
	if err != nil {
		t.Fatal(err)
	}
	srv := New(Config{Addr: "127.0.0.1:0"}, Deps{Store: store, Generator: planner.New(catalog), Services: services.New(store)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
