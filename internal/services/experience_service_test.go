package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/validation"
)

func sampleExperience(company, role string, result models.ExperienceResult) models.Experience {
	return models.Experience{
		Company:        company,
		Role:           role,
		ExperienceDate: "2026-02-10",
		Result:         result,
		Difficulty:     models.DifficultyMedium,
		Summary:        "Two technical rounds and an HR chat.",
		Rounds: []models.InterviewRound{
			{Name: "Online assessment", RoundType: "online-assessment", Questions: []string{"Two sum"}},
			{Name: "Technical", RoundType: "technical"},
		},
	}
}

func newExperienceService(t *testing.T) *ExperienceService {
	t.Helper()
	s := NewExperienceService(newTestStore(t))
	s.now = tickingClock(epoch)
	return s
}

func TestExperienceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newExperienceService(t)

	created, err := s.Create(ctx, sampleExperience(" Acme ", "Frontend Intern  ", models.ResultSelected))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Fatalf("created = %+v", created)
	}
	if created.Company != "Acme" || created.Role != "Frontend Intern" {
		t.Errorf("created company/role = %q/%q, want trimmed", created.Company, created.Role)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("Get mismatch (-created +got):\n%s", diff)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestExperienceCreateValidates(t *testing.T) {
	s := newExperienceService(t)
	bad := sampleExperience("", "Backend", "ghosted")
	bad.Rounds = nil

	_, err := s.Create(context.Background(), bad)
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("Create error = %v, want validation error", err)
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) != 3 {
		t.Errorf("field errors = %v, want company, result and rounds", fieldErrs)
	}
}

func TestExperienceListFilters(t *testing.T) {
	ctx := context.Background()
	s := newExperienceService(t)

	for _, e := range []models.Experience{
		sampleExperience("Acme Corp", "Frontend Intern", models.ResultSelected),
		sampleExperience("Globex", "Backend Engineer", models.ResultRejected),
		sampleExperience("acme labs", "Data Analyst", models.ResultRejected),
	} {
		if _, err := s.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter models.ExperienceFilter
		want   []string
	}{
		{"all newest first", models.ExperienceFilter{}, []string{"acme labs", "Globex", "Acme Corp"}},
		{"company substring ignores case", models.ExperienceFilter{Company: "ACME"}, []string{"acme labs", "Acme Corp"}},
		{"role", models.ExperienceFilter{Role: "engineer"}, []string{"Globex"}},
		{"result", models.ExperienceFilter{Result: models.ResultRejected}, []string{"acme labs", "Globex"}},
		{"combined", models.ExperienceFilter{Company: "acme", Result: models.ResultRejected}, []string{"acme labs"}},
		{"limit", models.ExperienceFilter{Limit: 1}, []string{"acme labs"}},
		{"no match", models.ExperienceFilter{Company: "initech"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			companies := []string{}
			for _, e := range got {
				companies = append(companies, e.Company)
			}
			if diff := cmp.Diff(tt.want, companies); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExperienceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newExperienceService(t)

	created, err := s.Create(ctx, sampleExperience("Acme", "Intern", models.ResultPending))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.Result = models.ResultSelected
	created.Role = "  Senior Intern "
	created.Rounds = append(created.Rounds, models.InterviewRound{Name: "HR", RoundType: "hr"})
	updated, err := s.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.UpdatedAt == created.CreatedAt {
		t.Errorf("UpdatedAt was not refreshed: %+v", updated)
	}
	if updated.Role != "Senior Intern" {
		t.Errorf("updated role = %q, want trimmed", updated.Role)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("Get after update mismatch (-want +got):\n%s", diff)
	}

	missing := sampleExperience("Acme", "Intern", models.ResultPending)
	missing.ID = "missing"
	if _, err := s.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}
