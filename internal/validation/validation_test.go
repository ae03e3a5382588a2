package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/julianstephens/quickhire/internal/models"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %v is not validation.Errors", err)
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("errors.Is(%v, ErrInvalid) = false", err)
	}
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fe.Field
	}
	return out
}

func TestValidatePlanConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        models.PlanConfig
		wantFields []string
	}{
		{"valid", models.PlanConfig{Technology: "React", TotalDays: 5, DailyHours: 2}, nil},
		{"lower bound", models.PlanConfig{TotalDays: 1, DailyHours: 0.5}, nil},
		{"upper bound", models.PlanConfig{TotalDays: 10, DailyHours: 24}, nil},
		{"zero days", models.PlanConfig{TotalDays: 0, DailyHours: 2}, []string{"total_days"}},
		{"eleven days", models.PlanConfig{TotalDays: 11, DailyHours: 2}, []string{"total_days"}},
		{"zero hours", models.PlanConfig{TotalDays: 3, DailyHours: 0}, []string{"daily_hours"}},
		{"too many hours", models.PlanConfig{TotalDays: 3, DailyHours: 25}, []string{"daily_hours"}},
		{"both", models.PlanConfig{TotalDays: -1, DailyHours: -1}, []string{"total_days", "daily_hours"}},
		{"NaN hours", models.PlanConfig{TotalDays: 3, DailyHours: math.NaN()}, []string{"daily_hours"}},
		{"infinite hours", models.PlanConfig{TotalDays: 3, DailyHours: math.Inf(1)}, []string{"daily_hours"}},
		{"negative infinite hours", models.PlanConfig{TotalDays: 3, DailyHours: math.Inf(-1)}, []string{"daily_hours"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(t, ValidatePlanConfig(tt.cfg))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func validExperience() models.Experience {
	return models.Experience{
		Company:        "Acme",
		Role:           "SDE Intern",
		ExperienceDate: "2026-09-12",
		Result:         models.ResultSelected,
		Difficulty:     models.DifficultyMedium,
		Rounds:         []models.InterviewRound{{Name: "Online assessment", Questions: []string{"Two sum"}}},
	}
}

func TestValidateExperience(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.Experience)
		wantFields []string
	}{
		{"valid", func(*models.Experience) {}, nil},
		{"missing company and role", func(e *models.Experience) { e.Company, e.Role = "", "  " }, []string{"company", "role"}},
		{"bad result", func(e *models.Experience) { e.Result = "ghosted" }, []string{"result"}},
		{"bad difficulty", func(e *models.Experience) { e.Difficulty = "brutal" }, []string{"difficulty"}},
		{"bad date", func(e *models.Experience) { e.ExperienceDate = "12/09/2026" }, []string{"experience_date"}},
		{"no rounds", func(e *models.Experience) { e.Rounds = nil }, []string{"rounds"}},
		{"unnamed round", func(e *models.Experience) {
			e.Rounds = append(e.Rounds, models.InterviewRound{Description: "HR chat"})
		}, []string{"rounds[1].name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExperience()
			tt.mutate(&e)
			got := fields(t, ValidateExperience(e))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidateJob(t *testing.T) {
	valid := models.JobListing{Company: "Acme", Title: "Backend Intern", JobType: models.JobTypeInternship, ApplyURL: "https://acme.example/jobs/1"}

	tests := []struct {
		name       string
		mutate     func(*models.JobListing)
		wantFields []string
	}{
		{"valid", func(*models.JobListing) {}, nil},
		{"no url is fine", func(j *models.JobListing) { j.ApplyURL = "" }, nil},
		{"missing title", func(j *models.JobListing) { j.Title = "" }, []string{"title"}},
		{"bad type", func(j *models.JobListing) { j.JobType = "gig" }, []string{"job_type"}},
		{"relative url", func(j *models.JobListing) { j.ApplyURL = "/jobs/1" }, []string{"apply_url"}},
		{"ftp url", func(j *models.JobListing) { j.ApplyURL = "ftp://acme.example/jobs" }, []string{"apply_url"}},
		{"bad posted date", func(j *models.JobListing) { j.PostedAt = "yesterday" }, []string{"posted_at"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := valid
			tt.mutate(&j)
			got := fields(t, ValidateJob(j))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	valid := models.CareerEvent{
		Title:     "Resume workshop",
		EventType: models.EventWorkshop,
		StartsAt:  "2026-11-01T10:00:00Z",
		EndsAt:    "2026-11-01T12:00:00Z",
	}

	tests := []struct {
		name       string
		mutate     func(*models.CareerEvent)
		wantFields []string
	}{
		{"valid", func(*models.CareerEvent) {}, nil},
		{"zero length deadline", func(e *models.CareerEvent) { e.EventType, e.EndsAt = models.EventDeadline, e.StartsAt }, nil},
		{"ends before start", func(e *models.CareerEvent) { e.EndsAt = "2026-11-01T09:00:00Z" }, []string{"ends_at"}},
		{"bad start", func(e *models.CareerEvent) { e.StartsAt = "tomorrow" }, []string{"starts_at"}},
		{"bad type", func(e *models.CareerEvent) { e.EventType = "party" }, []string{"event_type"}},
		{"missing title", func(e *models.CareerEvent) { e.Title = "" }, []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			got := fields(t, ValidateEvent(e))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestErrorsFormatting(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Fatal("empty Errors should produce a nil error")
	}
	if got := errs.FormatReport(); got != "No problems found." {
		t.Errorf("FormatReport() = %q", got)
	}

	errs.Add("total_days", "must be between %d and %d", 1, 10)
	errs.Add("daily_hours", "must be greater than 0")

	if got, want := errs.Error(), "invalid input: total_days: must be between 1 and 10; daily_hours: must be greater than 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	report := errs.FormatReport()
	if !strings.Contains(report, "- total_days: must be between 1 and 10\n") || !strings.Contains(report, "- daily_hours") {
		t.Errorf("FormatReport() = %q", report)
	}
}
