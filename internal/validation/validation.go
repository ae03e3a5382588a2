// Package validation checks user input before it reaches the generator or storage.
package validation

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/models"
)

// ErrInvalid matches any Errors value with errors.Is.
var ErrInvalid = errors.New("invalid input")

// FieldError is a single problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every problem found in one input.
type Errors []FieldError

func (e *Errors) Add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasProblems returns true if any field failed validation
func (e Errors) HasProblems() bool {
	return len(e) > 0
}

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// FormatReport returns a human-readable, one problem per line report.
func (e Errors) FormatReport() string {
	if !e.HasProblems() {
		return "No problems found."
	}
	var sb strings.Builder
	sb.WriteString("Invalid input:\n")
	for _, fe := range e {
		fmt.Fprintf(&sb, "- %s: %s\n", fe.Field, fe.Message)
	}
	return sb.String()
}

// Err returns nil when there are no problems, so callers can return it directly.
func (e Errors) Err() error {
	if !e.HasProblems() {
		return nil
	}
	return e
}

func required(errs *Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "is required")
	}
}

func oneOf[T ~string](errs *Errors, field string, value T, allowed []T) {
	if !slices.Contains(allowed, value) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		errs.Add(field, "must be one of %s, got %q", strings.Join(names, ", "), string(value))
	}
}

func httpURL(errs *Errors, field, value string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add(field, "must be an absolute http(s) URL")
	}
}

func date(errs *Errors, field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		errs.Add(field, "must be a date in YYYY-MM-DD format")
	}
}

// ValidatePlanConfig enforces the plan size and hour bounds. Technology and
// level are not checked here: unknown values fall back to defaults.
func ValidatePlanConfig(cfg models.PlanConfig) error {
	var errs Errors
	if cfg.TotalDays < constants.MinPlanDays || cfg.TotalDays > constants.MaxPlanDays {
		errs.Add("total_days", "must be between %d and %d, got %d", constants.MinPlanDays, constants.MaxPlanDays, cfg.TotalDays)
	}
	switch {
	case math.IsNaN(cfg.DailyHours) || math.IsInf(cfg.DailyHours, 0):
		errs.Add("daily_hours", "must be a finite number")
	case cfg.DailyHours <= 0:
		errs.Add("daily_hours", "must be greater than 0")
	case cfg.DailyHours > 24:
		errs.Add("daily_hours", "cannot exceed 24")
	}
	return errs.Err()
}

func ValidateExperience(e models.Experience) error {
	var errs Errors
	required(&errs, "company", e.Company)
	required(&errs, "role", e.Role)
	oneOf(&errs, "result", e.Result, models.ExperienceResults)
	oneOf(&errs, "difficulty", e.Difficulty, models.Difficulties)
	date(&errs, "experience_date", e.ExperienceDate)
	if len(e.Rounds) == 0 {
		errs.Add("rounds", "at least one interview round is required")
	}
	for i, r := range e.Rounds {
		if strings.TrimSpace(r.Name) == "" {
			errs.Add(fmt.Sprintf("rounds[%d].name", i), "is required")
		}
	}
	return errs.Err()
}

func ValidateJob(j models.JobListing) error {
	var errs Errors
	required(&errs, "company", j.Company)
	required(&errs, "title", j.Title)
	oneOf(&errs, "job_type", j.JobType, models.JobTypes)
	httpURL(&errs, "apply_url", j.ApplyURL)
	date(&errs, "posted_at", j.PostedAt)
	return errs.Err()
}

func ValidateEvent(e models.CareerEvent) error {
	var errs Errors
	required(&errs, "title", e.Title)
	oneOf(&errs, "event_type", e.EventType, models.EventTypes)
	httpURL(&errs, "url", e.URL)

	start, startErr := time.Parse(time.RFC3339, e.StartsAt)
	if startErr != nil {
		errs.Add("starts_at", "must be an RFC3339 timestamp")
	}
	end, endErr := time.Parse(time.RFC3339, e.EndsAt)
	if endErr != nil {
		errs.Add("ends_at", "must be an RFC3339 timestamp")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs.Add("ends_at", "must not be before starts_at")
	}
	return errs.Err()
}
