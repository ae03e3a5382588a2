package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/storage"
)

// PlanService persists generated plans and tracks per-day completion.
type PlanService struct {
	repo storage.Repository
	now  clock
}

func NewPlanService(repo storage.Repository) *PlanService {
	return &PlanService{repo: repo, now: time.Now}
}

// Save writes the plan row and one row per day. On repositories that support
// transactions the rows commit together. Elsewhere, rows already written are
// removed when a day fails; if that cleanup fails too the error also matches
// ErrPartialSave.
func (s *PlanService) Save(ctx context.Context, plan models.GeneratedPlan) (models.StudyPlan, error) {
	if len(plan.Days) == 0 {
		return models.StudyPlan{}, errors.New("cannot save a plan with no days")
	}

	var saved models.StudyPlan
	atomic, err := storage.Atomically(ctx, s.repo, func(repo storage.Repository) error {
		var err error
		saved, err = s.insertPlan(ctx, repo, plan)
		return err
	})
	if err != nil {
		if atomic || saved.ID == "" {
			return models.StudyPlan{}, err
		}
		if cleanupErr := s.discard(ctx, saved.ID); cleanupErr != nil {
			logger.Error("Plan cleanup failed after partial save", "plan", saved.ID, "error", cleanupErr)
			return models.StudyPlan{}, fmt.Errorf("%w: %w (cleanup: %v)", ErrPartialSave, err, cleanupErr)
		}
		return models.StudyPlan{}, err
	}

	logger.Info("Plan saved", "id", saved.ID, "technology", saved.Technology, "days", len(saved.Days))
	return saved, nil
}

// insertPlan writes the plan and its days through repo. The returned plan
// carries its id as soon as the plan row exists, even when a day fails.
func (s *PlanService) insertPlan(ctx context.Context, repo storage.Repository, plan models.GeneratedPlan) (models.StudyPlan, error) {
	saved := models.StudyPlan{
		Title:            plan.Title,
		Technology:       plan.Technology,
		TotalDays:        plan.TotalDays,
		DailyHours:       plan.DailyHours,
		ExplanationLevel: plan.ExplanationLevel,
		CreatedAt:        s.now.stamp(),
	}

	rec, err := repo.Insert(ctx, storage.TableStudyPlans, planRecord(saved))
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	saved.ID = rec.String("id")

	for _, day := range plan.Days {
		day.IsCompleted = false
		day.CompletedAt = nil
		dayRec, err := repo.Insert(ctx, storage.TablePlanDays, dayRecord(saved.ID, day))
		if err != nil {
			return saved, fmt.Errorf("failed to save day %d of plan %s: %w", day.DayNumber, saved.ID, err)
		}
		day.ID = dayRec.String("id")
		saved.Days = append(saved.Days, day)
	}
	return saved, nil
}

// discard hard-deletes a plan and its days.
func (s *PlanService) discard(ctx context.Context, planID string) error {
	if _, err := s.repo.Remove(ctx, storage.TablePlanDays, []storage.Filter{storage.Eq("plan_id", planID)}); err != nil {
		return fmt.Errorf("failed to remove days: %w", err)
	}
	if _, err := s.repo.Remove(ctx, storage.TableStudyPlans, []storage.Filter{storage.Eq("id", planID)}); err != nil {
		return fmt.Errorf("failed to remove plan: %w", err)
	}
	return nil
}

// List returns saved plans newest first, without their days.
func (s *PlanService) List(ctx context.Context, includeDeleted bool) ([]models.StudyPlan, error) {
	q := storage.Query{Sort: []storage.Sort{storage.Desc("created_at"), storage.Desc("id")}}
	if !includeDeleted {
		q.Filters = append(q.Filters, storage.IsNull("deleted_at"))
	}
	rows, err := s.repo.Query(ctx, storage.TableStudyPlans, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	plans := make([]models.StudyPlan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, planFromRecord(r))
	}
	return plans, nil
}

// Get returns a live plan with its days ordered by day number.
func (s *PlanService) Get(ctx context.Context, id string) (models.StudyPlan, error) {
	rec, err := storage.First(ctx, s.repo, storage.TableStudyPlans, storage.Eq("id", id), storage.IsNull("deleted_at"))
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("plan %s: %w", id, err)
	}
	plan := planFromRecord(rec)

	rows, err := s.repo.Query(ctx, storage.TablePlanDays, storage.Query{
		Filters: []storage.Filter{storage.Eq("plan_id", id)},
		Sort:    []storage.Sort{storage.Asc("day_number")},
	})
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("failed to load days of plan %s: %w", id, err)
	}
	for _, r := range rows {
		day, err := dayFromRecord(r)
		if err != nil {
			return models.StudyPlan{}, err
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

// Delete soft-deletes a live plan.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Update(ctx, storage.TableStudyPlans,
		[]storage.Filter{storage.Eq("id", id), storage.IsNull("deleted_at")},
		storage.Record{"deleted_at": s.now.stamp()})
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// Restore undoes a soft delete.
func (s *PlanService) Restore(ctx context.Context, id string) error {
	n, err := s.repo.Update(ctx, storage.TableStudyPlans,
		[]storage.Filter{storage.Eq("id", id), storage.NotNull("deleted_at")},
		storage.Record{"deleted_at": nil})
	if err != nil {
		return fmt.Errorf("failed to restore plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleted plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetDayCompleted marks one day done or not done and returns the updated day.
func (s *PlanService) SetDayCompleted(ctx context.Context, planID string, dayNumber int, done bool) (models.PlanDay, error) {
	if _, err := storage.First(ctx, s.repo, storage.TableStudyPlans, storage.Eq("id", planID), storage.IsNull("deleted_at")); err != nil {
		return models.PlanDay{}, fmt.Errorf("plan %s: %w", planID, err)
	}

	changes := storage.Record{"is_completed": done, "completed_at": nil}
	if done {
		changes["completed_at"] = s.now.stamp()
	}
	filters := []storage.Filter{storage.Eq("plan_id", planID), storage.Eq("day_number", dayNumber)}
	n, err := s.repo.Update(ctx, storage.TablePlanDays, filters, changes)
	if err != nil {
		return models.PlanDay{}, fmt.Errorf("failed to update day %d: %w", dayNumber, err)
	}
	if n == 0 {
		return models.PlanDay{}, fmt.Errorf("day %d of plan %s: %w", dayNumber, planID, ErrNotFound)
	}

	rec, err := storage.First(ctx, s.repo, storage.TablePlanDays, filters...)
	if err != nil {
		return models.PlanDay{}, err
	}
	return dayFromRecord(rec)
}

// Progress summarizes completion of a live plan.
func (s *PlanService) Progress(ctx context.Context, id string) (models.PlanProgress, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return models.PlanProgress{}, err
	}
	return Summarize(plan), nil
}

// Summarize computes progress from a loaded plan.
func Summarize(plan models.StudyPlan) models.PlanProgress {
	p := models.PlanProgress{PlanID: plan.ID, TotalDays: len(plan.Days)}
	for _, d := range plan.Days {
		p.TotalHours += d.EstimatedHours
		if d.IsCompleted {
			p.CompletedDays++
			p.CompletedHours += d.EstimatedHours
		} else if p.NextDay == 0 {
			p.NextDay = d.DayNumber
		}
	}
	if p.TotalDays > 0 {
		p.Percent = float64(p.CompletedDays) / float64(p.TotalDays) * 100
	}
	return p
}

func planRecord(p models.StudyPlan) storage.Record {
	return storage.Record{
		"title":             p.Title,
		"technology":        p.Technology,
		"total_days":        p.TotalDays,
		"daily_hours":       p.DailyHours,
		"explanation_level": string(p.ExplanationLevel),
		"created_at":        p.CreatedAt,
	}
}

func planFromRecord(r storage.Record) models.StudyPlan {
	return models.StudyPlan{
		ID:               r.String("id"),
		Title:            r.String("title"),
		Technology:       r.String("technology"),
		TotalDays:        r.Int("total_days"),
		DailyHours:       r.Float("daily_hours"),
		ExplanationLevel: models.ExplanationLevel(r.String("explanation_level")),
		CreatedAt:        r.String("created_at"),
		DeletedAt:        r.StringPtr("deleted_at"),
	}
}

func dayRecord(planID string, d models.PlanDay) storage.Record {
	return storage.Record{
		"plan_id":            planID,
		"day_number":         d.DayNumber,
		"title":              d.Title,
		"concepts":           nonNil(d.Concepts),
		"resources":          nonNil(d.Resources),
		"practice_questions": nonNil(d.PracticeQuestions),
		"estimated_hours":    d.EstimatedHours,
		"is_completed":       d.IsCompleted,
		"completed_at":       d.CompletedAt,
	}
}

func dayFromRecord(r storage.Record) (models.PlanDay, error) {
	d := models.PlanDay{
		ID:             r.String("id"),
		DayNumber:      r.Int("day_number"),
		Title:          r.String("title"),
		EstimatedHours: r.Float("estimated_hours"),
		IsCompleted:    r.Bool("is_completed"),
		CompletedAt:    r.StringPtr("completed_at"),
	}
	for key, dst := range map[string]any{
		"concepts":           &d.Concepts,
		"resources":          &d.Resources,
		"practice_questions": &d.PracticeQuestions,
	} {
		if err := r.Decode(key, dst); err != nil {
			return models.PlanDay{}, err
		}
	}
	return d, nil
}

// nonNil keeps JSON columns as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
