package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/internal/validation"
)

// ExperienceService manages shared interview experiences.
type ExperienceService struct {
	repo storage.Repository
	now  clock
}

func NewExperienceService(repo storage.Repository) *ExperienceService {
	return &ExperienceService{repo: repo, now: time.Now}
}

func (s *ExperienceService) Create(ctx context.Context, e models.Experience) (models.Experience, error) {
	if err := validation.ValidateExperience(e); err != nil {
		return models.Experience{}, err
	}
	e.ID = ""
	e = trimExperience(e)
	e.CreatedAt = s.now.stamp()
	e.UpdatedAt = e.CreatedAt

	rec, err := s.repo.Insert(ctx, storage.TableExperiences, experienceRecord(e))
	if err != nil {
		return models.Experience{}, fmt.Errorf("failed to save experience: %w", err)
	}
	e.ID = rec.String("id")
	logger.Info("Experience created", "id", e.ID, "company", e.Company)
	return e, nil
}

func (s *ExperienceService) Get(ctx context.Context, id string) (models.Experience, error) {
	rec, err := storage.First(ctx, s.repo, storage.TableExperiences, storage.Eq("id", id))
	if err != nil {
		return models.Experience{}, fmt.Errorf("experience %s: %w", id, err)
	}
	return experienceFromRecord(rec)
}

// List returns experiences newest first. Company and role match as
// case-insensitive substrings.
func (s *ExperienceService) List(ctx context.Context, f models.ExperienceFilter) ([]models.Experience, error) {
	var filters []storage.Filter
	if c := strings.TrimSpace(f.Company); c != "" {
		filters = append(filters, storage.Like("company", c))
	}
	if r := strings.TrimSpace(f.Role); r != "" {
		filters = append(filters, storage.Like("role", r))
	}
	if f.Result != "" {
		filters = append(filters, storage.Eq("result", string(f.Result)))
	}

	rows, err := s.repo.Query(ctx, storage.TableExperiences, storage.Query{
		Filters: filters,
		Sort:    []storage.Sort{storage.Desc("created_at"), storage.Desc("id")},
		Limit:   limitOrDefault(f.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}

	out := make([]models.Experience, 0, len(rows))
	for _, r := range rows {
		e, err := experienceFromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Update replaces every editable field of an existing experience.
func (s *ExperienceService) Update(ctx context.Context, e models.Experience) (models.Experience, error) {
	if err := validation.ValidateExperience(e); err != nil {
		return models.Experience{}, err
	}
	existing, err := s.Get(ctx, e.ID)
	if err != nil {
		return models.Experience{}, err
	}

	e = trimExperience(e)
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.now.stamp()
	changes := experienceRecord(e)
	delete(changes, "id")
	delete(changes, "created_at")

	if _, err := s.repo.Update(ctx, storage.TableExperiences, []storage.Filter{storage.Eq("id", e.ID)}, changes); err != nil {
		return models.Experience{}, fmt.Errorf("failed to update experience: %w", err)
	}
	return e, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Remove(ctx, storage.TableExperiences, []storage.Filter{storage.Eq("id", id)})
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("experience %s: %w", id, ErrNotFound)
	}
	return nil
}

func trimExperience(e models.Experience) models.Experience {
	e.Company = strings.TrimSpace(e.Company)
	e.Role = strings.TrimSpace(e.Role)
	return e
}

func experienceRecord(e models.Experience) storage.Record {
	rec := storage.Record{
		"company":         e.Company,
		"role":            e.Role,
		"experience_date": nullable(e.ExperienceDate),
		"result":          string(e.Result),
		"difficulty":      string(e.Difficulty),
		"summary":         nullable(e.Summary),
		"author":          nullable(e.Author),
		"rounds":          nonNil(e.Rounds),
		"created_at":      e.CreatedAt,
		"updated_at":      e.UpdatedAt,
	}
	if e.ID != "" {
		rec["id"] = e.ID
	}
	return rec
}

func experienceFromRecord(r storage.Record) (models.Experience, error) {
	e := models.Experience{
		ID:             r.String("id"),
		Company:        r.String("company"),
		Role:           r.String("role"),
		ExperienceDate: r.String("experience_date"),
		Result:         models.ExperienceResult(r.String("result")),
		Difficulty:     models.Difficulty(r.String("difficulty")),
		Summary:        r.String("summary"),
		Author:         r.String("author"),
		CreatedAt:      r.String("created_at"),
		UpdatedAt:      r.String("updated_at"),
	}
	if err := r.Decode("rounds", &e.Rounds); err != nil {
		return models.Experience{}, err
	}
	return e, nil
}

// nullable stores empty optional text as NULL.
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
