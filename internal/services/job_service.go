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

// JobService manages job listings.
type JobService struct {
	repo storage.Repository
	now  clock
}

func NewJobService(repo storage.Repository) *JobService {
	return &JobService{repo: repo, now: time.Now}
}

func (s *JobService) Create(ctx context.Context, j models.JobListing) (models.JobListing, error) {
	if err := validation.ValidateJob(j); err != nil {
		return models.JobListing{}, err
	}
	j.ID = ""
	j.Company = strings.TrimSpace(j.Company)
	j.Title = strings.TrimSpace(j.Title)
	j.CreatedAt = s.now.stamp()
	j.Tags = normalizeTags(j.Tags)

	rec, err := s.repo.Insert(ctx, storage.TableJobListings, storage.Record{
		"company":          j.Company,
		"title":            j.Title,
		"location":         nullable(j.Location),
		"job_type":         string(j.JobType),
		"experience_level": nullable(j.ExperienceLevel),
		"description":      nullable(j.Description),
		"apply_url":        nullable(j.ApplyURL),
		"tags":             j.Tags,
		"posted_at":        nullable(j.PostedAt),
		"created_at":       j.CreatedAt,
	})
	if err != nil {
		return models.JobListing{}, fmt.Errorf("failed to save job listing: %w", err)
	}
	j.ID = rec.String("id")
	logger.Info("Job listing created", "id", j.ID, "company", j.Company)
	return j, nil
}

func (s *JobService) Get(ctx context.Context, id string) (models.JobListing, error) {
	rec, err := storage.First(ctx, s.repo, storage.TableJobListings, storage.Eq("id", id))
	if err != nil {
		return models.JobListing{}, fmt.Errorf("job %s: %w", id, err)
	}
	return jobFromRecord(rec)
}

// List returns listings newest first. Keyword searches title, company,
// description and tags.
func (s *JobService) List(ctx context.Context, f models.JobFilter) ([]models.JobListing, error) {
	var filters []storage.Filter
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		filters = append(filters, storage.Or(
			storage.Like("title", kw),
			storage.Like("company", kw),
			storage.Like("description", kw),
			storage.Like("tags", kw),
		))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		filters = append(filters, storage.Like("location", loc))
	}
	if f.JobType != "" {
		filters = append(filters, storage.Eq("job_type", string(f.JobType)))
	}
	if lvl := strings.TrimSpace(f.ExperienceLevel); lvl != "" {
		filters = append(filters, storage.Like("experience_level", lvl))
	}

	rows, err := s.repo.Query(ctx, storage.TableJobListings, storage.Query{
		Filters: filters,
		Sort:    []storage.Sort{storage.Desc("created_at"), storage.Desc("id")},
		Limit:   limitOrDefault(f.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	out := make([]models.JobListing, 0, len(rows))
	for _, r := range rows {
		j, err := jobFromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Remove(ctx, storage.TableJobListings, []storage.Filter{storage.Eq("id", id)})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

func jobFromRecord(r storage.Record) (models.JobListing, error) {
	j := models.JobListing{
		ID:              r.String("id"),
		Company:         r.String("company"),
		Title:           r.String("title"),
		Location:        r.String("location"),
		JobType:         models.JobType(r.String("job_type")),
		ExperienceLevel: r.String("experience_level"),
		Description:     r.String("description"),
		ApplyURL:        r.String("apply_url"),
		PostedAt:        r.String("posted_at"),
		CreatedAt:       r.String("created_at"),
	}
	if err := r.Decode("tags", &j.Tags); err != nil {
		return models.JobListing{}, err
	}
	return j, nil
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
