package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/internal/utils"
	"github.com/julianstephens/quickhire/internal/validation"
)

// EventService manages the career events calendar. Times are stored as
// RFC3339 UTC strings so lexical order matches chronological order.
type EventService struct {
	repo storage.Repository
	now  clock
}

func NewEventService(repo storage.Repository) *EventService {
	return &EventService{repo: repo, now: time.Now}
}

func (s *EventService) Create(ctx context.Context, e models.CareerEvent) (models.CareerEvent, error) {
	if err := validation.ValidateEvent(e); err != nil {
		return models.CareerEvent{}, err
	}
	// Validation guarantees both parse.
	start, _ := time.Parse(time.RFC3339, e.StartsAt)
	end, _ := time.Parse(time.RFC3339, e.EndsAt)

	e.ID = ""
	e.StartsAt = utils.Timestamp(start)
	e.EndsAt = utils.Timestamp(end)
	e.CreatedAt = s.now.stamp()

	rec, err := s.repo.Insert(ctx, storage.TableCareerEvents, storage.Record{
		"title":       strings.TrimSpace(e.Title),
		"description": nullable(e.Description),
		"event_type":  string(e.EventType),
		"location":    nullable(e.Location),
		"starts_at":   e.StartsAt,
		"ends_at":     e.EndsAt,
		"url":         nullable(e.URL),
		"created_at":  e.CreatedAt,
	})
	if err != nil {
		return models.CareerEvent{}, fmt.Errorf("failed to save event: %w", err)
	}
	e.ID = rec.String("id")
	logger.Info("Event created", "id", e.ID, "starts_at", e.StartsAt)
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (models.CareerEvent, error) {
	rec, err := storage.First(ctx, s.repo, storage.TableCareerEvents, storage.Eq("id", id))
	if err != nil {
		return models.CareerEvent{}, fmt.Errorf("event %s: %w", id, err)
	}
	return eventFromRecord(rec), nil
}

// List returns events starting in [from, to), earliest first. A zero bound is open.
func (s *EventService) List(ctx context.Context, from, to time.Time) ([]models.CareerEvent, error) {
	var filters []storage.Filter
	if !from.IsZero() {
		filters = append(filters, storage.Gte("starts_at", utils.Timestamp(from)))
	}
	if !to.IsZero() {
		filters = append(filters, storage.Lt("starts_at", utils.Timestamp(to)))
	}
	return s.query(ctx, storage.Query{Filters: filters, Sort: []storage.Sort{storage.Asc("starts_at"), storage.Asc("id")}})
}

// Upcoming returns events that have not ended by now, earliest first.
func (s *EventService) Upcoming(ctx context.Context, now time.Time, limit int) ([]models.CareerEvent, error) {
	return s.query(ctx, storage.Query{
		Filters: []storage.Filter{storage.Gte("ends_at", utils.Timestamp(now))},
		Sort:    []storage.Sort{storage.Asc("starts_at"), storage.Asc("id")},
		Limit:   limitOrDefault(limit),
	})
}

func (s *EventService) query(ctx context.Context, q storage.Query) ([]models.CareerEvent, error) {
	rows, err := s.repo.Query(ctx, storage.TableCareerEvents, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	out := make([]models.CareerEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, eventFromRecord(r))
	}
	return out, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Remove(ctx, storage.TableCareerEvents, []storage.Filter{storage.Eq("id", id)})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return nil
}

func eventFromRecord(r storage.Record) models.CareerEvent {
	return models.CareerEvent{
		ID:          r.String("id"),
		Title:       r.String("title"),
		Description: r.String("description"),
		EventType:   models.EventType(r.String("event_type")),
		Location:    r.String("location"),
		StartsAt:    r.String("starts_at"),
		EndsAt:      r.String("ends_at"),
		URL:         r.String("url"),
		CreatedAt:   r.String("created_at"),
	}
}
