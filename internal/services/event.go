package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/metrics"
	"campusevents/internal/sanitize"
)

type eventService struct {
	repo           domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService creates an EventService over repo. Each call is bounded by timeout.
func NewEventService(repo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		repo:           repo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.repo.List(ctx)
	record("list", err)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) SearchEvents(ctx context.Context, query string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.repo.Search(ctx, query)
	record("search", err)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.repo.GetByID(ctx, id)
	record("get", err)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in = domain.EventInput{
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Date:        sanitize.Text(in.Date),
		Location:    sanitize.Text(in.Location),
		Category:    sanitize.Text(in.Category),
	}
	if err := in.Validate(); err != nil {
		record("create", err)
		return nil, err
	}
	e, err := s.repo.Create(ctx, in)
	record("create", err)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", e.ID, "title", e.Title)
	return e, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	patch = domain.EventPatch{
		Title:       sanitize.TextPtr(patch.Title),
		Description: sanitize.TextPtr(patch.Description),
		Date:        sanitize.TextPtr(patch.Date),
		Location:    sanitize.TextPtr(patch.Location),
		Category:    sanitize.TextPtr(patch.Category),
		Likes:       patch.Likes,
	}
	if err := validatePatch(patch); err != nil {
		record("update", err)
		return nil, err
	}
	e, err := s.repo.Update(ctx, id, patch)
	record("update", err)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	return e, nil
}

func validatePatch(p domain.EventPatch) error {
	var empty []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"date", p.Date},
		{"location", p.Location},
		{"category", p.Category},
	} {
		if f.value != nil && *f.value == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return &domain.FieldError{Fields: empty, Reason: "must not be empty"}
	}
	if p.Likes != nil && *p.Likes < 0 {
		return &domain.FieldError{Fields: []string{"likes"}, Reason: "must not be negative"}
	}
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.repo.Delete(ctx, id)
	record("delete", err)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete event %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return true, nil
}

// LikeEvent increments likes through an ordinary update. Concurrent likes on the
// same event may be lost; the store offers no compare-and-set.
func (s *eventService) LikeEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		record("like", err)
		return nil, fmt.Errorf("like event %d: %w", id, err)
	}
	likes := e.Likes + 1
	e, err = s.repo.Update(ctx, id, domain.EventPatch{Likes: &likes})
	record("like", err)
	if err != nil {
		return nil, fmt.Errorf("like event %d: %w", id, err)
	}
	return e, nil
}

func (s *eventService) Stats(ctx context.Context) (*domain.EventStats, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(events, s.now()), nil
}

func computeStats(events []*domain.Event, now time.Time) *domain.EventStats {
	st := &domain.EventStats{
		TotalEvents: len(events),
		Categories:  make(map[string]int),
	}
	if len(events) == 0 {
		return st
	}
	today := now.UTC().Format("2006-01-02")
	st.MostLiked = events[0]
	for _, e := range events {
		st.TotalLikes += e.Likes
		st.Categories[e.Category]++
		if e.Likes > st.MostLiked.Likes {
			st.MostLiked = e
		}
		if e.Date >= today {
			st.UpcomingEvents++
		}
	}
	st.AverageLikes = math.Round(float64(st.TotalLikes)/float64(len(events))*10) / 10
	st.MostRecent = events[len(events)-1]
	return st
}

func (s *eventService) PreviousEvents(_ context.Context) []domain.PreviousEvent {
	out := make([]domain.PreviousEvent, len(previousEvents))
	copy(out, previousEvents)
	return out
}

func (s *eventService) StoreStatus(ctx context.Context) domain.StoreStatus {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	st := s.repo.Status(ctx)
	if st.State == domain.StoreDegraded {
		metrics.StoreDegraded.Set(1)
		s.logger.WarnContext(ctx, "event store degraded", "driver", st.Driver, "err", st.LastError)
	} else {
		metrics.StoreDegraded.Set(0)
	}
	return st
}

func record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(op, result).Inc()
}

var previousEvents = []domain.PreviousEvent{
	{ID: 101, Title: "Winter Festival 2024", Date: "December 15, 2024", Description: "Amazing winter celebration with lights, music, and food stalls", Image: "🎄", Attendees: 450},
	{ID: 102, Title: "Global Culture Day", Date: "November 20, 2024", Description: "Students showcased cultures from around the world", Image: "🌍", Attendees: 380},
	{ID: 103, Title: "Sports Tournament Finals", Date: "October 28, 2024", Description: "Intense basketball and soccer finals with record attendance", Image: "🏆", Attendees: 520},
	{ID: 104, Title: "Coding Hackathon 2024", Date: "September 15, 2024", Description: "24-hour coding marathon with prizes for best projects", Image: "💻", Attendees: 150},
}
