// Package memory provides an EventRepository that lives for the lifetime of the process.
package memory

import (
	"context"
	"sync"

	"campusevents/internal/domain"
)

type eventRepository struct {
	mu     sync.Mutex
	events []*domain.Event
	lastID int64
}

// NewEventRepository returns an in-memory EventRepository seeded with copies of seed.
// Each call owns its own collection.
func NewEventRepository(seed []*domain.Event) domain.EventRepository {
	r := &eventRepository{events: make([]*domain.Event, 0, len(seed))}
	for _, e := range seed {
		r.events = append(r.events, e.Clone())
		if e.ID > r.lastID {
			r.lastID = e.ID
		}
	}
	return r
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.Search(ctx, "")
}

func (r *eventRepository) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.events[i].Clone(), nil
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) Search(_ context.Context, query string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if e.Matches(query) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *eventRepository) Create(_ context.Context, in domain.EventInput) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &domain.Event{
		ID:          domain.NextEventID(r.events, r.lastID),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		Category:    in.Category,
		Likes:       0,
	}
	r.lastID = e.ID
	r.events = append(r.events, e)
	return e.Clone(), nil
}

func (r *eventRepository) Update(_ context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	patch.Apply(r.events[i])
	return r.events[i].Clone(), nil
}

func (r *eventRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

func (r *eventRepository) Status(_ context.Context) domain.StoreStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := domain.StoreHealthy
	if len(r.events) == 0 {
		state = domain.StoreEmpty
	}
	return domain.StoreStatus{State: state, Driver: "memory"}
}

func (r *eventRepository) indexOf(id int64) int {
	for i, e := range r.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
