package domain

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for event operations.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Event represents a campus event
// swagger:model Event
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
	Location    string `json:"location"`
	Category    string `json:"category"`
	Likes       int    `json:"likes"`
}

// Matches reports whether query is a case-insensitive substring of the
// title, description or category. An empty query matches everything.
func (e *Event) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.Category), q)
}

// Clone returns a copy of e that shares no state with it.
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// EventInput holds the client-supplied fields of a new event. ID and Likes are
// always assigned by the store.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	Category    string
}

// Validate reports the names of required fields that are empty.
func (in EventInput) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"date", in.Date},
		{"location", in.Location},
		{"category", in.Category},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &FieldError{Fields: missing, Reason: "is required"}
	}
	return nil
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Location    *string
	Category    *string
	Likes       *int
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.Location == nil && p.Category == nil && p.Likes == nil
}

// Apply merges the non-nil fields of p into e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Likes != nil {
		e.Likes = *p.Likes
	}
}

// NextEventID returns max(id)+1 over events, but never less than floor+1, so ids
// stay unique after the highest event is deleted. Do not derive ids from len(events).
func NextEventID(events []*Event, floor int64) int64 {
	max := floor
	for _, e := range events {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// StoreStatus describes the health of an event store's backing storage.
type StoreStatus struct {
	State     string `json:"state"` // healthy, empty or degraded
	Driver    string `json:"driver"`
	LastError string `json:"last_error,omitempty"`
}

// Store states reported by StoreStatus.
const (
	StoreHealthy  = "healthy"
	StoreEmpty    = "empty"
	StoreDegraded = "degraded"
)

// EventRepository defines the interface for event storage.
// Create must assign an id greater than every id the store has handed out.
type EventRepository interface {
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	Search(ctx context.Context, query string) ([]*Event, error)
	Create(ctx context.Context, in EventInput) (*Event, error)
	Update(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id int64) error
	Status(ctx context.Context) StoreStatus
}

// EventStats is the dashboard summary over the whole collection.
// swagger:model EventStats
type EventStats struct {
	TotalEvents    int            `json:"total_events"`
	TotalLikes     int            `json:"total_likes"`
	AverageLikes   float64        `json:"average_likes"`
	Categories     map[string]int `json:"categories"`
	MostLiked      *Event         `json:"most_liked"`
	MostRecent     *Event         `json:"most_recent"`
	UpcomingEvents int            `json:"upcoming_events"`
}

// PreviousEvent is a highlight of an event that already took place.
// swagger:model PreviousEvent
type PreviousEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Attendees   int    `json:"attendees"`
}

// EventService defines the business logic for browsing and managing events.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	SearchEvents(ctx context.Context, query string) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
	LikeEvent(ctx context.Context, id int64) (*Event, error)
	Stats(ctx context.Context) (*EventStats, error)
	PreviousEvents(ctx context.Context) []PreviousEvent
	StoreStatus(ctx context.Context) StoreStatus
}
