// Package jsonfile provides an EventRepository persisted as a single JSON document.
//
// The whole collection is re-read on every call and rewritten on every mutation.
// A missing file reads as an empty collection. An unreadable or malformed file also
// reads as empty, but the repository is marked degraded and a warning is logged so
// the two cases can be told apart. Writes are guarded per instance only; there is no
// protection against other processes writing the same file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"campusevents/internal/domain"
)

const filePerm = 0o644

type eventRepository struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	lastID  int64
	readErr error // set when the last read found an unusable file
}

// NewEventRepository returns a file-backed EventRepository at path.
func NewEventRepository(path string, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{path: path, logger: logger}
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.Search(ctx, "")
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	if i := indexOf(events, id); i >= 0 {
		return events[i], nil
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) Search(ctx context.Context, query string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	if query == "" {
		return events, nil
	}
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventRepository) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	e := &domain.Event{
		ID:          domain.NextEventID(events, r.lastID),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		Category:    in.Category,
		Likes:       0,
	}
	events = append(events, e)
	if err := r.write(ctx, events); err != nil {
		return nil, err
	}
	r.lastID = e.ID
	return e.Clone(), nil
}

func (r *eventRepository) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	i := indexOf(events, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	patch.Apply(events[i])
	if err := r.write(ctx, events); err != nil {
		return nil, err
	}
	return events[i].Clone(), nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	i := indexOf(events, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	events = append(events[:i], events[i+1:]...)
	return r.write(ctx, events)
}

func (r *eventRepository) Status(ctx context.Context) domain.StoreStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.read(ctx)
	st := domain.StoreStatus{State: domain.StoreHealthy, Driver: "file"}
	switch {
	case r.readErr != nil:
		st.State = domain.StoreDegraded
		st.LastError = r.readErr.Error()
	case len(events) == 0:
		st.State = domain.StoreEmpty
	}
	return st
}

// read loads the collection, degrading to empty on any failure. Callers hold r.mu.
func (r *eventRepository) read(ctx context.Context) []*domain.Event {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.readErr = nil
		return []*domain.Event{}
	}
	if err != nil {
		r.degrade(ctx, fmt.Errorf("read events file: %w", err))
		return []*domain.Event{}
	}
	var events []*domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		r.degrade(ctx, fmt.Errorf("parse events file: %w", err))
		return []*domain.Event{}
	}
	r.readErr = nil
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e)
		}
	}
	if max := domain.NextEventID(out, 0) - 1; max > r.lastID {
		r.lastID = max
	}
	return out
}

func (r *eventRepository) degrade(ctx context.Context, err error) {
	r.readErr = err
	r.logger.WarnContext(ctx, "events file unusable, serving empty collection", "path", r.path, "err", err)
}

// write replaces the file with the full collection. Callers hold r.mu.
// An unreadable file is moved aside first so its contents are not lost.
func (r *eventRepository) write(ctx context.Context, events []*domain.Event) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create events dir: %w", err)
	}
	if r.readErr != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", r.path, time.Now().Unix())
		if err := os.Rename(r.path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("move unreadable events file aside: %w", err)
		}
		r.logger.WarnContext(ctx, "moved unreadable events file aside", "path", r.path, "backup", backup)
		r.readErr = nil
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := os.WriteFile(r.path, data, filePerm); err != nil {
		return fmt.Errorf("write events file: %w", err)
	}
	return nil
}

func indexOf(events []*domain.Event, id int64) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
