package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dritonsh/cimerat/internal/storage"
)

// stateKey is the snapshot key for the activity feed.
const stateKey = "cimerat.activity.state"

// Service owns the activity feed: an insertion-ordered, most-recent-first
// list of events. Appends are synchronous; persistence is best-effort.
type Service struct {
	mu     sync.Mutex
	events []Event
	store  storage.Store
}

// NewService creates the activity service, hydrating the feed from the store.
// A missing or unreadable snapshot starts an empty feed; it never fails.
func NewService(store storage.Store) *Service {
	s := &Service{store: store}

	raw, ok, err := store.Load(context.Background(), stateKey)
	if err != nil {
		slog.Warn("failed to load activity snapshot, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		slog.Warn("corrupt activity snapshot, starting empty", "error", err)
		return s
	}
	s.events = events

	return s
}

// Log appends one event built from the record. The event id and timestamp are
// assigned here; the display message is rendered by the package formatter.
func (s *Service) Log(ctx context.Context, rec Record) {
	event := Event{
		ID:        uuid.NewString(),
		FlatID:    rec.FlatID,
		Type:      rec.Type,
		Message:   formatMessage(rec),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.events = append([]Event{event}, s.events...)
	s.persist(ctx)
	s.mu.Unlock()
}

// List returns the events for one flat, most recent first.
func (s *Service) List(flatID string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []Event
	for _, event := range s.events {
		if event.FlatID == flatID {
			events = append(events, event)
		}
	}
	return events
}

// persist saves the feed snapshot. Failures are logged and swallowed; event
// delivery is fire-and-forget and never blocks the mutation that caused it.
// Callers must hold s.mu.
func (s *Service) persist(ctx context.Context) {
	raw, err := json.Marshal(s.events)
	if err != nil {
		slog.Warn("failed to marshal activity snapshot", "error", err)
		return
	}
	if err := s.store.Save(ctx, stateKey, raw); err != nil {
		slog.Warn("failed to save activity snapshot", "error", err)
	}
}
