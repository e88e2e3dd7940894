package flat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dritonsh/cimerat/internal/storage"
)

// stateKey is the snapshot key for flat state.
const stateKey = "cimerat.flat.state"

// Common errors
var (
	ErrFlatNotFound = errors.New("flat not found")
)

// defaultMembers seeds a flat when the caller does not name any roommates.
var defaultMembers = []string{"Arber", "Mark", "Driton"}

// seedFlat makes a fresh install usable without any setup.
var seedFlat = Flat{
	ID:      "flat-seed-1",
	Name:    "Dorm 12A",
	Code:    "CIM-123",
	Members: []string{"Arber", "Mark", "Driton"},
}

// Service owns the flats: an insertion-ordered, most-recent-first list.
type Service struct {
	mu    sync.Mutex
	flats []*Flat
	store storage.Store
}

// NewService creates the flat service, hydrating state from the store. An
// empty or unreadable snapshot starts with the seed flat.
func NewService(store storage.Store) *Service {
	s := &Service{store: store}

	raw, ok, err := store.Load(context.Background(), stateKey)
	if err != nil {
		slog.Warn("failed to load flat snapshot, starting from seed", "error", err)
	} else if ok {
		var flats []*Flat
		if err := json.Unmarshal(raw, &flats); err != nil {
			slog.Warn("corrupt flat snapshot, starting from seed", "error", err)
		} else {
			s.flats = flats
		}
	}

	if len(s.flats) == 0 {
		seed := seedFlat
		seed.CreatedAt = time.Now().UTC()
		s.flats = []*Flat{&seed}
	}

	return s
}

// Create makes a new flat. A blank name falls back to "My Flat" and an empty
// member list falls back to the default roommates; duplicate member names are
// dropped, keeping first occurrence order.
func (s *Service) Create(ctx context.Context, req *CreateFlatRequest) (*Flat, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "My Flat"
	}

	members := dedupe(req.Members)
	if len(members) == 0 {
		members = append([]string(nil), defaultMembers...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := &Flat{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      s.newCode(),
		Members:   members,
		CreatedAt: time.Now().UTC(),
	}

	s.flats = append([]*Flat{f}, s.flats...)
	s.persist(ctx)

	return f, nil
}

// Join finds the flat with the given join code, case-insensitively.
func (s *Service) Join(code string) (*Flat, error) {
	clean := strings.ToUpper(strings.TrimSpace(code))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.flats {
		if strings.ToUpper(f.Code) == clean {
			return f, nil
		}
	}
	return nil, ErrFlatNotFound
}

// Get retrieves a flat by id. Returns nil when the id is unknown.
func (s *Service) Get(id string) *Flat {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.flats {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// List returns all flats, most recent first.
func (s *Service) List() []*Flat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*Flat(nil), s.flats...)
}

// newCode generates a join code that no existing flat uses. Callers must hold
// s.mu.
func (s *Service) newCode() string {
	for {
		code := fmt.Sprintf("CIM-%d", 100+rand.IntN(900))
		taken := false
		for _, f := range s.flats {
			if strings.EqualFold(f.Code, code) {
				taken = true
				break
			}
		}
		if !taken {
			return code
		}
	}
}

// persist saves the flat snapshot, best-effort. Callers must hold s.mu.
func (s *Service) persist(ctx context.Context) {
	raw, err := json.Marshal(s.flats)
	if err != nil {
		slog.Warn("failed to marshal flat snapshot", "error", err)
		return
	}
	if err := s.store.Save(ctx, stateKey, raw); err != nil {
		slog.Warn("failed to save flat snapshot", "error", err)
	}
}

func dedupe(members []string) []string {
	seen := make(map[string]struct{}, len(members))
	var out []string
	for _, member := range members {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		if _, ok := seen[member]; ok {
			continue
		}
		seen[member] = struct{}{}
		out = append(out, member)
	}
	return out
}
