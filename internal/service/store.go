// Package service contains the business logic for the itinerary planner.
// The Store owns the single itinerary document, validates every mutation,
// and persists the whole document through a repo.StateRepo after each change.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// DefaultKey is the document key used when Options.Key is empty.
const DefaultKey = "vacationData"

// Options configures a Store.
type Options struct {
	// Key names the persisted document. Defaults to DefaultKey.
	Key string

	// RequireArrivalDate rejects saving a destination without an arrival date.
	RequireArrivalDate bool

	// Now returns the current time; ids are derived from it. Defaults to time.Now.
	Now func() time.Time

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the single owner of the itinerary. All entry points are serialized:
// one mutation is applied and persisted before the next one starts.
//
// Mutations are prepared on a copy of the document and only become visible
// once the copy has been saved, so a failed write leaves the store unchanged.
type Store struct {
	repo   repo.StateRepo
	key    string
	strict bool
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	state    domain.State
	filter   itinerary.Filter
	drafts   map[string]stagedDraft
	draftSeq uint64
	lastID   int64
}

// NewStore loads the document stored under opts.Key and returns a Store
// serving it. A missing document starts an empty itinerary. A document that
// cannot be parsed is discarded, purged from storage and logged at warn.
func NewStore(ctx context.Context, r repo.StateRepo, opts Options) (*Store, error) {
	s := &Store{
		repo:   r,
		key:    opts.Key,
		strict: opts.RequireArrivalDate,
		now:    opts.Now,
		logger: opts.Logger,
		drafts: make(map[string]stagedDraft),
		state:  emptyState(),
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	body, err := r.Load(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.NewStore: %w", err)
	}

	loaded, err := exchange.DecodeJSON(body)
	if err == nil {
		loaded, err = prepareImport(loaded, s.nextID)
	}
	if err != nil {
		s.logger.Warn("discarding unreadable itinerary", "key", s.key, "error", err)
		if err := r.Delete(ctx, s.key); err != nil {
			return nil, fmt.Errorf("service.NewStore: purge: %w", err)
		}
		return s, nil
	}

	s.state = loaded
	for _, d := range loaded.Destinations {
		s.lastID = max(s.lastID, d.ID)
	}
	return s, nil
}

func emptyState() domain.State {
	return domain.State{Destinations: []domain.Destination{}, DayLabels: []domain.DayLabel{}}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// commit persists next and, on success, makes it the current document.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next domain.State) error {
	body, err := exchange.EncodeJSON(next)
	if err != nil {
		return fmt.Errorf("service.Store.%s: %w", op, err)
	}
	if err := s.repo.Save(ctx, s.key, body); err != nil {
		return fmt.Errorf("service.Store.%s: %w", op, err)
	}
	s.state = next
	s.logger.Debug("itinerary saved",
		"op", op,
		"destinations", len(next.Destinations),
		"days", len(itinerary.SortedDates(next.Destinations)),
		"bytes", len(body),
	)
	return nil
}

// nextID returns a fresh destination id: the current time in milliseconds,
// bumped past the largest id handed out so far when two saves share a
// millisecond. Callers must hold s.mu.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ---- derived views ---------------------------------------------------------

// Summary is the grouped itinerary plus the trip header and budget figures.
type Summary struct {
	itinerary.Itinerary
	Settings *domain.TripSettings

	// Remaining is Budget minus TotalCost; only meaningful when HasBudget.
	Remaining float64
	HasBudget bool
}

// Itinerary groups the current destinations by day.
func (s *Store) Itinerary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.state)
}

func summarize(st domain.State) Summary {
	sum := Summary{Itinerary: itinerary.Group(st.Destinations, st.DayLabels)}
	if st.TripSettings != nil {
		ts := *st.TripSettings
		sum.Settings = &ts
		if ts.Budget > 0 {
			sum.HasBudget = true
			sum.Remaining = ts.Budget - sum.TotalCost
		}
	}
	return sum
}

// Map returns the map pins for the current filter and auto-zoom setting.
func (s *Store) Map() itinerary.MapView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itinerary.BuildMap(s.state, s.filter)
}

// SuggestedArrival is the default arrival date offered for a new destination:
// the earliest scheduled date, if any.
func (s *Store) SuggestedArrival() (domain.Date, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itinerary.EarliestArrival(s.state.Destinations)
}
