package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// List returns every destination in store order.
func (s *Store) List() []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Destination{}, s.state.Destinations...)
}

// Get returns the destination with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) Get(id int64) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(id)
	if i < 0 {
		return domain.Destination{}, fmt.Errorf("service.Store.Get: destination %d: %w", id, domain.ErrNotFound)
	}
	return s.state.Destinations[i], nil
}

// validate checks the presence rules for a destination about to be saved.
func (s *Store) validate(d domain.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if s.strict && !d.Scheduled() {
		return fmt.Errorf("%w: arrival date is required", domain.ErrValidation)
	}
	return nil
}

// Create validates d, assigns it a new id and appends it to the itinerary.
// Any id set by the caller is ignored.
func (s *Store) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(ctx, "Create", d)
}

// create is shared by Create and CommitDraft. Callers must hold s.mu.
func (s *Store) create(ctx context.Context, op string, d domain.Destination) (domain.Destination, error) {
	if err := s.validate(d); err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.%s: %w", op, err)
	}

	prevID := s.lastID
	d = d.Normalize()
	d.ID = s.nextID()

	next := s.state.Clone()
	next.Destinations = append(next.Destinations, d)
	if err := s.commit(ctx, op, next); err != nil {
		s.lastID = prevID
		return domain.Destination{}, err
	}
	return d, nil
}

// Update replaces the fields of the destination with d's id.
//
// When the arrival date changes the departure moves by the same number of
// days, so the length of the stay is kept. A zero departure in d means
// "keep the stored departure" before that shift is applied; for a
// destination that was unscheduled it falls back to the new arrival.
// Removing the arrival unschedules the destination and clears its departure.
// Returns domain.ErrNotFound, without changing anything, for an unknown id.
func (s *Store) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(d); err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.Update: %w", err)
	}
	i := s.state.IndexOf(d.ID)
	if i < 0 {
		return domain.Destination{}, fmt.Errorf("service.Store.Update: destination %d: %w", d.ID, domain.ErrNotFound)
	}

	old := s.state.Destinations[i]
	if d.DepartureDate.IsZero() && old.Scheduled() {
		d.DepartureDate = old.DepartureDate
	}
	switch {
	case !d.Scheduled():
		d.DepartureDate = domain.Date{}
	case !d.ArrivalDate.Equal(old.ArrivalDate):
		d.DepartureDate = itinerary.ShiftDeparture(old.ArrivalDate, d.ArrivalDate, d.DepartureDate)
	}
	d = d.Normalize()

	next := s.state.Clone()
	next.Destinations[i] = d
	if err := s.commit(ctx, "Update", next); err != nil {
		return domain.Destination{}, err
	}
	return d, nil
}

// Delete removes the destination with the given id. The others keep their order.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("service.Store.Delete: destination %d: %w", id, domain.ErrNotFound)
	}

	next := s.state.Clone()
	next.Destinations = append(next.Destinations[:i], next.Destinations[i+1:]...)
	return s.commit(ctx, "Delete", next)
}

// ---- duplicate drafts ------------------------------------------------------

// MaxDrafts bounds the staged duplicates held in memory. Staging one more
// evicts the oldest.
const MaxDrafts = 32

// Draft is a staged copy of a destination awaiting confirmation.
type Draft struct {
	Token       string
	Destination domain.Destination
}

type stagedDraft struct {
	dest domain.Destination
	seq  uint64
}

// Duplicate stages a copy of the destination with the given id: same fields,
// no id, name suffixed with " - Copy". Nothing is saved until CommitDraft.
// At most MaxDrafts drafts are kept; the oldest is dropped first.
func (s *Store) Duplicate(id int64) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(id)
	if i < 0 {
		return Draft{}, fmt.Errorf("service.Store.Duplicate: destination %d: %w", id, domain.ErrNotFound)
	}

	d := s.state.Destinations[i]
	d.ID = 0
	d.Name += " - Copy"

	if len(s.drafts) >= MaxDrafts {
		s.evictOldestDraft()
	}
	s.draftSeq++
	token := uuid.NewString()
	s.drafts[token] = stagedDraft{dest: d, seq: s.draftSeq}
	return Draft{Token: token, Destination: d}, nil
}

// evictOldestDraft drops the draft staged first. Callers must hold s.mu.
func (s *Store) evictOldestDraft() {
	var (
		oldest string
		seq    uint64
	)
	for token, sd := range s.drafts {
		if oldest == "" || sd.seq < seq {
			oldest, seq = token, sd.seq
		}
	}
	delete(s.drafts, oldest)
	s.logger.Debug("draft evicted", "token", oldest)
}

// CommitDraft saves the draft under token, with the caller's edits in d, as
// a new destination. The draft is consumed only when the save succeeds.
func (s *Store) CommitDraft(ctx context.Context, token string, d domain.Destination) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[token]; !ok {
		return domain.Destination{}, fmt.Errorf("service.Store.CommitDraft: draft %q: %w", token, domain.ErrNotFound)
	}
	created, err := s.create(ctx, "CommitDraft", d)
	if err != nil {
		return domain.Destination{}, err
	}
	delete(s.drafts, token)
	return created, nil
}

// DiscardDraft drops a staged duplicate without saving it.
func (s *Store) DiscardDraft(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[token]; !ok {
		return fmt.Errorf("service.Store.DiscardDraft: draft %q: %w", token, domain.ErrNotFound)
	}
	delete(s.drafts, token)
	return nil
}
