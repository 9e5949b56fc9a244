package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// ReconcileOrder rebuilds the destination order from orderedIDs, the order
// the user sees after a drag. When move is set, that destination also takes
// the date of the bucket it was dropped into (a zero date unschedules it).
// Ids not in the store are ignored; destinations missing from orderedIDs
// keep their relative order at the end.
func (s *Store) ReconcileOrder(ctx context.Context, orderedIDs []int64, move *itinerary.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if move != nil && s.state.IndexOf(move.ID) < 0 {
		return fmt.Errorf("service.Store.ReconcileOrder: destination %d: %w", move.ID, domain.ErrNotFound)
	}

	next := s.state.Clone()
	next.Destinations = itinerary.Reconcile(s.state.Destinations, orderedIDs, move)
	return s.commit(ctx, "ReconcileOrder", next)
}

// ShiftDates moves the whole itinerary so that its earliest arrival falls on
// newStart. Every scheduled destination, every day label and the trip
// settings range move by the same number of days; an active map filter
// follows its day. Returns the applied shift in days.
func (s *Store) ShiftDates(ctx context.Context, newStart domain.Date) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, delta, err := itinerary.ShiftAll(s.state, newStart)
	if err != nil {
		return 0, fmt.Errorf("service.Store.ShiftDates: %w", err)
	}
	if err := s.commit(ctx, "ShiftDates", next); err != nil {
		return 0, err
	}
	if s.filter.Active() {
		s.filter.Date = s.filter.Date.AddDays(delta)
	}
	s.logger.Info("itinerary shifted", "start", newStart.String(), "days", delta)
	return delta, nil
}

// DayLabels returns the saved day labels.
func (s *Store) DayLabels() []domain.DayLabel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DayLabel{}, s.state.DayLabels...)
}

// SetDayLabel creates or replaces the label for l.Date. An invalid color is
// dropped; an empty one falls back to the default label color.
func (s *Store) SetDayLabel(ctx context.Context, l domain.DayLabel) (domain.DayLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.Date.IsZero() {
		return domain.DayLabel{}, fmt.Errorf("service.Store.SetDayLabel: %w: date is required", domain.ErrValidation)
	}
	if l.Color == "" {
		l.Color = itinerary.DefaultLabelColor
	}
	l.Color = domain.NormalizeColor(l.Color)

	next := s.state.Clone()
	next.DayLabels = upsertLabel(next.DayLabels, l)
	if err := s.commit(ctx, "SetDayLabel", next); err != nil {
		return domain.DayLabel{}, err
	}
	return l, nil
}

func upsertLabel(labels []domain.DayLabel, l domain.DayLabel) []domain.DayLabel {
	for i := range labels {
		if labels[i].Date.Equal(l.Date) {
			labels[i] = l
			return labels
		}
	}
	return append(labels, l)
}

// Clear removes every destination and day label. Trip settings and the
// auto-zoom preference are kept. A non-empty itinerary is only cleared when
// confirmed; otherwise domain.ErrConfirmationRequired is returned.
func (s *Store) Clear(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsEmpty() && !confirmed {
		return fmt.Errorf("service.Store.Clear: %w", domain.ErrConfirmationRequired)
	}

	next := s.state.Clone()
	next.Destinations = []domain.Destination{}
	next.DayLabels = []domain.DayLabel{}
	if err := s.commit(ctx, "Clear", next); err != nil {
		return err
	}
	s.filter = itinerary.Filter{}
	clear(s.drafts)
	return nil
}
