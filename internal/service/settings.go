package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// Settings returns the trip header, or nil if it has never been saved.
func (s *Store) Settings() *domain.TripSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.TripSettings == nil {
		return nil
	}
	ts := *s.state.TripSettings
	return &ts
}

// SaveSettings overwrites the trip header. A negative or non-finite budget is
// stored as 0.
func (s *Store) SaveSettings(ctx context.Context, ts domain.TripSettings) (domain.TripSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts.Destination = strings.TrimSpace(ts.Destination)
	ts.Budget = domain.SanitizeAmount(ts.Budget)

	next := s.state.Clone()
	next.TripSettings = &ts
	if err := s.commit(ctx, "SaveSettings", next); err != nil {
		return domain.TripSettings{}, err
	}
	return ts, nil
}

// SetAutoZoom persists whether the map fits itself to the visible pins.
func (s *Store) SetAutoZoom(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.AutoZoomEnabled = &enabled
	return s.commit(ctx, "SetAutoZoom", next)
}

// SelectDay applies a click on a day header to the map filter and returns
// the resulting map. The filter is view state and is not persisted.
func (s *Store) SelectDay(date domain.Date) (itinerary.MapView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date.IsZero() {
		return itinerary.MapView{}, fmt.Errorf("service.Store.SelectDay: %w: date is required", domain.ErrValidation)
	}
	s.filter = s.filter.Select(date)
	return itinerary.BuildMap(s.state, s.filter), nil
}

// ShowAllDays clears the map filter and returns the resulting map.
func (s *Store) ShowAllDays() itinerary.MapView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = itinerary.Filter{}
	return itinerary.BuildMap(s.state, s.filter)
}
