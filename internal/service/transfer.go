package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// Export encodes the current itinerary in format f.
// Returns domain.ErrNothingToExport when there are no destinations and no
// day labels.
func (s *Store) Export(f exchange.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsEmpty() {
		return nil, fmt.Errorf("service.Store.Export: %w", domain.ErrNothingToExport)
	}
	b, err := exchange.Encode(f, s.state)
	if err != nil {
		return nil, fmt.Errorf("service.Store.Export: %w", err)
	}
	return b, nil
}

// Import replaces the itinerary with the document in data.
//
// Destinations and day labels are replaced wholesale. Trip settings and the
// auto-zoom preference are replaced only when the document carries them, so
// a CSV import keeps the current trip header. Destinations without an id get
// a fresh one.
//
// When the current itinerary is not empty the import must be confirmed with
// overwrite, otherwise domain.ErrConfirmationRequired is returned. A payload
// that is not an itinerary is domain.ErrInvalidImport. Either way nothing
// changes.
func (s *Store) Import(ctx context.Context, f exchange.Format, data []byte, overwrite bool) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsEmpty() && !overwrite {
		return domain.State{}, fmt.Errorf("service.Store.Import: %w", domain.ErrConfirmationRequired)
	}

	in, err := exchange.Decode(f, data)
	if err != nil {
		return domain.State{}, fmt.Errorf("service.Store.Import: %w", err)
	}

	prevID := s.lastID
	in, err = prepareImport(in, s.nextID)
	if err != nil {
		s.lastID = prevID
		return domain.State{}, fmt.Errorf("service.Store.Import: %w", err)
	}

	next := s.state.Clone()
	next.Destinations = in.Destinations
	next.DayLabels = in.DayLabels
	if in.TripSettings != nil {
		next.TripSettings = in.TripSettings
	}
	if in.AutoZoomEnabled != nil {
		next.AutoZoomEnabled = in.AutoZoomEnabled
	}
	if err := s.commit(ctx, "Import", next); err != nil {
		s.lastID = prevID
		return domain.State{}, err
	}

	for _, d := range next.Destinations {
		s.lastID = max(s.lastID, d.ID)
	}
	s.filter = itinerary.Filter{}
	clear(s.drafts)
	s.logger.Info("itinerary imported",
		"format", string(f),
		"destinations", len(next.Destinations),
		"dayLabels", len(next.DayLabels),
	)
	return next.Clone(), nil
}

// prepareImport applies the field defaults to an incoming document and
// checks the identity rules: every destination needs a name, ids must be
// unique, missing ids are assigned with nextID, day labels need a date and
// the last label for a date wins.
func prepareImport(in domain.State, nextID func() int64) (domain.State, error) {
	out := domain.State{
		Destinations:    make([]domain.Destination, 0, len(in.Destinations)),
		DayLabels:       make([]domain.DayLabel, 0, len(in.DayLabels)),
		TripSettings:    in.TripSettings,
		AutoZoomEnabled: in.AutoZoomEnabled,
	}

	used := make(map[int64]bool, len(in.Destinations))
	for _, d := range in.Destinations {
		if d.ID == 0 {
			continue
		}
		if used[d.ID] {
			return domain.State{}, fmt.Errorf("%w: duplicate destination id %d", domain.ErrInvalidImport, d.ID)
		}
		used[d.ID] = true
	}
	for i, d := range in.Destinations {
		d = d.Normalize()
		if d.Name == "" {
			return domain.State{}, fmt.Errorf("%w: destination %d has no name", domain.ErrInvalidImport, i)
		}
		if d.ID == 0 {
			d.ID = freshID(used, nextID)
		}
		out.Destinations = append(out.Destinations, d)
	}

	for _, l := range in.DayLabels {
		if l.Date.IsZero() {
			return domain.State{}, fmt.Errorf("%w: day label without a date", domain.ErrInvalidImport)
		}
		l.Color = domain.NormalizeColor(l.Color)
		out.DayLabels = upsertLabel(out.DayLabels, l)
	}

	if out.TripSettings != nil {
		ts := *out.TripSettings
		ts.Budget = domain.SanitizeAmount(ts.Budget)
		out.TripSettings = &ts
	}
	return out, nil
}

func freshID(used map[int64]bool, nextID func() int64) int64 {
	for {
		id := nextID()
		if !used[id] {
			used[id] = true
			return id
		}
	}
}
