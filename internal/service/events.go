package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// Event is a user action produced by a presentation layer (drag-and-drop
// list, day header, map controls, file picker) and consumed by Store.Apply.
type Event interface {
	event()
}

// ReorderEvent reports the order of destinations after a drag. Move is set
// when the dragged destination landed in a different day bucket.
type ReorderEvent struct {
	Order []int64
	Move  *itinerary.Move
}

// SelectDayEvent reports a click on a day header.
type SelectDayEvent struct {
	Date domain.Date
}

// ShowAllDaysEvent reports the "show all" map control.
type ShowAllDaysEvent struct{}

// AutoZoomEvent reports the auto-zoom toggle.
type AutoZoomEvent struct {
	Enabled bool
}

// ShiftEvent reports a new start date for the whole itinerary.
type ShiftEvent struct {
	Start domain.Date
}

// ImportEvent carries a file chosen for import.
type ImportEvent struct {
	Format    exchange.Format
	Data      []byte
	Overwrite bool
}

// ClearEvent reports the "clear all" action.
type ClearEvent struct {
	Confirmed bool
}

func (ReorderEvent) event()     {}
func (SelectDayEvent) event()   {}
func (ShowAllDaysEvent) event() {}
func (AutoZoomEvent) event()    {}
func (ShiftEvent) event()       {}
func (ImportEvent) event()      {}
func (ClearEvent) event()       {}

// Apply dispatches ev to the matching Store operation. Events are applied one
// at a time in the order Apply is called.
func (s *Store) Apply(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case ReorderEvent:
		return s.ReconcileOrder(ctx, e.Order, e.Move)
	case SelectDayEvent:
		_, err := s.SelectDay(e.Date)
		return err
	case ShowAllDaysEvent:
		s.ShowAllDays()
		return nil
	case AutoZoomEvent:
		return s.SetAutoZoom(ctx, e.Enabled)
	case ShiftEvent:
		_, err := s.ShiftDates(ctx, e.Start)
		return err
	case ImportEvent:
		_, err := s.Import(ctx, e.Format, e.Data, e.Overwrite)
		return err
	case ClearEvent:
		return s.Clear(ctx, e.Confirmed)
	default:
		return fmt.Errorf("service.Store.Apply: %w: unknown event %T", domain.ErrValidation, ev)
	}
}
