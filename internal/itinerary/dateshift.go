package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ShiftDeparture keeps the length of a stay when its arrival moves:
// the departure moves by the same number of days as the arrival.
// When either arrival is absent, or the departure is absent, departure is
// returned unchanged.
func ShiftDeparture(oldArrival, newArrival, departure domain.Date) domain.Date {
	if oldArrival.IsZero() || newArrival.IsZero() || departure.IsZero() {
		return departure
	}
	return departure.AddDays(newArrival.DaysSince(oldArrival))
}

// EarliestArrival returns the minimum arrival date across scheduled destinations.
func EarliestArrival(dests []domain.Destination) (domain.Date, bool) {
	var earliest domain.Date
	for _, d := range dests {
		if !d.Scheduled() {
			continue
		}
		if earliest.IsZero() || d.ArrivalDate.Before(earliest) {
			earliest = d.ArrivalDate
		}
	}
	return earliest, !earliest.IsZero()
}

// Translate moves every date in s by days: arrival and departure of each
// scheduled destination, every day label, and the trip settings range.
// Unscheduled destinations are left as they are. The input is not modified.
func Translate(s domain.State, days int) domain.State {
	out := s.Clone()
	for i, d := range out.Destinations {
		if !d.Scheduled() {
			continue
		}
		out.Destinations[i].ArrivalDate = d.ArrivalDate.AddDays(days)
		out.Destinations[i].DepartureDate = d.DepartureDate.AddDays(days)
	}
	for i, l := range out.DayLabels {
		out.DayLabels[i].Date = l.Date.AddDays(days)
	}
	if out.TripSettings != nil {
		out.TripSettings.StartDate = out.TripSettings.StartDate.AddDays(days)
		out.TripSettings.EndDate = out.TripSettings.EndDate.AddDays(days)
	}
	return out
}

// ShiftAll re-anchors the itinerary so that the earliest arrival falls on
// newStart, and returns the shifted state and the applied delta in days.
// It returns domain.ErrNothingToShift when no destination is scheduled.
func ShiftAll(s domain.State, newStart domain.Date) (domain.State, int, error) {
	if newStart.IsZero() {
		return s, 0, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	earliest, ok := EarliestArrival(s.Destinations)
	if !ok {
		return s, 0, domain.ErrNothingToShift
	}
	delta := newStart.DaysSince(earliest)
	return Translate(s, delta), delta, nil
}
