package itinerary

import "github.com/pkordes/trip-planner/internal/domain"

// Move records that a dragged destination was dropped into another bucket.
// A zero Date means the unscheduled bucket.
type Move struct {
	ID   int64
	Date domain.Date
}

// Reconcile rebuilds the destination list in the order of orderedIDs, which
// is the concatenation of every visible bucket after a drag gesture.
//
// Ids that are unknown or repeated are ignored. Destinations missing from
// orderedIDs are appended afterwards in their previous relative order so a
// partial order never drops data. When move is set, the moved destination
// takes the target bucket's arrival date (or none), and its departure is
// synced to the target when it was previously unset.
func Reconcile(dests []domain.Destination, orderedIDs []int64, move *Move) []domain.Destination {
	lookup := make(map[int64]domain.Destination, len(dests))
	for _, d := range dests {
		lookup[d.ID] = d
	}

	out := make([]domain.Destination, 0, len(dests))
	for _, id := range orderedIDs {
		d, ok := lookup[id]
		if !ok {
			continue
		}
		out = append(out, d)
		delete(lookup, id)
	}
	for _, d := range dests {
		if _, left := lookup[d.ID]; left {
			out = append(out, d)
			delete(lookup, d.ID)
		}
	}

	if move == nil {
		return out
	}
	for i, d := range out {
		if d.ID != move.ID || d.ArrivalDate.Equal(move.Date) {
			continue
		}
		out[i].ArrivalDate = move.Date
		if d.DepartureDate.IsZero() {
			out[i].DepartureDate = move.Date
		}
	}
	return out
}
