// Package itinerary holds the pure rules of the planner: day grouping and
// colors, date shifting, order reconciliation and the map filter state.
// Nothing in this package performs I/O or keeps state between calls.
package itinerary

import (
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Day is one bucket of destinations sharing an arrival date.
type Day struct {
	Number       int                  // 1-based position among sorted dates
	Date         domain.Date
	Label        string               // saved title, "" when none
	Color        string
	Destinations []domain.Destination // store order
	TotalCost    float64
	TotalTime    float64
}

// Itinerary is the grouped view of a destination collection.
type Itinerary struct {
	Dates           []domain.Date // sorted distinct arrival dates
	Days            []Day
	Unscheduled     []domain.Destination
	UnscheduledCost float64
	UnscheduledTime float64

	// TotalCost and TotalTime are running sums over every bucket in
	// iteration order (days first, then unscheduled). They are plain float64
	// sums and may carry binary rounding error; display rounds them.
	TotalCost float64
	TotalTime float64
}

// Count returns the number of destinations across all buckets.
func (it Itinerary) Count() int {
	n := len(it.Unscheduled)
	for _, d := range it.Days {
		n += len(d.Destinations)
	}
	return n
}

// SortedDates returns the distinct arrival dates of dests in ascending order.
// Unscheduled destinations do not contribute a date.
func SortedDates(dests []domain.Destination) []domain.Date {
	seen := make(map[string]bool)
	var dates []domain.Date
	for _, d := range dests {
		if !d.Scheduled() || seen[d.ArrivalDate.String()] {
			continue
		}
		seen[d.ArrivalDate.String()] = true
		dates = append(dates, d.ArrivalDate)
	}
	slices.SortFunc(dates, domain.Date.Compare)
	return dates
}

// Group partitions dests by arrival date. Each destination lands in exactly
// one bucket and keeps its relative store order inside it.
func Group(dests []domain.Destination, labels []domain.DayLabel) Itinerary {
	byDate := make(map[string][]domain.Destination)
	var it Itinerary
	for _, d := range dests {
		if !d.Scheduled() {
			it.Unscheduled = append(it.Unscheduled, d)
			continue
		}
		key := d.ArrivalDate.String()
		byDate[key] = append(byDate[key], d)
	}

	it.Dates = SortedDates(dests)
	for i, date := range it.Dates {
		day := Day{
			Number:       i + 1,
			Date:         date,
			Color:        DayColor(labels, date, i),
			Destinations: byDate[date.String()],
		}
		if l, ok := domain.FindLabel(labels, date); ok {
			day.Label = l.Label
		}
		for _, d := range day.Destinations {
			day.TotalCost += d.Cost
			day.TotalTime += d.Time
			it.TotalCost += d.Cost
			it.TotalTime += d.Time
		}
		it.Days = append(it.Days, day)
	}

	for _, d := range it.Unscheduled {
		it.UnscheduledCost += d.Cost
		it.UnscheduledTime += d.Time
		it.TotalCost += d.Cost
		it.TotalTime += d.Time
	}
	return it
}
