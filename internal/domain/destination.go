// Package domain contains the core data types for the itinerary planner.
// This package has zero external dependencies and is imported by every other
// internal package (itinerary, repo, service, handler, cli).
package domain

import (
	"math"
	"strconv"
	"strings"
)

// Category classifies a destination. It selects the pin icon on the map.
type Category string

const (
	CategoryAccommodation  Category = "accommodation"
	CategoryActivity       Category = "activity"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryFly            Category = "fly"
	CategoryDrive          Category = "drive"
	CategoryShopping       Category = "shopping"
	CategoryEntertainment  Category = "entertainment"
	CategoryOther          Category = "other"
)

// Categories lists every recognised category in display order.
var Categories = []Category{
	CategoryAccommodation, CategoryActivity, CategoryFood, CategoryTransportation,
	CategoryFly, CategoryDrive, CategoryShopping, CategoryEntertainment, CategoryOther,
}

// ParseCategory returns the category named by s, or CategoryActivity when s
// is empty or unrecognised.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryActivity
}

// Priority ranks how important a destination is to the traveller.
type Priority string

const (
	PriorityLow     Priority = "low"
	PriorityMedium  Priority = "medium"
	PriorityHigh    Priority = "high"
	PriorityAssumed Priority = "assumed"
)

// ParsePriority returns the priority named by s, or PriorityMedium when s is
// empty or unrecognised.
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityAssumed:
		return p
	}
	return PriorityMedium
}

// Destination is a single itinerary entry.
// ArrivalDate is zero for an unscheduled destination; Lat/Lng of (0,0) means
// the destination has no map pin.
type Destination struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	ArrivalDate     Date     `json:"arrivalDate"`
	DepartureDate   Date     `json:"departureDate"`
	Category        Category `json:"category"`
	Priority        Priority `json:"priority"`
	Cost            float64  `json:"cost"`
	Time            float64  `json:"time"`
	Activities      string   `json:"activities"`
	Address         string   `json:"address,omitempty"`
	WebsiteLink     string   `json:"websiteLink,omitempty"`
	GoogleMapsLink  string   `json:"googleMapsLink,omitempty"`
	AdvisorSiteLink string   `json:"advisorSiteLink,omitempty"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
}

// Scheduled reports whether d has an arrival date.
func (d Destination) Scheduled() bool { return !d.ArrivalDate.IsZero() }

// HasCoordinates reports whether d should be rendered as a map pin.
func (d Destination) HasCoordinates() bool { return d.Lat != 0 || d.Lng != 0 }

// Normalize applies the field defaults: unknown category becomes activity,
// unknown priority becomes medium, invalid cost/time become 0, invalid
// coordinates become (0,0), and a missing departure takes the arrival date.
func (d Destination) Normalize() Destination {
	d.Name = strings.TrimSpace(d.Name)
	d.Category = ParseCategory(string(d.Category))
	d.Priority = ParsePriority(string(d.Priority))
	d.Cost = SanitizeAmount(d.Cost)
	d.Time = SanitizeAmount(d.Time)
	d.Lat, d.Lng = sanitizeCoordinates(d.Lat, d.Lng)
	if d.Scheduled() && d.DepartureDate.IsZero() {
		d.DepartureDate = d.ArrivalDate
	}
	return d
}

// SanitizeAmount returns f when it is a finite non-negative number, 0 otherwise.
func SanitizeAmount(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseAmount parses a user-entered cost or duration; anything unparseable is 0.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return SanitizeAmount(f)
}

// ParseCoordinates parses a "lat, lng" pair as typed into the destination
// form. Anything that is not two finite numbers in range yields (0,0).
func ParseCoordinates(s string) (lat, lng float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return 0, 0
	}
	return sanitizeCoordinates(lat, lng)
}

func sanitizeCoordinates(lat, lng float64) (float64, float64) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return 0, 0
	}
	return lat, lng
}
