package itinerary

import (
	"math"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Filter is the map filter state. The zero Filter is Unfiltered; otherwise
// only pins arriving on Date are shown.
type Filter struct {
	Date domain.Date
}

// Active reports whether the map is filtered to a single day.
func (f Filter) Active() bool { return !f.Date.IsZero() }

// Select applies a click on a day header: it filters to date, or clears the
// filter when date is already the filtered day. Switching between two days
// goes straight from one filtered state to the other.
func (f Filter) Select(date domain.Date) Filter {
	if f.Active() && f.Date.Equal(date) {
		return Filter{}
	}
	return Filter{Date: date}
}

// Pin is one map marker derived from a destination with coordinates.
type Pin struct {
	DestinationID int64
	Name          string
	Lat, Lng      float64
	Date          domain.Date
	Color         string
	Icon          string
	Visible       bool
	Popup         Popup
}

// Popup is the text shown when a pin is clicked.
type Popup struct {
	Priority        string
	DateRange       string
	Cost            string
	Time            string
	Notes           string
	WebsiteLink     string
	GoogleMapsLink  string
	AdvisorSiteLink string
}

// Bounds is a lat/lng rectangle.
type Bounds struct {
	South, West, North, East float64
}

// Pad grows b by ratio of its height and width on every side.
func (b Bounds) Pad(ratio float64) Bounds {
	dh := math.Abs(b.North-b.South) * ratio
	dw := math.Abs(b.East-b.West) * ratio
	return Bounds{South: b.South - dh, West: b.West - dw, North: b.North + dh, East: b.East + dw}
}

// MapView is everything a map widget needs for one render.
type MapView struct {
	Filter   Filter
	AutoZoom bool
	Pins     []Pin
	// Fit is the viewport to fit, set only when auto-zoom is on and at least
	// one pin is visible.
	Fit *Bounds
}

// FitPadding is the fraction added around fitted pins.
const FitPadding = 0.2

// BuildMap derives the pins for s under filter f. Pins outside the filtered
// day stay in the list with Visible=false.
func BuildMap(s domain.State, f Filter) MapView {
	colors := ColorMap(SortedDates(s.Destinations), s.DayLabels)
	view := MapView{Filter: f, AutoZoom: s.AutoZoom()}

	var visible []Pin
	for _, d := range s.Destinations {
		if !d.HasCoordinates() {
			continue
		}
		color, ok := colors[d.ArrivalDate.String()]
		if !ok || !d.Scheduled() || !domain.IsHexColor(color) {
			color = UnassignedColor
		}
		pin := Pin{
			DestinationID: d.ID,
			Name:          d.Name,
			Lat:           d.Lat,
			Lng:           d.Lng,
			Date:          d.ArrivalDate,
			Color:         color,
			Icon:          CategoryIcon(d.Category),
			Visible:       !f.Active() || d.ArrivalDate.Equal(f.Date),
			Popup:         popupFor(d),
		}
		view.Pins = append(view.Pins, pin)
		if pin.Visible {
			visible = append(visible, pin)
		}
	}

	if view.AutoZoom && len(visible) > 0 {
		b := boundsOf(visible).Pad(FitPadding)
		view.Fit = &b
	}
	return view
}

func boundsOf(pins []Pin) Bounds {
	b := Bounds{South: pins[0].Lat, North: pins[0].Lat, West: pins[0].Lng, East: pins[0].Lng}
	for _, p := range pins[1:] {
		b.South = math.Min(b.South, p.Lat)
		b.North = math.Max(b.North, p.Lat)
		b.West = math.Min(b.West, p.Lng)
		b.East = math.Max(b.East, p.Lng)
	}
	return b
}

func popupFor(d domain.Destination) Popup {
	notes := d.Activities
	if notes == "" {
		notes = "No additional notes."
	}
	return Popup{
		Priority:        string(domain.ParsePriority(string(d.Priority))),
		DateRange:       FormatDateRange(d.ArrivalDate, d.DepartureDate),
		Cost:            "$" + FormatCost(d.Cost),
		Time:            FormatTime(d.Time),
		Notes:           notes,
		WebsiteLink:     d.WebsiteLink,
		GoogleMapsLink:  d.GoogleMapsLink,
		AdvisorSiteLink: d.AdvisorSiteLink,
	}
}
