package itinerary

import "github.com/pkordes/trip-planner/internal/domain"

// Palette is the default day color sequence. Day N (1-based, counting sorted
// distinct arrival dates) without a label color gets Palette[(N-1) % len].
var Palette = [...]string{
	"#f44336", "#e91e63", "#9c27b0", "#673ab7", "#3f51b5",
	"#2196f3", "#03a9f4", "#00bcd4", "#009688", "#4caf50",
	"#8bc34a", "#cddc39", "#ffeb3b", "#ffc107", "#ff9800",
}

// UnassignedColor is used for pins whose date has no day color
// (unscheduled destinations).
const UnassignedColor = "#757575"

// DefaultLabelColor pre-fills the day editor when no color has been chosen yet.
const DefaultLabelColor = "#f44336"

// LabelPlaceholder is shown for a day that has no title.
const LabelPlaceholder = "Add a title for this day..."

var categoryIcons = map[domain.Category]string{
	domain.CategoryAccommodation:  "fa-hotel",
	domain.CategoryActivity:       "fa-person-hiking",
	domain.CategoryFood:           "fa-utensils",
	domain.CategoryTransportation: "fa-bus",
	domain.CategoryFly:            "fa-plane-departure",
	domain.CategoryDrive:          "fa-car",
	domain.CategoryShopping:       "fa-shopping-bag",
	domain.CategoryEntertainment:  "fa-film",
	domain.CategoryOther:          "fa-map-pin",
}

// CategoryIcon returns the icon name for c, falling back to a plain pin.
func CategoryIcon(c domain.Category) string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "fa-map-pin"
}

// PaletteColor returns the default color for the day at zero-based position index.
func PaletteColor(index int) string {
	return Palette[index%len(Palette)]
}

// DayColor returns the label color for date when one is set, otherwise the
// palette color for the day's zero-based position among sorted dates.
// An invalid label color is returned as is; HexToRGBA renders it neutral.
func DayColor(labels []domain.DayLabel, date domain.Date, index int) string {
	if l, ok := domain.FindLabel(labels, date); ok && l.Color != "" {
		return l.Color
	}
	return PaletteColor(index)
}

// ColorMap assigns a color to every distinct sorted arrival date.
func ColorMap(dates []domain.Date, labels []domain.DayLabel) map[string]string {
	out := make(map[string]string, len(dates))
	for i, d := range dates {
		out[d.String()] = DayColor(labels, d, i)
	}
	return out
}
