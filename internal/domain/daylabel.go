package domain

import (
	"regexp"
	"strings"
)

// DayLabel is a user-customised title and color for one calendar date.
// Labels are created lazily and never removed automatically, even when no
// destination is left on that date.
type DayLabel struct {
	Date  Date   `json:"date"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{3}){1,2}$`)

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool { return hexColor.MatchString(s) }

// NormalizeColor trims s. An invalid color is kept as given: it still
// overrides the palette, and renders with the neutral tint.
func NormalizeColor(s string) string {
	return strings.TrimSpace(s)
}

// FindLabel returns the label saved for date, if any.
func FindLabel(labels []DayLabel, date Date) (DayLabel, bool) {
	for _, l := range labels {
		if l.Date.Equal(date) {
			return l, true
		}
	}
	return DayLabel{}, false
}
