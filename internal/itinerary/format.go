package itinerary

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/pkordes/trip-planner/internal/domain"
)

// FormatCost rounds n to the nearest whole unit and groups thousands
// ("1234.5" -> "1,235"). It is a display transform only.
func FormatCost(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	r := math.Round(n)
	if r == 0 {
		// covers -0 from small negative remainders
		return "0"
	}
	return humanize.Commaf(r)
}

// FormatTime renders a duration in hours ("1 hr", "2.5 hrs"); zero renders as "".
func FormatTime(hours float64) string {
	if math.IsNaN(hours) || hours == 0 {
		return ""
	}
	unit := "hrs"
	if hours == 1 {
		unit = "hr"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + " " + unit
}

// FormatDate renders d as MM/DD/YYYY, or "" when absent.
func FormatDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("01/02/2006")
}

// FormatDateRange renders "start to end", collapsing to the start date when
// the end is absent or the same day.
func FormatDateRange(start, end domain.Date) string {
	if end.IsZero() || start.Equal(end) {
		return FormatDate(start)
	}
	return FormatDate(start) + " to " + FormatDate(end)
}

// HexToRGBA converts a #rgb or #rrggbb color to an rgba() string with the
// given alpha. Invalid input degrades to a faint transparent gray.
func HexToRGBA(hex string, alpha float64) string {
	if !domain.IsHexColor(hex) {
		return "rgba(0,0,0,0.1)"
	}
	c := hex[1:]
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	v, _ := strconv.ParseUint(c, 16, 32)
	a := strconv.FormatFloat(alpha, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", (v>>16)&255, (v>>8)&255, v&255, a)
}
