package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

func newShowCmd(env Env) *cobra.Command {
	return LeafCommand{
		Use:   "show",
		Short: "Print the itinerary grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, env, func(st Store) error {
				return runShow(cmd.OutOrStdout(), st)
			})
		},
	}.Build()
}

func runShow(w io.Writer, st Store) error {
	sum := st.Itinerary()

	if ts := sum.Settings; ts != nil {
		title := ts.Destination
		if title == "" {
			title = "Trip"
		}
		if r := itinerary.FormatDateRange(ts.StartDate, ts.EndDate); r != "" {
			title += " (" + r + ")"
		}
		_, _ = fmt.Fprintln(w, Header(title))
	}

	if sum.Count() == 0 {
		_, _ = fmt.Fprintln(w, Silent("No destinations yet."))
		return nil
	}

	for _, day := range sum.Days {
		heading := fmt.Sprintf("Day %d · %s", day.Number, itinerary.FormatDate(day.Date))
		if day.Label != "" {
			heading += " · " + day.Label
		}
		_, _ = fmt.Fprintln(w, Day(day.Color, heading))
		writeDestinations(w, day.Destinations)
		_, _ = fmt.Fprintln(w, Silent("  total "+amounts(day.TotalCost, day.TotalTime)))
	}

	if len(sum.Unscheduled) > 0 {
		_, _ = fmt.Fprintln(w, Header("Unscheduled"))
		writeDestinations(w, sum.Unscheduled)
		_, _ = fmt.Fprintln(w, Silent("  total "+amounts(sum.UnscheduledCost, sum.UnscheduledTime)))
	}

	_, _ = fmt.Fprintln(w, Header("Total: "+amounts(sum.TotalCost, sum.TotalTime)))
	if sum.HasBudget {
		line := fmt.Sprintf("Budget: $%s, remaining $%s",
			itinerary.FormatCost(sum.Settings.Budget), itinerary.FormatCost(sum.Remaining))
		if sum.Remaining < 0 {
			line = Warning(line + " (over budget)")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

func writeDestinations(w io.Writer, dests []domain.Destination) {
	for _, d := range dests {
		parts := []string{d.Name, "$" + itinerary.FormatCost(d.Cost)}
		if t := itinerary.FormatTime(d.Time); t != "" {
			parts = append(parts, t)
		}
		parts = append(parts, string(d.Category))
		_, _ = fmt.Fprintln(w, "  - "+strings.Join(parts, "  "))
	}
}

// amounts renders a cost and an optional duration: "$1,235, 2.5 hrs".
func amounts(cost, hours float64) string {
	line := "$" + itinerary.FormatCost(cost)
	if t := itinerary.FormatTime(hours); t != "" {
		line += ", " + t
	}
	return line
}
