package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

func newShiftCmd(env Env) *cobra.Command {
	return LeafCommand{
		Use:   "shift <YYYY-MM-DD>",
		Short: "Move every date so the trip starts on the given day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, env, func(st Store) error {
				return runShift(cmd.Context(), cmd.OutOrStdout(), st, args[0])
			})
		},
	}.Build()
}

func runShift(ctx context.Context, w io.Writer, st Store, arg string) error {
	start, err := domain.ParseDate(arg)
	if err != nil {
		return err
	}
	if start.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}

	days, err := st.ShiftDates(ctx, start)
	if err != nil {
		return err
	}
	if days == 0 {
		_, _ = fmt.Fprintf(w, "itinerary already starts on %s\n", itinerary.FormatDate(start))
		return nil
	}
	_, _ = fmt.Fprintf(w, "moved every date by %+d days; the trip now starts on %s\n", days, itinerary.FormatDate(start))
	return nil
}

func newClearCmd(env Env) *cobra.Command {
	return LeafCommand{
		Use:   "clear",
		Short: "Delete every destination and day label",
		Args:  cobra.NoArgs,
		BoolFlags: []BoolFlag{
			{Name: "yes", Usage: "skip confirmation prompt"},
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return withStore(cmd, env, func(st Store) error {
				return runClear(cmd.Context(), cmd.OutOrStdout(), st, confirmFor(yes))
			})
		},
	}.Build()
}

func runClear(ctx context.Context, w io.Writer, st Store, confirm ConfirmFunc) error {
	if st.Snapshot().IsEmpty() {
		_, _ = fmt.Fprintln(w, "nothing to clear")
		return nil
	}

	ok, err := confirm("Delete every destination and day label? Trip settings are kept.")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	if err := st.Clear(ctx, true); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "itinerary cleared")
	return nil
}
