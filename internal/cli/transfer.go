package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/exchange"
)

func newExportCmd(env Env) *cobra.Command {
	return LeafCommand{
		Use:   "export",
		Short: "Write the itinerary to a JSON or CSV file",
		Long: "Write the itinerary to a file named vacation-itinerary-YYYY-MM-DD.<format> " +
			"in the current directory, or to --out. Use --out - for stdout.",
		Args: cobra.NoArgs,
		StrFlags: []StringFlag{
			{Name: "format", Usage: "json or csv", Default: string(exchange.FormatJSON)},
			{Name: "out", Usage: "output path, - for stdout"},
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			f, err := exchange.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			return withStore(cmd, env, func(st Store) error {
				return runExport(cmd.OutOrStdout(), st, f, out, env.Now())
			})
		},
	}.Build()
}

func runExport(w io.Writer, st Store, f exchange.Format, out string, now time.Time) error {
	data, err := st.Export(f)
	if err != nil {
		return err
	}

	if out == "-" {
		_, err := w.Write(data)
		return err
	}
	if out == "" {
		out = exchange.FileName(f, now)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	_, _ = fmt.Fprintf(w, "exported itinerary to %s\n", out)
	return nil
}

func newImportCmd(env Env) *cobra.Command {
	return LeafCommand{
		Use:   "import <file>",
		Short: "Replace the itinerary with a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		BoolFlags: []BoolFlag{
			{Name: "yes", Usage: "replace a non-empty itinerary without asking"},
		},
		StrFlags: []StringFlag{
			{Name: "format", Usage: "json or csv (default: from the file extension)"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			yes, _ := cmd.Flags().GetBool("yes")
			return withStore(cmd, env, func(st Store) error {
				return runImport(cmd.Context(), cmd.OutOrStdout(), st, args[0], formatFlag, confirmFor(yes))
			})
		},
	}.Build()
}

func runImport(ctx context.Context, w io.Writer, st Store, path, formatFlag string, confirm ConfirmFunc) error {
	f, err := importFormat(path, formatFlag)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	overwrite := false
	if !st.Snapshot().IsEmpty() {
		ok, err := confirm("Replace the current itinerary? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
		overwrite = true
	}

	imported, err := st.Import(ctx, f, data, overwrite)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "imported %d destinations and %d day labels\n",
		len(imported.Destinations), len(imported.DayLabels))
	return nil
}

// importFormat uses the --format flag when set, otherwise the file extension.
func importFormat(path, formatFlag string) (exchange.Format, error) {
	if formatFlag != "" {
		return exchange.ParseFormat(formatFlag)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return exchange.FormatCSV, nil
	}
	return exchange.FormatJSON, nil
}
