// Package cli implements the planner command line: an offline front end over
// the same itinerary store the API serves.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/service"
)

// Store is the part of the itinerary store the commands use.
// *service.Store satisfies it.
type Store interface {
	Snapshot() domain.State
	Itinerary() service.Summary
	Export(f exchange.Format) ([]byte, error)
	Import(ctx context.Context, f exchange.Format, data []byte, overwrite bool) (domain.State, error)
	ShiftDates(ctx context.Context, newStart domain.Date) (int, error)
	Clear(ctx context.Context, confirmed bool) error
}

// OpenFunc opens the store a command works on. The returned func releases it.
type OpenFunc func(ctx context.Context) (Store, func(), error)

// Env is what the commands need from the process: how to reach the store
// and the clock used for export file names.
type Env struct {
	Open OpenFunc
	Now  func() time.Time
}

// NewRootCmd builds the planner command tree.
func NewRootCmd(env Env) *cobra.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan a vacation itinerary from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newShowCmd(env),
		newExportCmd(env),
		newImportCmd(env),
		newShiftCmd(env),
		newClearCmd(env),
	)
	return root
}

// Execute runs the planner and reports a failure on stderr.
func Execute(env Env) error {
	err := NewRootCmd(env).Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, Error("error: "+err.Error()))
	}
	return err
}

// withStore opens the store for the duration of fn.
func withStore(cmd *cobra.Command, env Env, fn func(st Store) error) error {
	st, release, err := env.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer release()
	return fn(st)
}
