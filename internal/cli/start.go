package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msuozzo/aduro/internal/engine"
	"github.com/msuozzo/aduro/internal/event"
)

// StartOptions holds flags for the start command.
type StartOptions struct {
	*RootOptions
	Position int
}

// NewStartCommand creates the start command.
func NewStartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "start <asin>",
		Short: "Declare that reading of a book has started",
		Long: `Record a start-reading event for the given book and commit it.

Starting is always an explicit declaration; sync never infers it from the
remote snapshot.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts.RootOptions, cmd,
				event.SetReadingEvent{Asin: args[0], Position: opts.Position})
		},
	}

	cmd.Flags().IntVar(&opts.Position, "at", 0, "initial position (location)")

	return cmd
}

// runRegister registers a single manual event and commits it.
// Shared by start and finish.
func runRegister(opts *RootOptions, cmd *cobra.Command, ev event.Event) error {
	configureLogging(opts)

	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	mgr := rt.manager()
	ctx := cmd.Context()

	if err := mgr.RegisterEvents(ctx, ev); err != nil {
		if engine.IsInvalidTransition(err) {
			return WrapExitError(ExitFailure, "registration rejected", err)
		}
		return WrapExitError(ExitFailure, "failed to register event", err)
	}

	if err := mgr.CommitEvents(ctx); err != nil {
		return WrapExitError(ExitFailure, "failed to commit event", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return f.Success(fmt.Sprintf("recorded: %s", ev))
}
