package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
}

// logRow is one event in its canonical textual form.
type logRow struct {
	Seq  int    `json:"seq"`
	Line string `json:"line"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "log",
		Short:         "Print the event log in append order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	events, err := rt.store.Load(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load event log", err)
	}

	if opts.Format == "json" {
		rows := make([]logRow, len(events))
		for i, ev := range events {
			rows[i] = logRow{Seq: i + 1, Line: ev.String()}
		}
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(rows)
	}

	for i, ev := range events {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, ev)
	}
	return nil
}
