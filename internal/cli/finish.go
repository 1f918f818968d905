package cli

import (
	"github.com/spf13/cobra"

	"github.com/msuozzo/aduro/internal/event"
)

// NewFinishCommand creates the finish command.
func NewFinishCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "finish <asin>",
		Short:         "Declare that a book has been finished",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(rootOpts, cmd, event.SetFinishedEvent{Asin: args[0]})
		},
	}

	return cmd
}
