package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/msuozzo/aduro/internal/projection"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
}

// statusRow is one book's derived status, in display order fields.
type statusRow struct {
	Asin     string `json:"asin"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Status   string `json:"status"`
	Position int    `json:"position,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show derived reading status for every catalog book",
		Long: `Show the current status of each book in the catalog.

Status is derived by replaying the full event log; it is never read from
a stored snapshot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	mgr := rt.manager()
	progress, err := mgr.Progress(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to derive state", err)
	}

	rows := make([]statusRow, 0, rt.catalog.Len())
	for _, book := range mgr.Books() {
		bs := progress[book.Asin]
		row := statusRow{
			Asin:   book.Asin,
			Title:  book.Title,
			Author: book.Author,
			Status: bs.Status.String(),
		}
		if bs.Status == projection.StatusReading {
			row.Position = bs.LastPosition
		}
		rows = append(rows, row)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return f.Success(rows)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tAUTHOR\tASIN\tSTATUS\tPOSITION")
	for _, row := range rows {
		pos := "-"
		if row.Status == projection.StatusReading.String() {
			pos = fmt.Sprintf("%d", row.Position)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Title, row.Author, row.Asin, row.Status, pos)
	}
	return w.Flush()
}
