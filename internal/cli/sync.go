package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msuozzo/aduro/internal/engine"
	"github.com/msuozzo/aduro/internal/event"
	"github.com/msuozzo/aduro/internal/kindle"
	"github.com/msuozzo/aduro/internal/library"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions

	// NoInput skips the interactive start/finish prompt.
	NoInput bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile remote reading progress against the event log",
		Long: `Fetch the current snapshot, diff it against recorded state, and commit
the resulting events.

Detection is conservative: it records completions and newly seen books.
Starting a book is always declared manually, either interactively here or
with the start command.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoInput, "no-input", false, "skip the interactive start/finish prompt")

	return cmd
}

func runSync(opts *SyncOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	mgr := rt.manager()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Detecting updates to Kindle progress:")
	detected, err := mgr.DetectEvents(ctx)
	if err != nil {
		if errors.Is(err, kindle.ErrUnavailable) {
			return WrapExitError(ExitFailure, "failed to retrieve Kindle progress updates", err)
		}
		return WrapExitError(ExitFailure, "detection failed", err)
	}

	if len(detected) == 0 {
		fmt.Fprintln(out, "  No updates detected")
	} else {
		for _, ev := range detected {
			fmt.Fprintf(out, "  %s\n", ev)
		}
	}

	if !opts.NoInput {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Mark new books as 'reading' or old books as 'read'? (y/N)")
		in := bufio.NewScanner(cmd.InOrStdin())
		if promptLine(out, in) == "y" {
			if err := changeStatePrompt(mgr, out, in, cmd); err != nil {
				return err
			}
		}
	}

	if err := mgr.CommitEvents(ctx); err != nil {
		return WrapExitError(ExitFailure, "commit failed; pending events preserved", err)
	}

	fmt.Fprintln(out, "Finished updating.")
	return nil
}

// promptLine prints the prompt marker and reads one trimmed line.
// Returns "q" on EOF so every loop terminates cleanly.
func promptLine(out io.Writer, in *bufio.Scanner) string {
	fmt.Fprint(out, "> ")
	if !in.Scan() {
		return "q"
	}
	return strings.TrimSpace(in.Text())
}

// changeStatePrompt runs the interactive loop that registers manual
// start/finish declarations against the manager.
func changeStatePrompt(mgr *engine.Manager, out io.Writer, in *bufio.Scanner, cmd *cobra.Command) error {
	ctx := cmd.Context()
	books := mgr.Books()

	for {
		progress, err := mgr.Progress(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to derive state", err)
		}

		fmt.Fprintln(out, "Books:")
		for i, book := range books {
			fmt.Fprintf(out, "\t%d: %s [%s]\n", i+1, book, progress[book.Asin].Status)
		}
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "| start {#} [pos] | Start reading book with index {#}")
		fmt.Fprintln(out, "| finish {#}      | Finish reading book with index {#}")
		fmt.Fprintln(out, "| q               | Quit")

		line := promptLine(out, in)
		if line == "q" {
			return nil
		}

		ev, err := parsePromptCommand(line, books)
		if err != nil {
			fmt.Fprintf(out, "Invalid command: %v\n\n", err)
			continue
		}

		if err := mgr.RegisterEvents(ctx, ev); err != nil {
			if engine.IsInvalidTransition(err) {
				fmt.Fprintf(out, "Rejected: %v\n\n", err)
				continue
			}
			return WrapExitError(ExitFailure, "failed to register event", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "REGISTERED EVENT:")
		fmt.Fprintf(out, "  %s\n\n", ev)
	}
}

// parsePromptCommand turns a "start {#} [pos]" or "finish {#}" line into
// an event against the displayed book list.
func parsePromptCommand(line string, books []library.Book) (event.Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("expected a command and a book index")
	}

	idx, err := strconv.Atoi(fields[1])
	if err != nil || idx < 1 || idx > len(books) {
		return nil, fmt.Errorf("book index %q out of range", fields[1])
	}
	book := books[idx-1]

	switch fields[0] {
	case "start":
		pos := 0
		if len(fields) > 2 {
			pos, err = strconv.Atoi(fields[2])
			if err != nil || pos < 0 {
				return nil, fmt.Errorf("position %q is not a non-negative integer", fields[2])
			}
		}
		return event.SetReadingEvent{Asin: book.Asin, Position: pos}, nil
	case "finish":
		return event.SetFinishedEvent{Asin: book.Asin}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", fields[0])
	}
}
