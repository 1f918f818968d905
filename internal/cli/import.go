package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msuozzo/aduro/internal/event"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a legacy plain-text event store",
		Long: `Append the events of a legacy newline-delimited store to the log.

Lines use the original textual format, e.g.:

  ADD B000FC1PJI
  START READING B000FC1PJI FROM LOCATION 40
  FINISHED READING B000FC1PJI

Import is all-or-nothing: an unparseable line aborts the whole batch
before anything is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	file, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open legacy store", err)
	}
	defer file.Close()

	var events []event.Event
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ev, err := event.Parse(line)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("line %d of %s", lineNo, path), err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read legacy store", err)
	}

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.store.Append(cmd.Context(), events); err != nil {
		return WrapExitError(ExitFailure, "failed to append imported events", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return f.Success(fmt.Sprintf("imported %d events from %s", len(events), path))
}
