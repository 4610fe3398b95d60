package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/reconcile"
	"github.com/roach88/o365ctl/internal/runlog"
)

// NewMailboxCommand creates the mailbox command group.
func NewMailboxCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailbox",
		Short: "Mailbox migration workflows",
	}
	cmd.AddCommand(newMatchGuidsCommand(rootOpts))
	return cmd
}

func newMatchGuidsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match-guids <file> <tenant>",
		Short: "Reconcile declared mailbox GUIDs against the directory",
		Long: `Reconcile mailbox GUIDs during a migration.

The input file is CSV with a header row and UserPrincipalName and
MailboxGuid columns; braces and letter case in the GUIDs are ignored.
The command first runs a read-only analysis pass classifying every
record, then asks for confirmation before the action pass re-checks
live state and applies updates where the GUIDs differ. Every action
pass outcome is appended to the run log.

Example:
  o365ctl mailbox match-guids ./mailboxes.csv contoso`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatchGuids(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runMatchGuids(opts *RootOptions, filePath, tenant string, cmd *cobra.Command) error {
	cfg, records, err := preflight(opts, filePath, tenant)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := connectSession(ctx, opts, cfg, tenant, cmd)
	if err != nil {
		return err
	}

	console := newConsole(opts, cmd)
	console.Headline("Analyzing %d mailboxes in %s...", len(records), tenant)

	driver := &reconcile.Driver{
		Directory: session,
		Console:   console,
		Log:       runlog.New("match-guids", opts.LogDir),
		Confirm:   confirm(cmd, "Apply the changes listed above?"),
	}

	summary, err := driver.Run(ctx, records)
	if err != nil {
		return WrapExitError(ExitFailure, "reconciliation failed", err)
	}

	if summary.Final == reconcile.StateAborted {
		console.Headline("Aborted. No changes were made.")
		return nil
	}

	console.Headline("Done: %d matched, %d changed, %d errors. Log: %s",
		summary.Matched, summary.Changed, summary.Errors, driver.Log.Path())
	if summary.Errors > 0 {
		// Per-record errors never fail the run; they are visible above and
		// in the log.
		fmt.Fprintln(cmd.OutOrStdout(), "Review the error lines before re-running.")
	}
	return nil
}
