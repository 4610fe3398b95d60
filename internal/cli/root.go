// Package cli wires the o365ctl commands. Each subcommand is a linear
// administrative workflow: validate parameters, establish a session,
// iterate the record table, one or two remote calls per row, one
// color-coded console line per row.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/directory"
	"github.com/roach88/o365ctl/internal/sharepoint"
)

// RootOptions holds global flags and the injection points for all commands.
type RootOptions struct {
	Verbose    bool
	NoColor    bool
	ConfigPath string

	// LogDir overrides the per-user run log location. Tests only.
	LogDir string

	// Sessions overrides the interactive Graph session provider. Tests
	// substitute a canned session here so no command ever prompts.
	Sessions directory.SessionProvider

	// AdminClient overrides the SharePoint admin client factory. Tests only.
	AdminClient func(adminURL string) (sharepoint.Admin, error)
}

// NewRootCommand creates the root command for the o365ctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "o365ctl",
		Short: "Office 365 tenant administration toolkit",
		Long: `o365ctl bundles the routine tenant administration workflows:
OneDrive storage quotas, license assignment, bulk endpoint connection
checks, and mailbox GUID reconciliation during migrations.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.o365ctl/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewMailboxCommand(opts))
	cmd.AddCommand(NewQuotaCommand(opts))
	cmd.AddCommand(NewLicenseCommand(opts))
	cmd.AddCommand(NewConnectCommand(opts))

	return cmd
}
