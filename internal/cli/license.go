package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/license"
	"github.com/roach88/o365ctl/internal/runlog"
)

// NewLicenseCommand creates the license command group.
func NewLicenseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "User license management",
	}
	cmd.AddCommand(newLicenseAssignCommand(rootOpts))
	return cmd
}

func newLicenseAssignCommand(rootOpts *RootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "assign <file> <tenant>",
		Short: "Assign a license SKU to each user",
		Long: `Assign the license identified by --license to every user in
the input file. The code resolves through the built-in decision table
(E1, E3, E5, F3) plus any skus rows from the config file; an unknown
code aborts before any remote call.

Example:
  o365ctl license assign ./new-hires.csv contoso --license E3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLicenseAssign(rootOpts, args[0], args[1], code, cmd)
		},
	}

	cmd.Flags().StringVar(&code, "license", "", "license code to assign (required)")
	_ = cmd.MarkFlagRequired("license")

	return cmd
}

func runLicenseAssign(opts *RootOptions, filePath, tenant, code string, cmd *cobra.Command) error {
	cfg, records, err := preflight(opts, filePath, tenant)
	if err != nil {
		return err
	}

	sku, err := license.Resolve(code, cfg.SKUs)
	if err != nil {
		var unknown *license.UnknownCodeError
		if errors.As(err, &unknown) {
			return WrapExitError(ExitCommandError, "invalid parameters", err)
		}
		return WrapExitError(ExitCommandError, "bad configuration", err)
	}

	ctx := cmd.Context()
	session, err := connectSession(ctx, opts, cfg, tenant, cmd)
	if err != nil {
		return err
	}

	log := runlog.New("license-assign", opts.LogDir)
	if err := log.Open(); err != nil {
		return WrapExitError(ExitFailure, "cannot open run log", err)
	}
	defer log.Close()

	console := newConsole(opts, cmd)
	console.Headline("Assigning %s (%s) to %d users in %s...", code, sku, len(records), tenant)

	assigner := &license.Assigner{Directory: session, Sink: console, Log: log}
	errCount := assigner.Run(ctx, records, code, sku)

	console.Headline("Done: %d users, %d errors. Log: %s", len(records), errCount, log.Path())
	return nil
}
