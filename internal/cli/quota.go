package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/report"
	"github.com/roach88/o365ctl/internal/runlog"
	"github.com/roach88/o365ctl/internal/sharepoint"
)

// NewQuotaCommand creates the quota command group.
func NewQuotaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "OneDrive storage quota management",
	}
	cmd.AddCommand(newQuotaAuditCommand(rootOpts))
	cmd.AddCommand(newQuotaSetCommand(rootOpts))
	return cmd
}

func newQuotaAuditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <file> <tenant>",
		Short: "Report each user's OneDrive quota",
		Long: `Report total, used, and remaining OneDrive storage for every
user in the input file. Read-only; lookup failures are reported per
record and never abort the run.

Example:
  o365ctl quota audit ./users.csv contoso`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuotaAudit(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runQuotaAudit(opts *RootOptions, filePath, tenant string, cmd *cobra.Command) error {
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
	console.Headline("Auditing OneDrive quotas for %d users in %s...", len(records), tenant)

	var errCount int
	for _, rec := range records {
		quota, err := session.DriveQuota(ctx, rec.PrincipalName)
		if err != nil {
			errCount++
			console.Record(report.Outcome{
				Pass:      "audit",
				Principal: rec.PrincipalName,
				Status:    report.StatusError,
				Detail:    err.Error(),
			})
			continue
		}
		console.Record(report.Outcome{
			Pass:      "audit",
			Principal: rec.PrincipalName,
			Status:    report.StatusMatch,
			Detail: fmt.Sprintf("%s used of %s (%s remaining)",
				formatBytes(quota.Used), formatBytes(quota.Total), formatBytes(quota.Remaining)),
		})
	}

	console.Headline("Done: %d users, %d errors.", len(records), errCount)
	return nil
}

func newQuotaSetCommand(rootOpts *RootOptions) *cobra.Command {
	var quotaMB, warnMB int64

	cmd := &cobra.Command{
		Use:   "set <file> <tenant>",
		Short: "Set OneDrive storage quota per user",
		Long: `Set the OneDrive storage maximum and warning level, in MB, on
every user's personal site via the tenant admin endpoint. The admin
credential comes from O365CTL_SP_USERNAME and O365CTL_SP_PASSWORD.

Example:
  o365ctl quota set ./users.csv contoso --quota 5120 --warn 4608`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuotaSet(rootOpts, args[0], args[1], quotaMB, warnMB, cmd)
		},
	}

	cmd.Flags().Int64Var(&quotaMB, "quota", 0, "storage maximum in MB (required)")
	cmd.Flags().Int64Var(&warnMB, "warn", 0, "warning level in MB (required)")
	_ = cmd.MarkFlagRequired("quota")
	_ = cmd.MarkFlagRequired("warn")

	return cmd
}

func runQuotaSet(opts *RootOptions, filePath, tenant string, quotaMB, warnMB int64, cmd *cobra.Command) error {
	if warnMB <= 0 || quotaMB <= warnMB {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("quota (%d MB) must be greater than warn (%d MB), both positive", quotaMB, warnMB))
	}
	cfg, records, err := preflight(opts, filePath, tenant)
	if err != nil {
		return err
	}

	admin, err := adminClient(opts, cfg.AdminURL(tenant))
	if err != nil {
		return WrapExitError(ExitCommandError, "sharepoint admin client", err)
	}

	log := runlog.New("quota-set", opts.LogDir)
	if err := log.Open(); err != nil {
		return WrapExitError(ExitFailure, "cannot open run log", err)
	}
	defer log.Close()

	console := newConsole(opts, cmd)
	console.Headline("Setting OneDrive quota to %d MB (warn %d MB) for %d users in %s...",
		quotaMB, warnMB, len(records), tenant)

	ctx := cmd.Context()
	sink := report.MultiSink{console, log}
	var errCount int
	for _, rec := range records {
		siteURL := sharepoint.PersonalSiteURL(tenant, rec.PrincipalName)
		log.Infof("Setting quota on %s", siteURL)
		if err := admin.SetStorageQuota(ctx, siteURL, quotaMB, warnMB); err != nil {
			errCount++
			sink.Record(report.Outcome{
				Pass:      "action",
				Principal: rec.PrincipalName,
				Status:    report.StatusError,
				Detail:    err.Error(),
			})
			continue
		}
		sink.Record(report.Outcome{
			Pass:      "action",
			Principal: rec.PrincipalName,
			Status:    report.StatusChanged,
			Detail:    fmt.Sprintf("quota set to %d MB", quotaMB),
		})
	}

	console.Headline("Done: %d users, %d errors. Log: %s", len(records), errCount, log.Path())
	return nil
}

// adminClient honors the test override before building a real client from
// environment credentials.
func adminClient(opts *RootOptions, adminURL string) (sharepoint.Admin, error) {
	if opts.AdminClient != nil {
		return opts.AdminClient(adminURL)
	}
	return sharepoint.New(adminURL, os.Getenv("O365CTL_SP_USERNAME"), os.Getenv("O365CTL_SP_PASSWORD"))
}

// formatBytes renders a byte count the way the quota report shows it.
func formatBytes(n int64) string {
	const gb = 1 << 30
	const mb = 1 << 20
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
