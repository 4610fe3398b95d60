package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/config"
	"github.com/roach88/o365ctl/internal/endpoint"
	"github.com/roach88/o365ctl/internal/ingest"
)

// NewConnectCommand creates the connect command.
func NewConnectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <tenant>",
		Short: "Verify connectivity to the tenant's service endpoints",
		Long: `Authenticate once and probe each service endpoint with a cheap
read: the directory service and, when admin credentials are configured,
the SharePoint admin site. Any failed probe makes the command exit
non-zero.

Example:
  o365ctl connect contoso`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runConnect(opts *RootOptions, tenant string, cmd *cobra.Command) error {
	if err := ingest.ValidateTenant(tenant); err != nil {
		return WrapExitError(ExitCommandError, "invalid parameters", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "bad configuration", err)
	}

	ctx := cmd.Context()
	session, err := connectSession(ctx, opts, cfg, tenant, cmd)
	if err != nil {
		return err
	}

	checks := []endpoint.Check{
		{Name: "graph", Probe: func(ctx context.Context) (string, error) {
			name, err := session.OrganizationName(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("connected to %s", name), nil
		}},
	}

	adminURL := cfg.AdminURL(tenant)
	if admin, adminErr := adminClient(opts, adminURL); adminErr == nil {
		checks = append(checks, endpoint.Check{Name: "sharepoint-admin", Probe: func(ctx context.Context) (string, error) {
			if err := admin.Probe(ctx); err != nil {
				return "", err
			}
			return fmt.Sprintf("connected to %s", adminURL), nil
		}})
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "skipping sharepoint-admin: %v\n", adminErr)
	}

	console := newConsole(opts, cmd)
	console.Headline("Checking %d endpoints for %s...", len(checks), tenant)

	if failed := endpoint.Run(ctx, checks, console); failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d endpoint check(s) failed", failed))
	}
	console.Headline("All endpoints reachable.")
	return nil
}
