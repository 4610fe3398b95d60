package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/o365ctl/internal/config"
	"github.com/roach88/o365ctl/internal/directory"
	"github.com/roach88/o365ctl/internal/ingest"
	"github.com/roach88/o365ctl/internal/report"
)

// preflight validates the shared positional parameters and loads the
// config and record table. All failures here are fatal command errors.
func preflight(opts *RootOptions, filePath, tenant string) (config.Config, []ingest.Record, error) {
	if err := ingest.ValidateTenant(tenant); err != nil {
		return config.Config{}, nil, WrapExitError(ExitCommandError, "invalid parameters", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, WrapExitError(ExitCommandError, "bad configuration", err)
	}
	records, err := ingest.Load(filePath)
	if err != nil {
		return config.Config{}, nil, WrapExitError(ExitCommandError, "cannot read input", err)
	}
	return cfg, records, nil
}

// connectSession opens the directory session, honoring the test override.
// Session establishment failure is fatal and aborts before any record
// processing.
func connectSession(ctx context.Context, opts *RootOptions, cfg config.Config, tenant string, cmd *cobra.Command) (directory.Session, error) {
	provider := opts.Sessions
	if provider == nil {
		provider = directory.GraphProvider{
			TenantID: cfg.TenantID(tenant),
			ClientID: cfg.ClientID(),
			Prompt:   cmd.OutOrStdout(),
		}
	}
	session, err := provider.Connect(ctx)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "session establishment failed", err)
	}
	return session, nil
}

// newConsole builds the per-record console sink for a command.
func newConsole(opts *RootOptions, cmd *cobra.Command) *report.Console {
	return &report.Console{Writer: cmd.OutOrStdout(), NoColor: opts.NoColor}
}

// confirm presents the binary proceed/abort choice. Only an explicit
// "y"/"Y" proceeds; anything else, including closed stdin, aborts.
func confirm(cmd *cobra.Command, prompt string) func() (bool, error) {
	return func() (bool, error) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false, nil
		}
		return strings.EqualFold(strings.TrimSpace(line), "y"), nil
	}
}
