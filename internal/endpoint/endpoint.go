// Package endpoint implements the bulk connect verification: an ordered
// sequence of cheap authenticated reads, one per service endpoint, with a
// per-endpoint pass/fail report.
package endpoint

import (
	"context"
	"log/slog"

	"github.com/roach88/o365ctl/internal/report"
)

// Check is one service endpoint probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) (string, error) // detail on success
}

// Run probes every check in order, emitting one outcome per endpoint.
// A failed probe does not stop the remaining checks; the number of
// failures is returned so the command can exit non-zero on any.
func Run(ctx context.Context, checks []Check, sink report.Sink) int {
	var failed int
	for _, check := range checks {
		slog.Debug("probing endpoint", "endpoint", check.Name)
		detail, err := check.Probe(ctx)
		if err != nil {
			failed++
			sink.Record(report.Outcome{
				Pass:      "connect",
				Principal: check.Name,
				Status:    report.StatusError,
				Detail:    err.Error(),
			})
			continue
		}
		sink.Record(report.Outcome{
			Pass:      "connect",
			Principal: check.Name,
			Status:    report.StatusMatch,
			Detail:    detail,
		})
	}
	return failed
}
