package license

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/o365ctl/internal/ingest"
	"github.com/roach88/o365ctl/internal/report"
	"github.com/roach88/o365ctl/internal/runlog"
)

// Assigner applies one license SKU to every record in a single linear
// pass. Per-record failures are recorded and the loop continues.
type Assigner struct {
	Directory interface {
		AssignLicense(ctx context.Context, principal string, sku uuid.UUID) error
	}
	Sink report.Sink
	Log  *runlog.Log
}

// Run assigns sku to every record. Returns the number of per-record
// errors; the run itself always completes.
func (a *Assigner) Run(ctx context.Context, records []ingest.Record, code string, sku uuid.UUID) int {
	var errCount int
	sink := report.MultiSink{a.Sink, a.Log}

	for _, rec := range records {
		a.Log.Infof("Assigning %s (%s) to %s", code, sku, rec.PrincipalName)
		if err := a.Directory.AssignLicense(ctx, rec.PrincipalName, sku); err != nil {
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
			Detail:    fmt.Sprintf("license %s assigned", code),
		})
	}
	return errCount
}
