package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/o365ctl/internal/ingest"
	"github.com/roach88/o365ctl/internal/report"
	"github.com/roach88/o365ctl/internal/runlog"
)

// State names the phases of a reconciliation run.
type State string

const (
	StateAnalyzing            State = "analyzing"
	StateAwaitingConfirmation State = "awaiting-confirmation"
	StateActing               State = "acting"
	StateAborted              State = "aborted"
	StateDone                 State = "done"
)

// Summary reports how a run ended and what the action pass did.
type Summary struct {
	Final   State
	Matched int
	Changed int
	Errors  int
}

// Driver runs the reconciliation state machine:
//
//	Analyzing → AwaitingConfirmation → {Acting → Done, Aborted}
//
// Classifications are never carried between passes — the action pass
// re-fetches remote state, so anything that drifted between passes is
// classified against what is actually there. Per-record failures are
// recorded and the loop continues; nothing short of a failed log open
// aborts once acting has begun.
type Driver struct {
	// Directory is the single long-lived session handle, reused for every
	// record in both passes.
	Directory Directory

	// Console receives one outcome per record per pass.
	Console report.Sink

	// Log is the append-only run log. It is opened only on entry to
	// Acting, so an aborted run leaves no file.
	Log *runlog.Log

	// Confirm presents the binary proceed/abort choice to the operator.
	Confirm func() (bool, error)
}

// Run executes both passes over records. An abort at the confirmation
// gate returns Summary{Final: StateAborted} and a nil error: no changes
// were made and that is a normal ending.
func (d *Driver) Run(ctx context.Context, records []ingest.Record) (Summary, error) {
	slog.Debug("analysis pass starting", "records", len(records))
	d.analyze(ctx, records)

	proceed, err := d.Confirm()
	if err != nil {
		return Summary{Final: StateAborted}, nil
	}
	if !proceed {
		slog.Debug("operator declined, aborting without changes")
		return Summary{Final: StateAborted}, nil
	}

	if err := d.Log.Open(); err != nil {
		return Summary{Final: StateActing}, fmt.Errorf("cannot start action pass: %w", err)
	}
	defer d.Log.Close()

	summary := d.act(ctx, records)
	summary.Final = StateDone
	return summary, nil
}

// analyze classifies every record once and reports, mutating nothing.
func (d *Driver) analyze(ctx context.Context, records []ingest.Record) {
	for _, rec := range records {
		res := Classify(ctx, d.Directory, rec)
		d.Console.Record(analysisOutcome(rec, res))
	}
}

// act re-classifies every record against live remote state and applies
// updates where required.
func (d *Driver) act(ctx context.Context, records []ingest.Record) Summary {
	var summary Summary
	sink := report.MultiSink{d.Console, d.Log}

	for _, rec := range records {
		res := Classify(ctx, d.Directory, rec)
		switch res.Classification {
		case Error:
			summary.Errors++
			sink.Record(report.Outcome{
				Pass:      "action",
				Principal: rec.PrincipalName,
				Status:    report.StatusError,
				Detail:    fmt.Sprintf("skipped: %v", res.Err),
			})

		case Match:
			summary.Matched++
			sink.Record(report.Outcome{
				Pass:      "action",
				Principal: rec.PrincipalName,
				Status:    report.StatusMatch,
				Detail:    "mailbox GUID matches, nothing to do",
			})

		case Change:
			d.Log.Infof("Attempting to change mailbox GUID for %s to %s", rec.PrincipalName, res.Declared)
			if err := d.Directory.SetMailboxGUID(ctx, rec.PrincipalName, res.Declared); err != nil {
				summary.Errors++
				sink.Record(report.Outcome{
					Pass:      "action",
					Principal: rec.PrincipalName,
					Status:    report.StatusError,
					Detail:    err.Error(),
				})
				continue
			}
			summary.Changed++
			sink.Record(report.Outcome{
				Pass:      "action",
				Principal: rec.PrincipalName,
				Status:    report.StatusChanged,
				Detail:    fmt.Sprintf("mailbox GUID changed to %s", res.Declared),
			})
		}
	}
	return summary
}

func analysisOutcome(rec ingest.Record, res Result) report.Outcome {
	o := report.Outcome{Pass: "analysis", Principal: rec.PrincipalName}
	switch res.Classification {
	case Match:
		o.Status = report.StatusMatch
		o.Detail = "mailbox GUID matches"
	case Change:
		o.Status = report.StatusChange
		o.Detail = fmt.Sprintf("declared %s, remote %s", res.Declared, res.Remote)
	default:
		o.Status = report.StatusError
		o.Detail = res.Err.Error()
	}
	return o
}
