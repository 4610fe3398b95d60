// Package report carries per-record outcomes from the command cores to
// their presentation sinks. Business logic emits Outcome values; the
// console renderer and the run log consume them independently, so the
// cores stay headless and testable.
package report

// Status classifies a single record outcome.
type Status string

const (
	// StatusMatch: remote state already matches the desired state; no call
	// was (or will be) issued.
	StatusMatch Status = "match"

	// StatusChange: remote state differs and an update is (or would be)
	// required.
	StatusChange Status = "change"

	// StatusChanged: an update call was issued and accepted.
	StatusChanged Status = "changed"

	// StatusSkipped: the record was skipped during the action pass, e.g.
	// because its lookup failed.
	StatusSkipped Status = "skipped"

	// StatusError: the lookup or update for this record failed. Errors are
	// per-record and never abort the run.
	StatusError Status = "error"
)

// Outcome is one record's result in one pass.
type Outcome struct {
	Pass      string // "analysis" or "action"
	Principal string
	Status    Status
	Detail    string
}

// Sink consumes outcomes. Implementations must not retain the Outcome
// beyond the call.
type Sink interface {
	Record(o Outcome)
}

// MultiSink fans an outcome out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Record(o Outcome) {
	for _, s := range m {
		s.Record(o)
	}
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(o Outcome)

func (f SinkFunc) Record(o Outcome) { f(o) }
