// Package reconcile implements the mailbox GUID reconciliation workflow:
// an analysis pass classifying every record against live remote state, an
// interactive confirmation gate, and an action pass that applies updates
// for records whose classification demands one.
package reconcile

import (
	"context"

	"github.com/roach88/o365ctl/internal/directory"
	"github.com/roach88/o365ctl/internal/guid"
	"github.com/roach88/o365ctl/internal/ingest"
)

// Classification is the per-record verdict, recomputed in every pass.
type Classification string

const (
	// Match: normalized declared GUID equals normalized remote GUID.
	Match Classification = "Match"

	// Change: normalized values differ; an update is required.
	Change Classification = "Change"

	// Error: the remote lookup failed, so no comparison is possible.
	Error Classification = "Error"
)

// Directory is the slice of the session the reconciler consumes.
// directory.Session satisfies it; tests use a canned fake.
type Directory interface {
	Lookup(ctx context.Context, principal string) (directory.User, error)
	SetMailboxGUID(ctx context.Context, principal, guid string) error
}

// Result pairs a classification with the normalized GUIDs that produced
// it, so callers can report without re-deriving them.
type Result struct {
	Classification Classification
	Declared       string // normalized declared GUID
	Remote         string // normalized remote GUID, empty on Error
	Err            error  // lookup error, set only on Error
}

// Classify fetches the record's current remote state and classifies it
// against the declared state. The comparison is exact after normalization:
// differing normalized strings mean Change, equal strings mean Match, and
// a failed lookup is always Error regardless of the declared value.
//
// Classify holds no state and caches nothing; the action pass calls it
// again so decisions are made against live remote state.
func Classify(ctx context.Context, dir Directory, rec ingest.Record) Result {
	declared := guid.Normalize(rec.DeclaredGUID)

	user, err := dir.Lookup(ctx, rec.PrincipalName)
	if err != nil {
		return Result{Classification: Error, Declared: declared, Err: err}
	}

	remote := guid.Normalize(user.MailboxGUID)
	if declared != remote {
		return Result{Classification: Change, Declared: declared, Remote: remote}
	}
	return Result{Classification: Match, Declared: declared, Remote: remote}
}
