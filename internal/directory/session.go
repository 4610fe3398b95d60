// Package directory abstracts the tenant directory service behind a
// Session handle. The reconciliation driver and the bulk commands consume
// the Session interface only; the Graph-backed implementation lives in
// graph.go so tests can substitute a canned session without any
// interactive prompt.
package directory

import (
	"context"

	"github.com/google/uuid"
)

// User is the slice of a directory account this tool cares about.
type User struct {
	ID            string
	PrincipalName string
	MailboxGUID   string
}

// Quota describes a user's OneDrive storage allocation in bytes.
type Quota struct {
	Total     int64
	Used      int64
	Remaining int64
}

// Session is an authenticated handle to the tenant directory. A single
// session is established once per run and reused for every record in
// every pass; there is no pooling or reconnect-on-drop — a dropped
// session surfaces as per-record lookup or update failures.
type Session interface {
	// Lookup resolves a principal name to its directory account.
	// A missing principal returns a *LookupError with NotFound set.
	Lookup(ctx context.Context, principal string) (User, error)

	// SetMailboxGUID writes the mailbox GUID attribute on the account.
	SetMailboxGUID(ctx context.Context, principal, guid string) error

	// DriveQuota reads the user's OneDrive storage quota.
	DriveQuota(ctx context.Context, principal string) (Quota, error)

	// AssignLicense adds the license SKU to the account. Assigning a SKU
	// the account already holds is accepted by the service as a no-op.
	AssignLicense(ctx context.Context, principal string, sku uuid.UUID) error

	// OrganizationName reads the tenant's display name. Used as the cheap
	// authenticated probe by the connect command.
	OrganizationName(ctx context.Context) (string, error)
}

// SessionProvider obtains credentials and opens a Session. Connect is
// called exactly once per run; failure is fatal and aborts before any
// record processing.
type SessionProvider interface {
	Connect(ctx context.Context) (Session, error)
}
