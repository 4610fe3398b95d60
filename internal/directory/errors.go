package directory

import (
	"errors"
	"fmt"

	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
)

// AuthError represents a session establishment failure. It is fatal: the
// run aborts before any record is processed, and there is no retry.
type AuthError struct {
	Endpoint string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication to %s failed: %v", e.Endpoint, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// LookupError represents a per-record remote read failure. Recorded,
// non-fatal: the loop continues to the next record.
type LookupError struct {
	Principal string
	NotFound  bool
	Err       error
}

func (e *LookupError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("lookup %s: not found", e.Principal)
	}
	return fmt.Sprintf("lookup %s: %v", e.Principal, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// UpdateError represents a per-record remote mutation rejection. Recorded,
// non-fatal.
type UpdateError struct {
	Principal string
	Err       error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s: %v", e.Principal, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a lookup failure for a principal that
// does not exist in the directory.
func IsNotFound(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.NotFound
	}
	return false
}

// graphNotFound reports whether a Graph call failed because the addressed
// resource does not exist.
func graphNotFound(err error) bool {
	var oerr *odataerrors.ODataError
	if !errors.As(err, &oerr) {
		return false
	}
	if oerr.ResponseStatusCode == 404 {
		return true
	}
	if mainErr := oerr.GetErrorEscaped(); mainErr != nil && mainErr.GetCode() != nil {
		return *mainErr.GetCode() == "Request_ResourceNotFound"
	}
	return false
}

// graphMessage extracts the service-provided message from a Graph error,
// falling back to the transport error text.
func graphMessage(err error) string {
	var oerr *odataerrors.ODataError
	if errors.As(err, &oerr) {
		if mainErr := oerr.GetErrorEscaped(); mainErr != nil && mainErr.GetMessage() != nil {
			return *mainErr.GetMessage()
		}
	}
	return err.Error()
}
