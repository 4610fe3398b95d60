// Package guid provides GUID string normalization and comparison.
//
// Directory attributes arrive in whatever shape the exporting tool chose:
// brace-delimited ("{...}"), lowercase, or both. All comparisons in this
// tool happen on the normalized form so that presentation differences never
// register as drift.
package guid

import (
	"strings"

	"github.com/google/uuid"
)

// Normalize returns the canonical comparison form of a GUID string:
// surrounding braces stripped, letters folded to uppercase, outer
// whitespace removed.
//
// Normalize is purely syntactic. It does not require the input to be a
// well-formed GUID; a malformed value normalizes to its uppercased self
// and will simply never match a real remote GUID.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return strings.ToUpper(s)
}

// Equal reports whether two GUID strings denote the same value after
// normalization. Comparison is exact: no fuzzy matching, no partial-GUID
// handling.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Valid reports whether s parses as a well-formed GUID in any of the
// accepted renderings (braced, hyphenated, raw hex).
func Valid(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}
