// Package ingest loads the per-user record table that drives every bulk
// command. The table is CSV with a header row; it must carry a principal
// name column and, for reconciliation, a declared GUID column.
//
// Files typically come out of Windows export tooling, so the reader
// tolerates UTF-8 and UTF-16 byte-order marks transparently.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one row of the input table. It is immutable for the run; the
// declared GUID is kept raw (braces and case preserved) and normalized
// only at comparison time.
type Record struct {
	PrincipalName string `csv:"UserPrincipalName"`
	DeclaredGUID  string `csv:"MailboxGuid"`
}

// InputError indicates a missing, unreadable, or empty input file.
// Fatal, pre-flight.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input file %s: no records", e.Path)
}

func (e *InputError) Unwrap() error { return e.Err }

// ConfigError indicates bad or missing command configuration, such as a
// blank tenant name. Fatal, pre-flight.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// ValidateTenant checks the tenant-name positional parameter.
func ValidateTenant(tenant string) error {
	if strings.TrimSpace(tenant) == "" {
		return &ConfigError{Message: "tenant name must not be blank"}
	}
	return nil
}

// Load reads the record table at path. The header row is required; rows
// are returned in file order. No row-level schema validation happens here:
// a malformed row surfaces later as a remote lookup failure, matching the
// per-record error model of every command.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &InputError{Path: path}
	}
	return records, nil
}

// Read parses records from r. Split from Load so tests and callers with
// in-memory tables never touch the filesystem.
func Read(r io.Reader) ([]Record, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var records []Record
	if err := gocsv.Unmarshal(decoded, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}
