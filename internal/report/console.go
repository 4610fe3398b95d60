package report

import (
	"fmt"
	"io"
)

// ANSI escape sequences for the three outcome colors. The corpus of
// operator tooling this replaces color-codes every record line: green for
// success, yellow for a pending or applied change, red for an error.
const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiReset  = "\x1b[0m"
)

// Console renders outcomes as one color/marker-coded line per record.
type Console struct {
	Writer io.Writer

	// NoColor suppresses ANSI sequences (non-TTY output, tests).
	NoColor bool
}

// markers by status; the textual marker survives with NoColor so piped
// output stays machine-greppable.
var markers = map[Status]string{
	StatusMatch:   "[ OK ]",
	StatusChanged: "[ OK ]",
	StatusChange:  "[WARN]",
	StatusSkipped: "[WARN]",
	StatusError:   "[FAIL]",
}

func (c *Console) color(s Status) (string, string) {
	if c.NoColor {
		return "", ""
	}
	switch s {
	case StatusMatch, StatusChanged:
		return ansiGreen, ansiReset
	case StatusChange, StatusSkipped:
		return ansiYellow, ansiReset
	default:
		return ansiRed, ansiReset
	}
}

// Record implements Sink.
func (c *Console) Record(o Outcome) {
	open, reset := c.color(o.Status)
	marker := markers[o.Status]
	if marker == "" {
		marker = "[ ?? ]"
	}
	if o.Detail != "" {
		fmt.Fprintf(c.Writer, "%s%s %s: %s%s\n", open, marker, o.Principal, o.Detail, reset)
		return
	}
	fmt.Fprintf(c.Writer, "%s%s %s%s\n", open, marker, o.Principal, reset)
}

// Headline prints a pass banner outside the per-record stream.
func (c *Console) Headline(format string, args ...any) {
	fmt.Fprintf(c.Writer, format+"\n", args...)
}
