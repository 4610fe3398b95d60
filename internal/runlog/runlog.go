// Package runlog writes the append-only, run-scoped activity log. The log
// is write-only: the tool never reads it back, it exists for the operator
// and for after-the-fact review of what a run touched.
//
// The file is created lazily by Open, so a run that aborts at the
// confirmation gate leaves no log behind. Each run gets its own file,
// named by tool and run timestamp, under a fixed per-user location.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/roach88/o365ctl/internal/report"
)

// Log is a run-scoped append-only log file. The zero value is not usable;
// create one with New and call Open before writing.
type Log struct {
	tool  string
	dir   string
	clock func() time.Time

	runID  string
	path   string
	file   *os.File
	logger *logrus.Logger
}

// New prepares a log for the named tool. dir overrides the per-user
// default location (used by tests); pass "" for the default. No file is
// created until Open.
func New(tool, dir string) *Log {
	return &Log{
		tool:  tool,
		dir:   dir,
		clock: time.Now,
		runID: uuid.NewString(),
	}
}

// WithClock overrides the timestamp source. Tests only.
func (l *Log) WithClock(clock func() time.Time) *Log {
	l.clock = clock
	return l
}

// Open creates the log file in append mode. Called on entry to the action
// pass; a run that never acts never creates the file.
func (l *Log) Open() error {
	if l.file != nil {
		return nil
	}

	dir := l.dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve log location: %w", err)
		}
		dir = filepath.Join(home, ".o365ctl", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	l.path = filepath.Join(dir, fmt.Sprintf("%s-%s.log", l.tool, l.clock().Format("20060102-150405")))
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.file = f

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})
	l.logger = logger

	l.logger.WithField("run", l.runID).Infof("run started")
	return nil
}

// Path returns the log file path; empty until Open has been called.
func (l *Log) Path() string { return l.path }

// Infof appends a free-text entry. No-op before Open.
func (l *Log) Infof(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Infof(format, args...)
}

// Errorf appends a free-text error entry. No-op before Open.
func (l *Log) Errorf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Errorf(format, args...)
}

// Record implements report.Sink; every outcome of the action pass lands
// in the log with its principal and status.
func (l *Log) Record(o report.Outcome) {
	if l.logger == nil {
		return
	}
	entry := l.logger.WithFields(logrus.Fields{
		"principal": o.Principal,
		"status":    string(o.Status),
	})
	switch o.Status {
	case report.StatusError:
		entry.Errorf("ERROR %s", o.Detail)
	case report.StatusSkipped:
		entry.Warn(o.Detail)
	default:
		entry.Info(o.Detail)
	}
}

// Close flushes and closes the file. Safe to call when Open never ran.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	l.logger.WithField("run", l.runID).Infof("run finished")
	err := l.file.Close()
	l.file = nil
	l.logger = nil
	return err
}
