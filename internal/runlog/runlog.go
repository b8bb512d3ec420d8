// Package runlog collects the non-fatal anomalies a processing run
// tolerates (unparseable rate lines, missing mapping targets, skipped
// rows) so the CLI can surface them after the batch completes.
package runlog

import "fmt"

// Entry is one diagnostic emitted during a run.
type Entry struct {
	Stage   string
	Subject string
	Message string
}

func (e Entry) String() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Stage, e.Subject, e.Message)
}

// Log accumulates entries in order. The zero value is not usable; call New.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log { return &Log{} }

// Add records a diagnostic.
func (l *Log) Add(stage, subject, format string, args ...any) {
	l.entries = append(l.entries, Entry{
		Stage:   stage,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns all recorded diagnostics in order.
func (l *Log) Entries() []Entry { return l.entries }

// Empty reports whether nothing was recorded.
func (l *Log) Empty() bool { return len(l.entries) == 0 }
