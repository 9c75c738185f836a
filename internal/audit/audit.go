// Package audit implements the append-only run log written around each
// pipeline phase.
//
// The log is a plain text file with one timestamped line per event:
//
//	2025-08-25T10:04:05.123Z extract,extraction started
//
// It is write-only within a run and is never read back by the pipeline; its
// audience is the operator auditing what a run did. A single Log handle is
// opened by the caller at run start, shared by every stage, and closed at run
// end. Writes are serialized with a mutex so stages running on real OS
// threads never interleave lines.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jittakal/batchetl/internal/errors"
)

// Phase names the pipeline stage an entry belongs to.
type Phase string

const (
	PhaseExtract   Phase = "extract"
	PhaseTransform Phase = "transform"
	PhaseLoad      Phase = "load"
)

// Entry is a single immutable audit event.
type Entry struct {
	Time    time.Time
	Phase   Phase
	Message string
}

// String renders the entry in the on-disk line format (without newline).
func (e Entry) String() string {
	return fmt.Sprintf("%s %s,%s", e.Time.Format(time.RFC3339Nano), e.Phase, e.Message)
}

// Log is an append-only audit sink backed by a file.
type Log struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// Open opens (or creates) the audit log at path in append mode, creating
// parent directories as needed.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	return &Log{file: file}, nil
}

// Record appends one entry for phase with the given message. Entries are
// timestamped at call time and written immediately.
func (l *Log) Record(phase Phase, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return errors.ErrAuditClosed
	}

	entry := Entry{Time: time.Now(), Phase: phase, Message: message}
	if _, err := fmt.Fprintln(l.file, entry.String()); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Recordf appends one entry with a formatted message.
func (l *Log) Recordf(phase Phase, format string, args ...any) error {
	return l.Record(phase, fmt.Sprintf(format, args...))
}

// Close flushes and closes the underlying file. Further Record calls fail
// with ErrAuditClosed.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return fmt.Errorf("failed to sync audit log: %w", err)
	}
	return l.file.Close()
}
