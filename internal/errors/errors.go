// Package errors defines application-specific error types and sentinel errors.
package errors

import (
	"errors"
	"fmt"

	"github.com/jittakal/batchetl/pkg/record"
)

// Sentinel errors for common conditions.
var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
	ErrAuditClosed        = errors.New("audit log is closed")
)

// DecodeError represents a failure to decode one source file. The failing
// file's contribution is skipped; the error never aborts the run.
type DecodeError struct {
	Path   string
	Format record.SourceFormat
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: path=%s format=%s: %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// LoadError represents a failure to place the output artifact. This is the
// only condition that terminates the run with a non-zero exit.
type LoadError struct {
	Backend string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: backend=%s path=%s: %v", e.Backend, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
