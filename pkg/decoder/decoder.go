// Package decoder defines the interface for source file decoders.
//
// This package provides the abstraction for turning raw file bytes from one
// of the recognized source formats into records of the canonical field shape.
package decoder

import "github.com/jittakal/batchetl/pkg/record"

// Decoder decodes one file's bytes into zero or more raw records.
//
// Decoders are pure and stateless: the same bytes always produce the same
// records, and a decoder instance is safe for concurrent use. A record
// missing an expected field is returned with that field absent, not as an
// error; an error is returned only when the payload cannot be interpreted as
// the declared format at all.
type Decoder interface {
	// Decode decodes the payload into raw records, preserving source order.
	Decode(data []byte) ([]record.RawRecord, error)

	// Format returns the source format this decoder handles.
	Format() record.SourceFormat
}
