// Package encoder defines the interface for output artifact encoders.
package encoder

import "github.com/jittakal/batchetl/pkg/record"

// Encoder serializes a canonical table into an output artifact.
type Encoder interface {
	// Encode serializes the table and returns the artifact bytes.
	Encode(rows record.Table) ([]byte, error)

	// FileExtension returns the file extension for this format (with dot).
	FileExtension() string

	// Format returns the output format this encoder produces.
	Format() record.FileFormat
}
