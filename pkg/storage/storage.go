// Package storage defines the interface for placing the output artifact.
//
// This package provides abstractions for writing the consolidated artifact
// to various storage backends (local filesystem, S3, Azure Blob, GCS).
package storage

import "context"

// Writer places an encoded artifact at a destination path, replacing any
// prior content at that path. One artifact is written per run.
type Writer interface {
	// Write stores data at path and returns the number of bytes written.
	Write(ctx context.Context, data []byte, path string) (int64, error)

	// Close closes the writer and releases resources.
	Close() error
}
